package main

import (
	"sort"
	"testing"

	"github.com/pthm-cable/wudao/config"
)

func TestPoolPlaysEverySeed(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Entity.InitialCount = 6

	p := newPool(cfg, 1, 60*120, 2)
	var seen []int64
	p.run([]int64{1, 2, 3}, func(r result) {
		seen = append(seen, r.seed)
		if len(r.records) > 1 {
			t.Errorf("seed %d produced %d sessions, want at most 1", r.seed, len(r.records))
		}
	})

	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("seeds seen = %v, want [1 2 3]", seen)
	}
}
