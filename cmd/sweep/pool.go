package main

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/telemetry"
)

// job is one seed to play.
type job struct {
	seed int64
}

// result holds the sessions one seed produced.
type result struct {
	seed    int64
	records []telemetry.SessionRecord
}

// pool plays seeds on a fixed set of workers sharing a read-only config.
type pool struct {
	cfg      *config.Config
	sessions int
	maxTicks int64

	numWorkers int
	workChan   chan job
	doneChan   chan result
	wg         sync.WaitGroup
}

func newPool(cfg *config.Config, sessions int, maxTicks int64, workers int) *pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &pool{
		cfg:        cfg,
		sessions:   sessions,
		maxTicks:   maxTicks,
		numWorkers: workers,
		workChan:   make(chan job),
		doneChan:   make(chan result, workers),
	}
}

// run plays every seed and calls onResult from the calling goroutine as
// seeds finish. Results arrive in completion order.
func (p *pool) run(seeds []int64, onResult func(result)) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	go func() {
		for _, s := range seeds {
			p.workChan <- job{seed: s}
		}
		close(p.workChan)
	}()

	go func() {
		p.wg.Wait()
		close(p.doneChan)
	}()

	for r := range p.doneChan {
		onResult(r)
	}
}

func (p *pool) worker() {
	defer p.wg.Done()
	for j := range p.workChan {
		g := game.NewGameWithOptions(game.Options{
			Seed:      j.seed,
			Config:    p.cfg,
			Autopilot: true,
			SkipTitle: true,
		})
		records := g.RunHeadless(p.sessions, p.maxTicks)
		g.Unload()
		p.doneChan <- result{seed: j.seed, records: records}
	}
}
