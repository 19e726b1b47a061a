package systems

import (
	"testing"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/events"
)

// killAndExpire drives an entity through its death transition to Dead.
func killAndExpire(pop *Population, slot int) {
	b, _ := pop.At(slot)
	b.ApplyEnergyDelta(-b.Energy.Value)
	pop.UpdateLife(pop.Config().Entity.DeathDuration)
}

func TestSpawnAssignsSlotsAndIDs(t *testing.T) {
	pop, _ := newTestPopulation(t)

	for i := 0; i < 3; i++ {
		b := pop.Spawn(float64(i*100), 0, 50, SpawnOptions{})
		if b.Identity.Slot != i {
			t.Errorf("spawn %d slot = %d", i, b.Identity.Slot)
		}
		if b.Identity.ID != uint32(i+1) {
			t.Errorf("spawn %d id = %d", i, b.Identity.ID)
		}
	}
	if pop.Count() != 3 || pop.Slots() != 3 {
		t.Errorf("count=%d slots=%d, want 3/3", pop.Count(), pop.Slots())
	}
}

func TestSweepReusesLowestFreeSlot(t *testing.T) {
	pop, _ := newTestPopulation(t)
	for i := 0; i < 4; i++ {
		pop.Spawn(float64(i*100), 0, 50, SpawnOptions{})
	}

	killAndExpire(pop, 2)
	killAndExpire(pop, 1)
	if n := pop.Sweep(false); n != 2 {
		t.Fatalf("Sweep evicted %d, want 2", n)
	}
	if pop.Count() != 2 || pop.Slots() != 4 {
		t.Fatalf("count=%d slots=%d, want 2/4", pop.Count(), pop.Slots())
	}
	if _, ok := pop.At(1); ok {
		t.Error("slot 1 should be free")
	}

	b := pop.Spawn(10, 10, 70, SpawnOptions{})
	if b.Identity.Slot != 1 {
		t.Errorf("new entity slot = %d, want lowest free slot 1", b.Identity.Slot)
	}
	if b.Identity.ID != 5 {
		t.Errorf("new entity id = %d, want 5 (ids are never reused)", b.Identity.ID)
	}

	// Slot order iteration skips the free slot 2
	var slots []int
	pop.Each(func(b Body) { slots = append(slots, b.Identity.Slot) })
	if len(slots) != 3 || slots[0] != 0 || slots[1] != 1 || slots[2] != 3 {
		t.Errorf("iteration order = %v, want [0 1 3]", slots)
	}
}

func TestSweepKeepsDeadPlayer(t *testing.T) {
	pop, _ := newTestPopulation(t)
	pop.Spawn(0, 0, 50, SpawnOptions{Player: true})
	pop.Spawn(100, 0, 50, SpawnOptions{})

	killAndExpire(pop, 0)
	killAndExpire(pop, 1)

	if n := pop.Sweep(true); n != 1 {
		t.Errorf("Sweep(keepPlayer) evicted %d, want 1", n)
	}
	p, ok := pop.Player()
	if !ok {
		t.Fatal("dead player should stay in the roster")
	}
	if p.Life.State != components.Dead {
		t.Errorf("player state = %v, want dead", p.Life.State)
	}

	pop.Sweep(false)
	if _, ok := pop.Player(); ok {
		t.Error("player should be evicted when not kept")
	}
}

func TestLinkExclusivity(t *testing.T) {
	pop, rec := newTestPopulation(t)
	pop.Spawn(0, 0, 80, SpawnOptions{})
	pop.Spawn(50, 0, 120, SpawnOptions{})
	pop.Spawn(100, 0, 100, SpawnOptions{})
	a, _ := pop.At(0)
	b, _ := pop.At(1)
	c, _ := pop.At(2)

	if !pop.Link(a, b) {
		t.Fatal("first link rejected")
	}

	tests := []struct {
		name             string
		absorber, source Body
	}{
		{"source already drained", c, b},
		{"absorber already absorbing", a, c},
		{"drained entity absorbing", b, c},
		{"source is an absorber", c, a},
		{"self link", c, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pop.Link(tt.absorber, tt.source) {
				t.Error("link should be rejected")
			}
		})
	}

	pop.Unlink(b)
	if a.Link.Linked() || b.Link.Linked() {
		t.Error("unlinking the source should clear both endpoints")
	}
	if rec.Count(events.AbsorbStart) != 1 || rec.Count(events.AbsorbStop) != 1 {
		t.Errorf("start/stop events = %d/%d, want 1/1", rec.Count(events.AbsorbStart), rec.Count(events.AbsorbStop))
	}
}

func TestDeathTearsDownLinks(t *testing.T) {
	pop, _ := newTestPopulation(t)
	pop.Spawn(0, 0, 80, SpawnOptions{})
	pop.Spawn(50, 0, 120, SpawnOptions{})
	pop.Spawn(100, 0, 40, SpawnOptions{})
	a, _ := pop.At(0)
	b, _ := pop.At(1)
	c, _ := pop.At(2)

	pop.Link(a, b)
	pop.LinkCore(c)

	a.ApplyEnergyDelta(-a.Energy.Value)
	c.ApplyEnergyDelta(-c.Energy.Value)

	if a.Link.Linked() || b.Link.Linked() {
		t.Error("absorber death should tear down the link on both ends")
	}
	if c.Link.Core {
		t.Error("death should clear the core link")
	}
	if pop.Link(a, b) {
		t.Error("dying entity must not form a link")
	}
}

func TestAliveEnergies(t *testing.T) {
	pop, _ := newTestPopulation(t)
	pop.Spawn(0, 0, 10, SpawnOptions{})
	pop.Spawn(0, 0, 20, SpawnOptions{})
	pop.Spawn(0, 0, 30, SpawnOptions{})
	b, _ := pop.At(1)
	b.ApplyEnergyDelta(-20)

	got := pop.AliveEnergies(nil)
	if len(got) != 2 {
		t.Fatalf("alive energies = %v, want 2 values", got)
	}
	sum := got[0] + got[1]
	if sum != 40 {
		t.Errorf("sum of alive energies = %v, want 40", sum)
	}
}
