package systems

import (
	"testing"

	"github.com/pthm-cable/wudao/events"
)

func TestTitleCorePlacement(t *testing.T) {
	cfg := testConfig(t)
	core := NewTitleCore(cfg, testArena, nil)

	if core.X != 640 || core.Y != 340 {
		t.Errorf("core at (%v, %v), want (640, 340)", core.X, core.Y)
	}
	if core.Energy() != 1 {
		t.Errorf("start energy = %v, want 1", core.Energy())
	}
	if r := core.Radius(); r <= cfg.Title.CoreMinRadius || r >= cfg.Title.CoreMaxRadius {
		t.Errorf("start radius = %v, want between bounds", r)
	}
}

func TestTitleCoreFillsToReady(t *testing.T) {
	pop, rec := newTestPopulation(t)
	cfg := pop.Config()
	core := NewTitleCore(cfg, testArena, rec)
	pop.Spawn(640, 450, 60, SpawnOptions{Title: true})

	if core.Update(pop, testDT) {
		t.Fatal("core ready on first tick")
	}
	if _, ok := core.Source(); !ok {
		t.Fatal("core should link to the entity in reach")
	}

	ticks := 0
	for !core.Update(pop, testDT) {
		ticks++
		if ticks > 1000 {
			t.Fatal("core never became ready")
		}
	}

	src, _ := pop.At(0)
	if !approxEqual(src.Energy.Value+core.Energy(), 61) {
		t.Errorf("energy not conserved: source %v + core %v", src.Energy.Value, core.Energy())
	}
	if src.Energy.Value < cfg.Title.SourceFloor {
		t.Errorf("source dropped below floor: %v", src.Energy.Value)
	}
	if core.Progress() != 1 || core.Radius() != cfg.Title.CoreMaxRadius {
		t.Errorf("progress=%v radius=%v, want full", core.Progress(), core.Radius())
	}
	if rec.Count(events.AbsorbStart) != 1 {
		t.Errorf("core link events = %d, want 1", rec.Count(events.AbsorbStart))
	}
}

func TestTitleCoreKeepsSourceFloor(t *testing.T) {
	pop, _ := newTestPopulation(t)
	cfg := pop.Config()
	core := NewTitleCore(cfg, testArena, nil)
	pop.Spawn(640, 400, 10.3, SpawnOptions{Title: true})

	for i := 0; i < 10; i++ {
		core.Update(pop, testDT)
	}

	src, _ := pop.At(0)
	if !approxEqual(src.Energy.Value, cfg.Title.SourceFloor) {
		t.Errorf("source energy = %v, want floor %v", src.Energy.Value, cfg.Title.SourceFloor)
	}
	if !approxEqual(core.Energy(), 1.3) {
		t.Errorf("core energy = %v, want 1.3", core.Energy())
	}
	if !src.Alive() {
		t.Error("core must never kill its source")
	}
}

func TestTitleCoreReachAndRelease(t *testing.T) {
	pop, rec := newTestPopulation(t)
	core := NewTitleCore(pop.Config(), testArena, rec)
	pop.Spawn(640, 340+151, 60, SpawnOptions{Title: true})

	core.Update(pop, testDT)
	if _, ok := core.Source(); ok {
		t.Fatal("entity beyond reach should not be linked")
	}

	b, _ := pop.At(0)
	b.Pos.Y = 340 + 149
	core.Update(pop, testDT)
	if _, ok := core.Source(); !ok {
		t.Fatal("entity within reach should be linked")
	}

	b.Pos.Y = 700
	core.Update(pop, testDT)
	if _, ok := core.Source(); ok {
		t.Error("link should drop once the source leaves reach")
	}
	if b.Link.Core {
		t.Error("source core flag should be cleared")
	}
	if rec.Count(events.AbsorbStop) != 1 {
		t.Errorf("AbsorbStop events = %d, want 1", rec.Count(events.AbsorbStop))
	}
}
