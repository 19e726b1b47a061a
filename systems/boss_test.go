package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/events"
)

func newTestBoss(t *testing.T, pop *Population, sink events.Sink) *Boss {
	t.Helper()
	return SpawnBoss(pop.Config(), rand.New(rand.NewSource(3)), testArena, 0, sink)
}

// placeBoss moves a freshly spawned Boss to (x, y) and restarts its path there.
func placeBoss(b *Boss, x, y float64) {
	b.X, b.Y = x, y
	b.startX, b.startY = x, y
}

func TestSpawnBoss(t *testing.T) {
	cfg := testConfig(t)
	margin := cfg.Boss.Radius + cfg.Boss.SpawnMargin

	for seed := int64(0); seed < 20; seed++ {
		rec := &events.Recorder{}
		b := SpawnBoss(cfg, rand.New(rand.NewSource(seed)), testArena, 0, rec)

		outside := b.X == -margin || b.X == testArena.W+margin || b.Y == -margin || b.Y == testArena.H+margin
		if !outside {
			t.Errorf("seed %d: spawn (%v, %v) not just outside an edge", seed, b.X, b.Y)
		}
		if b.Required() < cfg.Boss.RequiredEnergyMin || b.Required() >= cfg.Boss.RequiredEnergyMax {
			t.Errorf("seed %d: required = %v", seed, b.Required())
		}
		if tx, ty := b.Target(); tx != 640 || ty != 360 {
			t.Errorf("seed %d: target = (%v, %v), want center", seed, tx, ty)
		}
		if !b.Active() || b.State() != BossMoving {
			t.Errorf("seed %d: boss should start active and moving", seed)
		}
		if rec.Count(events.BossSpawned) != 1 {
			t.Errorf("seed %d: BossSpawned events = %d", seed, rec.Count(events.BossSpawned))
		}
	}
}

func TestBossMovesTowardTarget(t *testing.T) {
	pop, _ := newTestPopulation(t)
	b := newTestBoss(t, pop, nil)
	placeBoss(b, 0, 360)

	b.Update(pop, 1.0, 1.0, testArena)

	// 1s of a 10s trip from x=0 to x=640
	if !approxEqual(b.X, 64) || !approxEqual(b.Y, 360) {
		t.Errorf("boss at (%v, %v), want (64, 360)", b.X, b.Y)
	}
}

func TestBossPausesWhileAbsorbing(t *testing.T) {
	pop, rec := newTestPopulation(t)
	b := newTestBoss(t, pop, rec)
	placeBoss(b, 300, 360)
	e := pop.Spawn(360, 360, 100, SpawnOptions{})

	b.Update(pop, testDT, testDT, testArena)

	if b.X != 300 {
		t.Errorf("boss moved to x=%v while absorbing", b.X)
	}
	if !b.Paused() || !b.IsAbsorbing(e.Identity.ID) {
		t.Error("boss should be paused and absorbing the entity")
	}
	if !approxEqual(e.Energy.Value, 99.8) || !approxEqual(b.Absorbed(), 0.2) {
		t.Errorf("entity=%v absorbed=%v, want 99.8/0.2", e.Energy.Value, b.Absorbed())
	}
	if rec.Count(events.BossPaused) != 1 {
		t.Errorf("BossPaused events = %d, want 1", rec.Count(events.BossPaused))
	}

	// Out of range: resumes
	e.Pos.X = 1200
	b.Update(pop, testDT, 2*testDT, testArena)
	if b.Paused() || b.X <= 300 {
		t.Errorf("boss should resume moving, paused=%v x=%v", b.Paused(), b.X)
	}
	if rec.Count(events.BossResumed) != 1 {
		t.Errorf("BossResumed events = %d, want 1", rec.Count(events.BossResumed))
	}
}

func TestBossDefeatConservesEnergy(t *testing.T) {
	pop, rec := newTestPopulation(t)
	b := newTestBoss(t, pop, rec)
	placeBoss(b, 300, 360)
	b.required = 0.5
	pop.Spawn(360, 360, 100, SpawnOptions{})
	before := totalEnergy(pop)

	now := 0.0
	for i := 0; i < 1000 && b.Active(); i++ {
		now += testDT
		pop.SetTime(now)
		b.Update(pop, testDT, now, testArena)
		if b.State() == BossMoving && !approxEqual(totalEnergy(pop)+b.Absorbed(), before) {
			t.Fatalf("energy leaked while absorbing: %v + %v", totalEnergy(pop), b.Absorbed())
		}
	}

	if b.Active() {
		t.Fatal("boss never finished converting")
	}
	if b.State() != BossDefeated {
		t.Fatalf("state = %v, want defeated", b.State())
	}
	if !approxEqual(b.ConvertedEnergy(), 0.6) {
		t.Errorf("converted energy = %v, want 0.6", b.ConvertedEnergy())
	}
	if pop.Count() != 2 {
		t.Fatalf("population = %d, want 2 after conversion", pop.Count())
	}
	if !approxEqual(totalEnergy(pop), before) {
		t.Errorf("total energy %v, want conserved %v", totalEnergy(pop), before)
	}
	id, ok := b.ConvertedID()
	born, _ := pop.At(1)
	if !ok || born.Identity.ID != id || !approxEqual(born.Energy.Value, 0.6) {
		t.Errorf("converted entity id=%d energy=%v", born.Identity.ID, born.Energy.Value)
	}
	if rec.Count(events.BossConverted) != 1 || rec.Count(events.BossGone) != 1 {
		t.Error("conversion and gone should each fire once")
	}
	if rec.Count(events.BossPhase) != 2 {
		t.Errorf("phase events = %d, want 2", rec.Count(events.BossPhase))
	}

	// Inactive boss ignores further updates
	b.Update(pop, testDT, now+testDT, testArena)
	if pop.Count() != 2 {
		t.Error("inactive boss spawned again")
	}
}

func TestBossExplosionIsIdempotent(t *testing.T) {
	pop, rec := newTestPopulation(t)
	b := newTestBoss(t, pop, rec)
	placeBoss(b, 640, 360)

	// Far from the center so nothing is absorbed
	for i := 0; i < 5; i++ {
		pop.Spawn(100+float64(i)*60, 100, 100, SpawnOptions{})
	}
	dying, _ := pop.At(4)
	dying.ApplyEnergyDelta(-100)
	alive := 4

	b.Update(pop, testDT, 1, testArena)
	if b.State() != BossExploding {
		t.Fatalf("state = %v, want exploding at target", b.State())
	}
	if b.ExplodedAt() != 1 || b.ExplosionRadius() != b.Radius() {
		t.Errorf("explodedAt=%v radius=%v", b.ExplodedAt(), b.ExplosionRadius())
	}

	now := 1.0
	for i := 0; i < 200 && b.Active(); i++ {
		now += testDT
		b.Update(pop, testDT, now, testArena)
	}

	if b.Active() {
		t.Fatal("explosion never finished")
	}
	if b.ExplosionHits() != alive || rec.Count(events.EntityHit) != alive {
		t.Errorf("hits=%d events=%d, want %d", b.ExplosionHits(), rec.Count(events.EntityHit), alive)
	}
	if b.ExplosionRadius() <= testArena.Diagonal() {
		t.Errorf("radius %v should exceed the diagonal", b.ExplosionRadius())
	}
	pop.Each(func(e Body) {
		if e.Life.State == components.Alive {
			t.Errorf("entity %d survived the explosion", e.Identity.ID)
		}
	})
}
