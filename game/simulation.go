package game

import (
	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/systems"
	"github.com/pthm-cable/wudao/telemetry"
)

// updatePlaying runs one play tick. Phase order is fixed: clocks, game-over
// check, player, steering, links, transfers, death timers, Boss, eviction,
// telemetry.
func (g *Game) updatePlaying(dt float64) {
	if g.flourish > 0 {
		g.flourish -= dt
	}
	g.elapsed += dt
	g.pop.SetTime(g.elapsed)

	if g.checkGameOver() {
		return
	}

	// Phase 1: player
	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.movePlayer(dt)

	// Phase 2: steering (entities held by a moving Boss stay put)
	g.perfCollector.StartPhase(telemetry.PhaseSteer)
	g.steerAll(dt)

	// Phase 3: link assignment
	g.perfCollector.StartPhase(telemetry.PhaseLink)
	g.interactions.Link(g.arena)

	// Phase 4: transfers along links
	g.perfCollector.StartPhase(telemetry.PhaseTransfer)
	g.interactions.Transfer(dt)

	// Phase 5: death timers
	g.perfCollector.StartPhase(telemetry.PhaseLife)
	g.pop.UpdateLife(dt)

	// Phase 6: Boss scheduling and state machine
	g.perfCollector.StartPhase(telemetry.PhaseBoss)
	g.updateBoss(dt)

	// Phase 7: evict dead entities, the player stays for the game-over check
	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.pop.Sweep(true)

	// Phase 8: telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if p, ok := g.pop.Player(); ok {
		g.collector.ObservePlayer(p.Energy.Value)
	}
	g.flushTelemetry()
}

// checkGameOver ends the session when an exploded Boss has finished and the
// game-over delay has passed, or when the player is Dead. While a Boss is
// exploding the player check does not run.
func (g *Game) checkGameOver() bool {
	if g.boss != nil && g.boss.State() == systems.BossExploding {
		if !g.boss.Active() && g.elapsed-g.boss.ExplodedAt() >= g.cfg.Boss.GameOverDelay {
			g.endSession(CauseBossExplosion)
			return true
		}
		return false
	}

	if p, ok := g.pop.Player(); ok && p.Life.State == components.Dead {
		g.endSession(CausePlayerDeath)
		return true
	}
	return false
}

func (g *Game) movePlayer(dt float64) {
	p, ok := g.pop.Player()
	if !ok || (g.intentX == 0 && g.intentY == 0) {
		return
	}
	systems.MoveDirected(p, g.intentX, g.intentY, dt, g.arena)
}

func (g *Game) steerAll(dt float64) {
	held := g.boss != nil && g.boss.Active() && g.boss.State() == systems.BossMoving
	g.pop.Each(func(b systems.Body) {
		if held && g.boss.IsAbsorbing(b.Identity.ID) {
			return
		}
		g.mover.Steer(g.pop, b, dt, g.arena)
	})
}

// updateBoss spawns a Boss once the interval has passed with none active,
// then advances the current one. A Boss that exploded is kept until the
// session ends.
func (g *Game) updateBoss(dt float64) {
	exploding := g.boss != nil && g.boss.State() == systems.BossExploding
	if !exploding && (g.boss == nil || !g.boss.Active()) {
		g.bossClock += dt
		if g.bossClock >= g.cfg.Boss.SpawnInterval {
			g.bossClock = 0
			g.boss = systems.SpawnBoss(g.cfg, g.rng, g.arena, g.elapsed, g.bus)
		}
	}

	if g.boss != nil {
		g.boss.Update(g.pop, dt, g.elapsed, g.arena)
	}
}
