package game

import (
	"github.com/pthm-cable/wudao/events"
	"github.com/pthm-cable/wudao/telemetry"
)

// updateTitle runs one title tick. Only the player moves; the core drains
// whichever title entity is in reach. Once the core is ready the exit
// transition plays and the session starts.
func (g *Game) updateTitle(dt float64) {
	if g.exiting {
		g.exitTimer += dt
		if g.exitTimer >= g.cfg.Title.ExitDuration {
			g.startSession()
		}
		return
	}

	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.movePlayer(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTitleCore)
	if g.core.Update(g.pop, dt) {
		g.exiting = true
		g.exitTimer = 0
		if src, ok := g.core.Source(); ok {
			if b, ok := g.pop.Lookup(src); ok {
				g.pop.UnlinkCore(b)
			}
		}
		g.bus.Emit(events.Event{Type: events.TitleReady, X: g.core.X, Y: g.core.Y, Amount: g.core.Energy()})
	}
}

// TitleExitProgress returns the exit transition progress in [0,1].
func (g *Game) TitleExitProgress() float64 {
	if !g.exiting || g.cfg.Title.ExitDuration <= 0 {
		return 0
	}
	return min(g.exitTimer/g.cfg.Title.ExitDuration, 1)
}
