package game

import (
	"log/slog"

	"github.com/pthm-cable/wudao/telemetry"
)

// HeadlessDT is the fixed step used for headless runs.
const HeadlessDT = 1.0 / 60.0

// RunHeadless steps the game at a fixed dt until the given number of sessions
// has ended or maxTicks updates ran (0 = unlimited for either). Finished
// sessions restart automatically. Returns the records of sessions completed
// during the run.
func (g *Game) RunHeadless(sessions int, maxTicks int64) []telemetry.SessionRecord {
	start := len(g.sessions)
	var clock float64

	for {
		if maxTicks > 0 && g.ticks >= maxTicks {
			slog.Info("max ticks reached", "ticks", g.ticks)
			break
		}
		if g.state == StateGameOver {
			if sessions > 0 && len(g.sessions)-start >= sessions {
				break
			}
			g.RequestRestart()
		}

		clock += HeadlessDT
		g.Tick(HeadlessDT, clock)
	}

	return g.sessions[start:]
}
