package game

import (
	"log/slog"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/systems"
	"github.com/pthm-cable/wudao/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.elapsed, g.sample())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.Session, stats.SimTimeSec); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample measures the population for a window boundary.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		State:       g.state.String(),
		ActiveLinks: g.interactions.ActiveLinks(),
	}
	g.pop.Each(func(b systems.Body) {
		switch b.Life.State {
		case components.Alive:
			s.Alive++
		case components.Dying:
			s.Dying++
		}
	})
	g.energies = g.pop.AliveEnergies(g.energies[:0])
	s.Energies = g.energies

	if p, ok := g.pop.Player(); ok {
		s.PlayerEnergy = p.Energy.Value
	}
	if g.boss != nil && g.boss.Active() {
		s.BossActive = true
		s.BossAbsorbed = g.boss.Absorbed()
	}
	return s
}

// drainSessions hands completed session records to the outputs.
func (g *Game) drainSessions() {
	for _, r := range g.collector.DrainSessions() {
		r.Seed = g.seed
		g.sessions = append(g.sessions, r)
		slog.Info("session_ended", "record", r)

		if g.outputManager != nil {
			if err := g.outputManager.WriteSession(r); err != nil {
				slog.Error("failed to write session", "error", err)
			}
		}
		if g.sessionCallback != nil {
			g.sessionCallback(r)
		}
	}
}
