package game

import (
	"log/slog"

	"github.com/pthm-cable/wudao/events"
)

// logEvent writes encounter milestones to the structured log. Per-entity
// events stay out of the log; they are counted by telemetry instead.
func logEvent(e events.Event) {
	switch e.Type {
	case events.BossSpawned:
		slog.Info("boss_spawned", "time", e.Time, "x", e.X, "y", e.Y, "required", e.Amount)
	case events.BossDefeated:
		slog.Info("boss_defeated", "time", e.Time, "absorbed", e.Amount)
	case events.BossConverted:
		slog.Info("boss_converted", "time", e.Time, "entity", e.EntityID, "energy", e.Amount)
	case events.BossExploding:
		slog.Info("boss_exploding", "time", e.Time, "x", e.X, "y", e.Y)
	case events.TitleReady:
		slog.Info("title_ready", "core_energy", e.Amount)
	case events.BossPhase:
		slog.Debug("boss_phase", "time", e.Time, "phase", e.Phase)
	case events.BossPaused, events.BossResumed:
		slog.Debug(e.Type.String(), "time", e.Time, "absorbed", e.Amount)
	}
}
