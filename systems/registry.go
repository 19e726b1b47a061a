package systems

import "github.com/pthm-cable/wudao/telemetry"

// SystemInfo describes the system timed under one tick phase.
type SystemInfo struct {
	Phase       telemetry.Phase
	Name        string // Display name
	Description string
	Category    string // "movement", "energy", "encounter", "lifecycle" or "internal"
}

// SystemRegistry maps tick phases to display metadata for the perf panel.
type SystemRegistry struct {
	byPhase [telemetry.NumPhases]SystemInfo
}

// NewSystemRegistry creates a registry holding every tick phase.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{}
	for _, info := range []SystemInfo{
		{telemetry.PhasePlayer, "Player", "Moves the player along the input intent", "movement"},
		{telemetry.PhaseSteer, "Steer", "Escape, chase and idle drift", "movement"},
		{telemetry.PhaseLink, "Link", "Forms absorption links between nearby entities", "energy"},
		{telemetry.PhaseTransfer, "Transfer", "Moves energy along active links", "energy"},
		{telemetry.PhaseTitleCore, "Title Core", "Drains title entities until ready", "energy"},
		{telemetry.PhaseBoss, "Boss", "Schedules and advances the Boss encounter", "encounter"},
		{telemetry.PhaseLife, "Life", "Advances death timers", "lifecycle"},
		{telemetry.PhaseCleanup, "Cleanup", "Evicts dead entities", "lifecycle"},
		{telemetry.PhaseTelemetry, "Telemetry", "Samples window statistics", "internal"},
	} {
		r.byPhase[info.Phase] = info
	}
	return r
}

// Get returns the info for a phase.
func (r *SystemRegistry) Get(phase telemetry.Phase) (SystemInfo, bool) {
	if phase >= telemetry.NumPhases || r.byPhase[phase].Name == "" {
		return SystemInfo{}, false
	}
	return r.byPhase[phase], true
}

// Name returns the display name of a phase, or its ID when unregistered.
func (r *SystemRegistry) Name(phase telemetry.Phase) string {
	if info, ok := r.Get(phase); ok {
		return info.Name
	}
	return phase.String()
}
