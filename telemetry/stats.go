package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window of one session.
type WindowStats struct {
	Session     int     `csv:"session"`
	WindowStart float64 `csv:"-"`
	SimTimeSec  float64 `csv:"sim_time"`
	State       string  `csv:"state"`

	// Population at window end
	Alive       int `csv:"alive"`
	Dying       int `csv:"dying"`
	ActiveLinks int `csv:"active_links"`

	// Events during window
	Deaths         int `csv:"deaths"`
	Hits           int `csv:"hits"`
	LinksFormed    int `csv:"links_formed"`
	LinksBroken    int `csv:"links_broken"`
	BossesSpawned  int `csv:"bosses_spawned"`
	BossesDefeated int `csv:"bosses_defeated"`
	BossExplosions int `csv:"boss_explosions"`
	Conversions    int `csv:"conversions"`

	// Boss at window end
	BossActive   bool    `csv:"boss_active"`
	BossAbsorbed float64 `csv:"boss_absorbed"`

	PlayerEnergy float64 `csv:"player_energy"`

	// Energy distribution over alive entities (sampled at window end)
	EnergyTotal float64 `csv:"energy_total"`
	EnergyMean  float64 `csv:"energy_mean"`
	EnergyStd   float64 `csv:"energy_std"`
	EnergyP10   float64 `csv:"energy_p10"`
	EnergyP50   float64 `csv:"energy_p50"`
	EnergyP90   float64 `csv:"energy_p90"`
	EnergyMax   float64 `csv:"energy_max"`
}

// EnergyStats summarises a set of entity energies.
type EnergyStats struct {
	Total, Mean, Std float64
	P10, P50, P90    float64
	Max              float64
}

// Share returns the fraction of the total held by the largest value.
func (s EnergyStats) Share() float64 {
	if s.Total <= 0 {
		return 0
	}
	return s.Max / s.Total
}

// ComputeEnergyStats calculates totals, spread and empirical percentiles.
// The input slice is not modified.
func ComputeEnergyStats(values []float64) EnergyStats {
	n := len(values)
	if n == 0 {
		return EnergyStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := EnergyStats{
		Total: floats.Sum(sorted),
		Max:   sorted[n-1],
		P10:   stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:   stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}

func (s *WindowStats) applyEnergy(e EnergyStats) {
	s.EnergyTotal = e.Total
	s.EnergyMean = e.Mean
	s.EnergyStd = e.Std
	s.EnergyP10 = e.P10
	s.EnergyP50 = e.P50
	s.EnergyP90 = e.P90
	s.EnergyMax = e.Max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", s.Session),
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("state", s.State),
		slog.Int("alive", s.Alive),
		slog.Int("dying", s.Dying),
		slog.Int("active_links", s.ActiveLinks),
		slog.Int("deaths", s.Deaths),
		slog.Int("hits", s.Hits),
		slog.Int("links_formed", s.LinksFormed),
		slog.Int("links_broken", s.LinksBroken),
		slog.Int("bosses_spawned", s.BossesSpawned),
		slog.Int("bosses_defeated", s.BossesDefeated),
		slog.Int("boss_explosions", s.BossExplosions),
		slog.Int("conversions", s.Conversions),
		slog.Bool("boss_active", s.BossActive),
		slog.Float64("boss_absorbed", s.BossAbsorbed),
		slog.Float64("player_energy", s.PlayerEnergy),
		slog.Float64("energy_total", s.EnergyTotal),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("energy_max", s.EnergyMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("window_stats",
		"session", s.Session,
		"sim_time", s.SimTimeSec,
		"state", s.State,
		"alive", s.Alive,
		"dying", s.Dying,
		"active_links", s.ActiveLinks,
		"deaths", s.Deaths,
		"hits", s.Hits,
		"links_formed", s.LinksFormed,
		"bosses_spawned", s.BossesSpawned,
		"bosses_defeated", s.BossesDefeated,
		"boss_explosions", s.BossExplosions,
		"boss_active", s.BossActive,
		"player_energy", s.PlayerEnergy,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
		"energy_max", s.EnergyMax,
	)
}
