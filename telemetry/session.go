package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Session end causes as written to sessions.csv.
const (
	CauseBossExplosion = "boss_explosion"
	CausePlayerDeath   = "player_death"
)

// SessionRecord summarises one played session.
type SessionRecord struct {
	Session          int     `csv:"session"`
	Cause            string  `csv:"cause"`
	FinalTime        float64 `csv:"final_time"`
	BossesSpawned    int     `csv:"bosses_spawned"`
	BossesDefeated   int     `csv:"bosses_defeated"`
	BossExplosions   int     `csv:"boss_explosions"`
	Conversions      int     `csv:"conversions"`
	Deaths           int     `csv:"deaths"`
	Hits             int     `csv:"hits"`
	LinksFormed      int     `csv:"links_formed"`
	PeakPlayerEnergy float64 `csv:"peak_player_energy"`
	Seed             int64   `csv:"seed"` // RNG seed of the game that played the session
}

// LogValue implements slog.LogValuer for structured logging.
func (r SessionRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", r.Session),
		slog.String("cause", r.Cause),
		slog.Float64("final_time", r.FinalTime),
		slog.Int("bosses_spawned", r.BossesSpawned),
		slog.Int("bosses_defeated", r.BossesDefeated),
		slog.Int("boss_explosions", r.BossExplosions),
		slog.Int("conversions", r.Conversions),
		slog.Int("deaths", r.Deaths),
		slog.Int("hits", r.Hits),
		slog.Int("links_formed", r.LinksFormed),
		slog.Float64("peak_player_energy", r.PeakPlayerEnergy),
		slog.Int64("seed", r.Seed),
	)
}

// Summary aggregates survival across many sessions.
type Summary struct {
	Sessions       int     `csv:"sessions"`
	MeanTime       float64 `csv:"mean_time"`
	StdTime        float64 `csv:"std_time"`
	MedianTime     float64 `csv:"median_time"`
	P90Time        float64 `csv:"p90_time"`
	ExplosionShare float64 `csv:"explosion_share"` // Fraction of sessions ended by a Boss explosion
	MeanDefeated   float64 `csv:"mean_defeated"`
	MeanPeak       float64 `csv:"mean_peak_energy"`
}

// Summarize computes survival statistics over completed sessions.
func Summarize(records []SessionRecord) Summary {
	n := len(records)
	if n == 0 {
		return Summary{}
	}

	times := make([]float64, n)
	defeated := make([]float64, n)
	peaks := make([]float64, n)
	explosions := 0
	for i, r := range records {
		times[i] = r.FinalTime
		defeated[i] = float64(r.BossesDefeated)
		peaks[i] = r.PeakPlayerEnergy
		if r.Cause == CauseBossExplosion {
			explosions++
		}
	}

	sort.Float64s(times)
	s := Summary{
		Sessions:       n,
		MeanTime:       stat.Mean(times, nil),
		MedianTime:     stat.Quantile(0.5, stat.Empirical, times, nil),
		P90Time:        stat.Quantile(0.9, stat.Empirical, times, nil),
		ExplosionShare: float64(explosions) / float64(n),
		MeanDefeated:   stat.Mean(defeated, nil),
		MeanPeak:       stat.Mean(peaks, nil),
	}
	if n > 1 {
		s.StdTime = stat.StdDev(times, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sessions", s.Sessions),
		slog.Float64("mean_time", s.MeanTime),
		slog.Float64("std_time", s.StdTime),
		slog.Float64("median_time", s.MedianTime),
		slog.Float64("p90_time", s.P90Time),
		slog.Float64("explosion_share", s.ExplosionShare),
		slog.Float64("mean_defeated", s.MeanDefeated),
		slog.Float64("mean_peak_energy", s.MeanPeak),
	)
}
