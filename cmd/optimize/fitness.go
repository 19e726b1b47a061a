package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/telemetry"
)

// Targets describe the encounter the tuning aims for.
type Targets struct {
	SurvivalSec    float64 // Mean autopilot survival time
	ExplosionShare float64 // Fraction of sessions ended by a Boss explosion
}

// FitnessEvaluator runs headless sessions and scores how far the outcome is
// from the targets.
type FitnessEvaluator struct {
	params          *ParamVector
	baseConfig      *config.Config
	seeds           []int64
	sessionsPerSeed int
	maxTicks        int64
	targets         Targets

	mu          sync.Mutex
	lastSummary telemetry.Summary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, sessionsPerSeed int, maxTicks int64, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:          params,
		baseConfig:      baseCfg,
		seeds:           seeds,
		sessionsPerSeed: sessionsPerSeed,
		maxTicks:        maxTicks,
		targets:         targets,
	}
}

// LastSummary returns the session summary from the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Invalid parameter combinations score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// Seeds share the read-only config and run in parallel
	results := make([][]telemetry.SessionRecord, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var records []telemetry.SessionRecord
	for _, r := range results {
		records = append(records, r...)
	}
	summary := telemetry.Summarize(records)

	fe.mu.Lock()
	fe.lastSummary = summary
	fe.mu.Unlock()

	return score(summary, fe.targets)
}

// runSeed plays sessions for one seed with the autopilot at the wheel.
func (fe *FitnessEvaluator) runSeed(cfg *config.Config, seed int64) []telemetry.SessionRecord {
	g := game.NewGameWithOptions(game.Options{
		Seed:      seed,
		Config:    cfg,
		Autopilot: true,
		SkipTitle: true,
	})
	defer g.Unload()

	return g.RunHeadless(fe.sessionsPerSeed, fe.maxTicks)
}

// score is the squared relative survival error plus the squared explosion
// share error. No finished sessions scores +Inf.
func score(s telemetry.Summary, t Targets) float64 {
	if s.Sessions == 0 {
		return math.Inf(1)
	}
	survival := 0.0
	if t.SurvivalSec > 0 {
		survival = (s.MeanTime - t.SurvivalSec) / t.SurvivalSec
	}
	share := s.ExplosionShare - t.ExplosionShare
	return survival*survival + share*share
}
