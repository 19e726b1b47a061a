// Package main plays autopilot sessions over a range of seeds and reports
// survival statistics.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	firstSeed := flag.Int64("seed", 1, "First seed")
	seeds := flag.Int("seeds", 16, "Number of consecutive seeds")
	sessions := flag.Int("sessions", 3, "Sessions per seed")
	maxTicks := flag.Int64("max-ticks", 60*60*10, "Tick cap per seed")
	workers := flag.Int("workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	outputDir := flag.String("output-dir", "", "Write sessions.csv here (empty = summary only)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Per-session game logs are noise at sweep scale
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var out *telemetry.OutputManager
	if *outputDir != "" {
		out, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			logger.Error("failed to create output manager", "error", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := out.WriteConfig(cfg); err != nil {
			logger.Error("failed to write config", "error", err)
		}
	}

	list := make([]int64, *seeds)
	for i := range list {
		list[i] = *firstSeed + int64(i)
	}

	p := newPool(cfg, *sessions, *maxTicks, *workers)
	logger.Info("sweep_started", "seeds", *seeds, "sessions", *sessions, "workers", p.numWorkers)

	start := time.Now()
	var all []telemetry.SessionRecord
	p.run(list, func(r result) {
		all = append(all, r.records...)
		for _, rec := range r.records {
			if err := out.WriteSession(rec); err != nil {
				logger.Error("failed to write session", "error", err)
			}
		}
		logger.Info("seed_done",
			"seed", r.seed,
			"sessions", len(r.records),
			"summary", telemetry.Summarize(r.records),
		)
	})

	logger.Info("sweep_done",
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"summary", telemetry.Summarize(all),
	)
}
