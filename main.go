package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wudao/audio"
	"github.com/pthm-cable/wudao/camera"
	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/game"
	"github.com/pthm-cable/wudao/renderer"
	"github.com/pthm-cable/wudao/telemetry"
	"github.com/pthm-cable/wudao/tui"
	"github.com/pthm-cable/wudao/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, player driven by the autopilot")
	terminal := flag.Bool("tui", false, "Run in the terminal")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot drive the player in interactive modes")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	sessions := flag.Int("sessions", 1, "Headless: stop after N sessions (0 = unlimited)")
	mute := flag.Bool("mute", false, "Disable sound")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON for structured logging). The terminal frontend owns
	// stdout, so its logs go to stderr.
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logOut := os.Stdout
	if *terminal {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Autopilot:      *autopilot,
	}

	if *headless {
		runHeadless(opts, *sessions, *maxTicks)
		return
	}

	var sound *audio.Player
	if cfg.Audio.Enabled && !*mute {
		sound = audio.NewPlayer(cfg.Audio)
		if err := sound.Init(); err != nil {
			// Non-fatal, game runs without sound
			slog.Warn("audio init failed", "error", err)
		} else {
			defer sound.Close()
			opts.Subscribers = append(opts.Subscribers, sound.Handle)
		}
	}

	if *terminal {
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		if err := tui.Run(g); err != nil {
			slog.Error("terminal frontend failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runGraphical(cfg, opts, *maxTicks)
}

func runHeadless(opts game.Options, sessions int, maxTicks int64) {
	// Pure CPU simulation, no raylib needed
	opts.Autopilot = true
	opts.SkipTitle = true
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"sessions", sessions,
		"max_ticks", maxTicks,
	)

	records := g.RunHeadless(sessions, maxTicks)
	slog.Info("headless_summary", "summary", telemetry.Summarize(records))
}

func runGraphical(cfg *config.Config, opts game.Options, maxTicks int64) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Wudao")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w, h := float32(cfg.Screen.Width), float32(cfg.Screen.Height)
	cam := camera.New(w, h, w, h)
	particles := renderer.NewParticleRenderer(opts.Seed)
	opts.Subscribers = append(opts.Subscribers, particles.Handle, cam.Handle)

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	arena := renderer.NewArenaRenderer()
	boss := renderer.NewBossRenderer()
	hud := ui.NewHUD()
	gameOver := ui.NewGameOverPanel()
	perf := ui.NewPerfPanel(int32(cfg.Screen.Width)-250, 10)
	showPerf := false

	for !rl.WindowShouldClose() {
		if w, h, ok := ui.Resized(); ok {
			g.Resize(w, h)
			cam.Resize(float32(w), float32(h), float32(w), float32(h))
			perf.SetPosition(int32(w)-250, 10)
		}
		if ui.PerfTogglePressed() {
			showPerf = !showPerf
		}
		if ui.RestartPressed() {
			g.RequestRestart()
		}
		g.SetIntent(ui.Intent())

		dt := float64(rl.GetFrameTime())
		g.Tick(dt, rl.GetTime())
		particles.Update(dt)
		cam.Update(float32(dt))

		obs := g.Observe()
		rl.BeginDrawing()
		rl.ClearBackground(renderer.ColorBackground)
		rl.BeginMode2D(renderer.Camera2D(cam))
		arena.Draw(obs)
		boss.Draw(obs)
		particles.Draw()
		rl.EndMode2D()
		hud.Draw(obs, cfg.Entity.MaxEnergy*2)
		if gameOver.Draw(obs) {
			g.RequestRestart()
		}
		if showPerf {
			perf.Draw(g.Perf())
		}
		hud.DrawControls(int32(obs.Width), int32(obs.Height), "WASD/arrows move | R restart | P perf")
		rl.EndDrawing()
		g.RecordFrame()

		if maxTicks > 0 && g.Ticks() >= maxTicks {
			break
		}
	}
}
