// Package game runs the arena session: title screen, play and game over.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
	"github.com/pthm-cable/wudao/systems"
	"github.com/pthm-cable/wudao/telemetry"
)

// State is the top-level session state.
type State uint8

const (
	StateTitle State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Cause records why a session ended.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseBossExplosion
	CausePlayerDeath
)

func (c Cause) String() string {
	switch c {
	case CauseBossExplosion:
		return telemetry.CauseBossExplosion
	case CausePlayerDeath:
		return telemetry.CausePlayerDeath
	}
	return "none"
}

// Options configures a new game.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = config.Cfg()
	Width, Height  float64        // Initial arena size, 0 = screen size from config
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	OutputDir      string
	Autopilot      bool // Drive the player from Autopilot instead of SetIntent
	SkipTitle      bool // Start in play, and restart straight into play

	StatsCallback   func(telemetry.WindowStats)
	SessionCallback func(telemetry.SessionRecord)
	Subscribers     []events.Handler
}

// Game holds the complete session state.
type Game struct {
	cfg   *config.Config
	seed  int64
	rng   *rand.Rand
	bus   *events.Bus
	arena systems.Arena

	// Session-owned, discarded on restart
	pop          *systems.Population
	mover        *systems.Mover
	interactions *systems.Interactions
	core         *systems.TitleCore
	boss         *systems.Boss

	state     State
	cause     Cause
	elapsed   float64 // Session clock, runs only while playing
	finalTime float64
	bossClock float64
	flourish  float64 // Start flourish time remaining
	exiting   bool
	exitTimer float64

	intentX, intentY float64
	autopilot        bool
	skipTitle        bool

	ticks     int64
	skipped   int64
	wallClock float64
	obs       Observation

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	sessionCallback  func(telemetry.SessionRecord)
	sessions         []telemetry.SessionRecord
	energies         []float64
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a game with the specified options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:              cfg,
		seed:             opts.Seed,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		bus:              events.NewBus(),
		arena:            systems.Arena{W: w, H: h},
		autopilot:        opts.Autopilot,
		skipTitle:        opts.SkipTitle,
		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		sessionCallback:  opts.SessionCallback,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	g.bus.Subscribe(g.collector.Handle)
	g.bus.Subscribe(logEvent)
	for _, h := range opts.Subscribers {
		g.bus.Subscribe(h)
	}

	if g.skipTitle {
		g.startSession()
	} else {
		g.enterTitle()
	}
	g.bus.Flush()
	g.drainSessions()

	return g
}

// Subscribe registers an event handler. Handlers run after each tick.
func (g *Game) Subscribe(h events.Handler) {
	g.bus.Subscribe(h)
}

// Config returns the game configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// State returns the current session state.
func (g *Game) State() State {
	return g.state
}

// Ticks returns the number of updates that ran.
func (g *Game) Ticks() int64 {
	return g.ticks
}

// Skipped returns the number of frames discarded for an oversized delta.
func (g *Game) Skipped() int64 {
	return g.skipped
}

// Sessions returns every session record completed so far.
func (g *Game) Sessions() []telemetry.SessionRecord {
	return g.sessions
}

// SetIntent sets the player's movement direction for the next ticks.
// The vector is normalized on use; zero stops the player. Non-finite
// components are treated as zero.
func (g *Game) SetIntent(x, y float64) {
	if !finite(x) || !finite(y) {
		x, y = 0, 0
	}
	g.intentX, g.intentY = x, y
}

// RequestRestart discards the session and returns to the title screen.
// Ignored unless the game is over.
func (g *Game) RequestRestart() {
	if g.state != StateGameOver {
		return
	}
	slog.Info("session_restart", "final_time", g.finalTime, "cause", g.cause.String())
	if g.skipTitle {
		g.startSession()
	} else {
		g.enterTitle()
	}
	g.bus.Flush()
	g.drainSessions()
}

// Resize changes the arena extents used by the next clamp and placement.
func (g *Game) Resize(w, h float64) {
	if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
		return
	}
	g.arena = systems.Arena{W: w, H: h}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Tick advances the game by dt seconds. Oversized or negative deltas skip the
// update for this frame. Returns whether the simulation advanced.
func (g *Game) Tick(dt, wallClock float64) bool {
	g.wallClock = wallClock
	if dt < 0 || dt > g.cfg.Arena.MaxFrameDelta || math.IsNaN(dt) {
		g.skipped++
		slog.Debug("frame_skipped", "dt", dt, "state", g.state.String())
		return false
	}

	g.ticks++
	g.perfCollector.StartTick()

	if g.autopilot {
		g.intentX, g.intentY = Autopilot(g.Observe())
	}

	switch g.state {
	case StateTitle:
		g.updateTitle(dt)
	case StatePlaying:
		g.updatePlaying(dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.bus.Flush()
	g.drainSessions()
	g.perfCollector.EndTick()

	return true
}

// Perf returns the rolling performance stats.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
