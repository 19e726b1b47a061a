// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Entity    EntityConfig    `yaml:"entity"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Transfer  TransferConfig  `yaml:"transfer"`
	Drift     DriftConfig     `yaml:"drift"`
	Escape    EscapeConfig    `yaml:"escape"`
	Boss      BossConfig      `yaml:"boss"`
	Title     TitleConfig     `yaml:"title"`
	Session   SessionConfig   `yaml:"session"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The arena starts at the screen size
// and follows window resizes afterwards.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds frame-stepping guards.
type ArenaConfig struct {
	MaxFrameDelta float64 `yaml:"max_frame_delta"` // Frames longer than this skip the update
}

// EntityConfig holds entity sizing, speed and lifecycle parameters.
type EntityConfig struct {
	InitialCount  int     `yaml:"initial_count"`
	MinEnergy     float64 `yaml:"min_energy"`  // Session spawn energy lower bound
	MaxEnergy     float64 `yaml:"max_energy"`  // Session spawn energy upper bound (exclusive)
	BaseRadius    float64 `yaml:"base_radius"` // radius = sqrt(E)*RadiusScale + BaseRadius
	RadiusScale   float64 `yaml:"radius_scale"`
	BaseSpeed     float64 `yaml:"base_speed"` // speed = BaseSpeed / (1 + E/SpeedScale)
	SpeedScale    float64 `yaml:"speed_scale"`
	DeathDuration float64 `yaml:"death_duration"` // Dying -> Dead
	HitFeedback   float64 `yaml:"hit_feedback"`   // Hit flag lifetime
}

// SpawnConfig holds session spawn placement parameters.
type SpawnConfig struct {
	Inset       float64 `yaml:"inset"`        // Keep spawns this far from the arena edge
	MinDistance float64 `yaml:"min_distance"` // Minimum center distance between spawns
	MaxAttempts int     `yaml:"max_attempts"` // Placement retries before accepting a crowded spot
}

// TransferConfig holds the shared energy transfer parameters.
type TransferConfig struct {
	Rate                float64 `yaml:"rate"`                 // Energy per second
	Interval            float64 `yaml:"interval"`             // Seconds between transfers
	InteractionDistance float64 `yaml:"interaction_distance"` // Max boundary gap for links
}

// DriftConfig holds idle float parameters.
type DriftConfig struct {
	Speed       float64 `yaml:"speed"`
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`
}

// EscapeConfig holds boundary avoidance parameters for fleeing entities.
type EscapeConfig struct {
	EdgeMargin   float64 `yaml:"edge_margin"`   // Radii from a wall that count as wall-bound
	CornerMargin float64 `yaml:"corner_margin"` // Radii from two walls that count as cornered
	Probe        float64 `yaml:"probe"`         // Look-ahead multiplier for the reflected heading
}

// BossConfig holds Boss encounter parameters.
type BossConfig struct {
	SpawnInterval      float64 `yaml:"spawn_interval"`
	MoveTime           float64 `yaml:"move_time"`
	Radius             float64 `yaml:"radius"`
	SpawnMargin        float64 `yaml:"spawn_margin"` // Added to Radius when placing outside an edge
	AbsorptionDistance float64 `yaml:"absorption_distance"`
	RequiredEnergyMin  float64 `yaml:"required_energy_min"`
	RequiredEnergyMax  float64 `yaml:"required_energy_max"`
	ExplosionDuration  float64 `yaml:"explosion_duration"` // Time for the blast to cover the arena
	GameOverDelay      float64 `yaml:"game_over_delay"`    // Explosion start -> game over
	ConversionDuration float64 `yaml:"conversion_duration"`
	PhaseReorganize    float64 `yaml:"phase_reorganize"` // Conversion progress where phase 1 starts
	PhaseRebirth       float64 `yaml:"phase_rebirth"`    // Conversion progress where phase 2 starts
}

// Anchor is a spawn point expressed as a fraction of the arena size.
type Anchor struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TitleConfig holds the pre-session absorber parameters.
type TitleConfig struct {
	CoreOffsetY        float64  `yaml:"core_offset_y"`
	CoreStartEnergy    float64  `yaml:"core_start_energy"`
	CoreThreshold      float64  `yaml:"core_threshold"`
	CoreMinRadius      float64  `yaml:"core_min_radius"`
	CoreMaxRadius      float64  `yaml:"core_max_radius"`
	DistanceMultiplier float64  `yaml:"distance_multiplier"` // x InteractionDistance, center to center
	RateMultiplier     float64  `yaml:"rate_multiplier"`     // x standard transfer amount
	SourceFloor        float64  `yaml:"source_floor"`        // Energy the core never takes
	EntityEnergy       float64  `yaml:"entity_energy"`
	SpeedMultiplier    float64  `yaml:"speed_multiplier"`
	ExitDuration       float64  `yaml:"exit_duration"`
	Anchors            []Anchor `yaml:"anchors"`
}

// SessionConfig holds session-level cosmetic timers.
type SessionConfig struct {
	StartFlourish float64 `yaml:"start_flourish"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds sound cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TransferAmount          float64 // Energy per transfer interval
	TitleTransferAmount     float64 // Title core energy per transfer interval
	TitleAbsorptionDistance float64 // Title core reach, center to center
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would stall or divide by zero in the simulation.
func (c *Config) validate() error {
	switch {
	case c.Transfer.Interval <= 0:
		return fmt.Errorf("transfer.interval must be positive, got %v", c.Transfer.Interval)
	case c.Boss.MoveTime <= 0:
		return fmt.Errorf("boss.move_time must be positive, got %v", c.Boss.MoveTime)
	case c.Boss.ExplosionDuration <= 0:
		return fmt.Errorf("boss.explosion_duration must be positive, got %v", c.Boss.ExplosionDuration)
	case c.Boss.ConversionDuration <= 0:
		return fmt.Errorf("boss.conversion_duration must be positive, got %v", c.Boss.ConversionDuration)
	case c.Boss.RequiredEnergyMax < c.Boss.RequiredEnergyMin:
		return fmt.Errorf("boss.required_energy_max (%v) below min (%v)", c.Boss.RequiredEnergyMax, c.Boss.RequiredEnergyMin)
	case c.Entity.SpeedScale <= 0:
		return fmt.Errorf("entity.speed_scale must be positive, got %v", c.Entity.SpeedScale)
	case c.Title.CoreThreshold <= 0:
		return fmt.Errorf("title.core_threshold must be positive, got %v", c.Title.CoreThreshold)
	case len(c.Title.Anchors) == 0:
		return fmt.Errorf("title.anchors must not be empty")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TransferAmount = c.Transfer.Rate * c.Transfer.Interval
	c.Derived.TitleTransferAmount = c.Derived.TransferAmount * c.Title.RateMultiplier
	c.Derived.TitleAbsorptionDistance = c.Transfer.InteractionDistance * c.Title.DistanceMultiplier

	if c.Drift.MaxDuration < c.Drift.MinDuration {
		c.Drift.MaxDuration = c.Drift.MinDuration
	}
	if c.Arena.MaxFrameDelta <= 0 || math.IsNaN(c.Arena.MaxFrameDelta) {
		c.Arena.MaxFrameDelta = 0.1
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Title.Anchors = append([]Anchor(nil), c.Title.Anchors...)
	return &out
}

// Refresh validates c and recomputes derived values after fields were edited.
func (c *Config) Refresh() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
