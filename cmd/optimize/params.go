package main

import (
	"github.com/pthm-cable/wudao/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of encounter parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Boss scheduling and travel
			{Name: "boss_spawn_interval", Path: "boss.spawn_interval", Min: 4, Max: 40, Default: 10},
			{Name: "boss_move_time", Path: "boss.move_time", Min: 4, Max: 30, Default: 10},
			{Name: "boss_absorption_distance", Path: "boss.absorption_distance", Min: 10, Max: 120, Default: 50},
			// Boss threshold, max is min + span
			{Name: "boss_required_min", Path: "boss.required_energy_min", Min: 50, Max: 400, Default: 200},
			{Name: "boss_required_span", Path: "boss.required_energy_max", Min: 0, Max: 400, Default: 200},
			// Energy economy
			{Name: "transfer_rate", Path: "transfer.rate", Min: 5, Max: 60, Default: 20},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and refreshes
// its derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	cfg.Boss.SpawnInterval = clamped[0]
	cfg.Boss.MoveTime = clamped[1]
	cfg.Boss.AbsorptionDistance = clamped[2]
	cfg.Boss.RequiredEnergyMin = clamped[3]
	cfg.Boss.RequiredEnergyMax = clamped[3] + clamped[4]
	cfg.Transfer.Rate = clamped[5]

	return cfg.Refresh()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.Clamp([]float64{
		cfg.Boss.SpawnInterval,
		cfg.Boss.MoveTime,
		cfg.Boss.AbsorptionDistance,
		cfg.Boss.RequiredEnergyMin,
		cfg.Boss.RequiredEnergyMax - cfg.Boss.RequiredEnergyMin,
		cfg.Transfer.Rate,
	})
}
