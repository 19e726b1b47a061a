package telemetry

import (
	"math"
	"testing"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	s := ComputeEnergyStats(values)

	if math.Abs(s.Total-55) > 1e-9 {
		t.Errorf("total = %v, want 55", s.Total)
	}
	if math.Abs(s.Mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	if s.P50 != 5 {
		t.Errorf("p50 = %v, want 5", s.P50)
	}
	if !(s.P10 <= s.P50 && s.P50 <= s.P90) {
		t.Errorf("percentiles out of order: %v %v %v", s.P10, s.P50, s.P90)
	}
	// Sample standard deviation of 1..10
	if math.Abs(s.Std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.0277", s.Std)
	}
	// Input must stay untouched
	if values[0] != 10 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeEnergyStatsEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   EnergyStats
	}{
		{"empty", nil, EnergyStats{}},
		{"single", []float64{42}, EnergyStats{Total: 42, Mean: 42, P10: 42, P50: 42, P90: 42, Max: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeEnergyStats(tt.values); got != tt.want {
				t.Errorf("ComputeEnergyStats(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestEnergyShare(t *testing.T) {
	s := ComputeEnergyStats([]float64{30, 10, 10})
	if math.Abs(s.Share()-0.6) > 1e-9 {
		t.Errorf("share = %v, want 0.6", s.Share())
	}
	if (EnergyStats{}).Share() != 0 {
		t.Error("empty share should be 0")
	}
}
