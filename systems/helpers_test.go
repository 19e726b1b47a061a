package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

const testDT = 1.0 / 60.0

var testArena = Arena{W: 1280, H: 720}

// testConfig loads the embedded defaults.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

// newTestPopulation returns an empty population recording its events.
func newTestPopulation(t *testing.T) (*Population, *events.Recorder) {
	t.Helper()
	rec := &events.Recorder{}
	return NewPopulation(testConfig(t), rec), rec
}

// totalEnergy sums the energy of every entity in the roster.
func totalEnergy(pop *Population) float64 {
	sum := 0.0
	pop.Each(func(b Body) { sum += b.Energy.Value })
	return sum
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
