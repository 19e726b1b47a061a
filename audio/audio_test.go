package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

func TestCueForCoversTones(t *testing.T) {
	for typ := events.EntityDied; typ <= events.SessionEnded; typ++ {
		cue, ok := CueFor(typ)
		if !ok {
			continue
		}
		if len(cueTones[cue]) == 0 {
			t.Errorf("%s maps to cue %d with no tones", typ, cue)
		}
	}
	if _, ok := CueFor(events.AbsorbStart); ok {
		t.Error("absorb_start should be silent")
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 50*time.Millisecond, WaveSine, rate)

	buf := make([][2]float64, 32)
	total := 0
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok || n < len(buf) {
			break
		}
	}
	if total != 50 {
		t.Errorf("streamed %d samples, want 50", total)
	}
}

func TestPlayerCollapsesSameTick(t *testing.T) {
	p := NewPlayer(config.AudioConfig{Volume: 0.2})

	p.Handle(events.NewDeathEvent(1.0, 1, 0, 0))
	p.Handle(events.NewDeathEvent(1.0, 2, 0, 0))
	p.Handle(events.NewDeathEvent(1.5, 3, 0, 0))
	p.Handle(events.Event{Type: events.AbsorbStart, Time: 1.5})

	if got := p.Played(); got != 2 {
		t.Errorf("played = %d, want 2", got)
	}

	// A new session forgets previous times
	p.Handle(events.Event{Type: events.SessionStarted})
	p.Handle(events.NewDeathEvent(1.5, 4, 0, 0))
	if got := p.Played(); got != 4 {
		t.Errorf("played after restart = %d, want 4", got)
	}
}
