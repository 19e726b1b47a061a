// Package audio plays short procedural cues for game events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// oscillator generates a fixed-length wave with a linear fade-out.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		// Fade out to avoid a click at the end
		val *= 1 - float64(o.position)/float64(o.duration)

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// tone is one note of a cue.
type tone struct {
	freq float64
	dur  time.Duration
	wave WaveType
	gain float64
}

// render builds a streamer playing the tones in sequence at the given volume.
func render(tones []tone, rate beep.SampleRate, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newVolume(NewOscillator(t.freq, t.dur, t.wave, rate), t.gain*volume))
	}
	return beep.Seq(parts...)
}

// newVolume wraps s in a volume effect. Zero volume is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
