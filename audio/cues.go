package audio

import (
	"time"

	"github.com/pthm-cable/wudao/events"
)

// Cue identifies a sound.
type Cue uint8

const (
	CueDeath Cue = iota
	CueHit
	CueBossSpawn
	CueBossDefeat
	CueConversion
	CueExplosion
	CueTitleReady
	CueSessionStart
	CueSessionEnd
)

var cueTones = map[Cue][]tone{
	CueDeath: {
		{freq: 220, dur: 60 * time.Millisecond, wave: WaveTriangle, gain: 0.5},
		{freq: 165, dur: 80 * time.Millisecond, wave: WaveTriangle, gain: 0.4},
	},
	CueHit: {
		{freq: 110, dur: 120 * time.Millisecond, wave: WaveSaw, gain: 0.6},
	},
	CueBossSpawn: {
		{freq: 98, dur: 200 * time.Millisecond, wave: WaveSquare, gain: 0.4},
		{freq: 73, dur: 300 * time.Millisecond, wave: WaveSquare, gain: 0.4},
	},
	CueBossDefeat: {
		{freq: 523, dur: 100 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 659, dur: 100 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 784, dur: 200 * time.Millisecond, wave: WaveSine, gain: 0.6},
	},
	CueConversion: {
		{freq: 1047, dur: 250 * time.Millisecond, wave: WaveSine, gain: 0.5},
	},
	CueExplosion: {
		{freq: 55, dur: 400 * time.Millisecond, wave: WaveSaw, gain: 0.9},
		{freq: 41, dur: 600 * time.Millisecond, wave: WaveSaw, gain: 0.7},
	},
	CueTitleReady: {
		{freq: 392, dur: 150 * time.Millisecond, wave: WaveSine, gain: 0.5},
		{freq: 587, dur: 300 * time.Millisecond, wave: WaveSine, gain: 0.5},
	},
	CueSessionStart: {
		{freq: 440, dur: 120 * time.Millisecond, wave: WaveTriangle, gain: 0.5},
	},
	CueSessionEnd: {
		{freq: 330, dur: 200 * time.Millisecond, wave: WaveTriangle, gain: 0.5},
		{freq: 247, dur: 400 * time.Millisecond, wave: WaveTriangle, gain: 0.5},
	},
}

// CueFor maps an event type to its cue. Link and pause events are silent.
func CueFor(t events.Type) (Cue, bool) {
	switch t {
	case events.EntityDied:
		return CueDeath, true
	case events.EntityHit:
		return CueHit, true
	case events.BossSpawned:
		return CueBossSpawn, true
	case events.BossDefeated:
		return CueBossDefeat, true
	case events.BossConverted:
		return CueConversion, true
	case events.BossExploding:
		return CueExplosion, true
	case events.TitleReady:
		return CueTitleReady, true
	case events.SessionStarted:
		return CueSessionStart, true
	case events.SessionEnded:
		return CueSessionEnd, true
	}
	return 0, false
}
