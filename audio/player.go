package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

// Player turns game events into sound. It is safe to use without Init;
// cues are then dropped.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool

	// One cue per type per session tick
	lastTime map[Cue]float64
	played   int
}

// NewPlayer creates a player from audio config.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		rate:     beep.SampleRate(rate),
		volume:   cfg.Volume,
		mixer:    &beep.Mixer{},
		lastTime: make(map[Cue]float64),
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Handle plays the cue for an event. Subscribe it to the game's event bus.
func (p *Player) Handle(e events.Event) {
	cue, ok := CueFor(e.Type)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if last, seen := p.lastTime[cue]; seen && last == e.Time && e.Type != events.SessionStarted {
		return
	}
	p.lastTime[cue] = e.Time
	if e.Type == events.SessionStarted {
		clear(p.lastTime)
	}
	p.played++

	if !p.initialized {
		return
	}
	s := render(cueTones[cue], p.rate, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many cues were accepted, including ones dropped without a speaker.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close stops all sounds and the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
