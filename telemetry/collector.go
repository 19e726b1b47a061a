package telemetry

import "github.com/pthm-cable/wudao/events"

// Sample is the population state the caller measures at a window boundary.
type Sample struct {
	State        string
	Alive        int
	Dying        int
	ActiveLinks  int
	Energies     []float64 // Alive entity energies
	PlayerEnergy float64
	BossActive   bool
	BossAbsorbed float64
}

// counters holds event tallies for either a window or a whole session.
type counters struct {
	deaths         int
	hits           int
	linksFormed    int
	linksBroken    int
	bossesSpawned  int
	bossesDefeated int
	explosions     int
	conversions    int
}

func (c *counters) record(e events.Event) {
	switch e.Type {
	case events.EntityDied:
		c.deaths++
	case events.EntityHit:
		c.hits++
	case events.AbsorbStart:
		c.linksFormed++
	case events.AbsorbStop:
		c.linksBroken++
	case events.BossSpawned:
		c.bossesSpawned++
	case events.BossDefeated:
		c.bossesDefeated++
	case events.BossExploding:
		c.explosions++
	case events.BossConverted:
		c.conversions++
	}
}

// Collector accumulates events within time windows and produces WindowStats.
// It also builds one SessionRecord per played session from the
// SessionStarted/SessionEnded events.
type Collector struct {
	windowDurationSec float64
	windowStart       float64

	window  counters
	total   counters
	session int
	playing bool
	peak    float64

	completed []SessionRecord
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in session seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Handle consumes one event. Subscribe it to the game's event bus.
func (c *Collector) Handle(e events.Event) {
	switch e.Type {
	case events.SessionStarted:
		c.session++
		c.playing = true
		c.total = counters{}
		c.window = counters{}
		c.windowStart = e.Time
		c.peak = 0
		return
	case events.SessionEnded:
		if !c.playing {
			return
		}
		c.playing = false
		c.completed = append(c.completed, c.record(e.Amount, e.Cause))
		return
	}

	c.window.record(e)
	if c.playing {
		c.total.record(e)
	}
}

// ObservePlayer tracks the peak player energy for the running session.
func (c *Collector) ObservePlayer(energy float64) {
	if c.playing && energy > c.peak {
		c.peak = energy
	}
}

// Session returns the index of the current or last session (1-based, 0 before the first).
func (c *Collector) Session() int {
	return c.session
}

// Playing reports whether a session is running.
func (c *Collector) Playing() bool {
	return c.playing
}

// ShouldFlush returns true if a full window has elapsed since the last flush.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, sample Sample) WindowStats {
	stats := WindowStats{
		Session:     c.session,
		WindowStart: c.windowStart,
		SimTimeSec:  now,
		State:       sample.State,

		Alive:       sample.Alive,
		Dying:       sample.Dying,
		ActiveLinks: sample.ActiveLinks,

		Deaths:         c.window.deaths,
		Hits:           c.window.hits,
		LinksFormed:    c.window.linksFormed,
		LinksBroken:    c.window.linksBroken,
		BossesSpawned:  c.window.bossesSpawned,
		BossesDefeated: c.window.bossesDefeated,
		BossExplosions: c.window.explosions,
		Conversions:    c.window.conversions,

		BossActive:   sample.BossActive,
		BossAbsorbed: sample.BossAbsorbed,
		PlayerEnergy: sample.PlayerEnergy,
	}
	stats.applyEnergy(ComputeEnergyStats(sample.Energies))

	c.windowStart = now
	c.window = counters{}

	return stats
}

// DrainSessions returns the sessions completed since the last call.
func (c *Collector) DrainSessions() []SessionRecord {
	out := c.completed
	c.completed = nil
	return out
}

func (c *Collector) record(finalTime float64, cause string) SessionRecord {
	return SessionRecord{
		Session:          c.session,
		Cause:            cause,
		FinalTime:        finalTime,
		BossesSpawned:    c.total.bossesSpawned,
		BossesDefeated:   c.total.bossesDefeated,
		BossExplosions:   c.total.explosions,
		Conversions:      c.total.conversions,
		Deaths:           c.total.deaths,
		Hits:             c.total.hits,
		LinksFormed:      c.total.linksFormed,
		PeakPlayerEnergy: c.peak,
	}
}
