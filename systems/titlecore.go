package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

// TitleCore is the pre-session absorber. It drains one title entity at a time
// and reports ready once it has gathered the threshold energy.
type TitleCore struct {
	cfg  *config.Config
	sink events.Sink

	X, Y   float64
	energy float64

	source ecs.Entity
	linked bool
	clock  float64
}

// NewTitleCore places a core just above the arena center.
func NewTitleCore(cfg *config.Config, arena Arena, sink events.Sink) *TitleCore {
	if sink == nil {
		sink = events.Discard
	}
	cx, cy := arena.Center()
	return &TitleCore{
		cfg:    cfg,
		sink:   sink,
		X:      cx,
		Y:      cy + cfg.Title.CoreOffsetY,
		energy: cfg.Title.CoreStartEnergy,
	}
}

// Energy returns the accumulated energy.
func (c *TitleCore) Energy() float64 { return c.energy }

// Progress returns accumulated energy as a fraction of the threshold, capped at 1.
func (c *TitleCore) Progress() float64 {
	return math.Min(c.energy/c.cfg.Title.CoreThreshold, 1)
}

// Radius grows linearly with progress between the configured bounds.
func (c *TitleCore) Radius() float64 {
	t := c.cfg.Title
	return t.CoreMinRadius + c.Progress()*(t.CoreMaxRadius-t.CoreMinRadius)
}

// Ready reports whether the threshold has been reached.
func (c *TitleCore) Ready() bool {
	return c.energy >= c.cfg.Title.CoreThreshold
}

// Source returns the entity currently feeding the core.
func (c *TitleCore) Source() (ecs.Entity, bool) {
	return c.source, c.linked
}

// Receive implements EnergySink.
func (c *TitleCore) Receive(amount float64) {
	c.energy += amount
}

func (c *TitleCore) inReach(b Body) bool {
	return b.Alive() && distance(c.X, c.Y, b.Pos.X, b.Pos.Y) <= c.cfg.Derived.TitleAbsorptionDistance
}

// Update runs one tick: keep or drop the current link, transfer on the
// interval, or look for a new source. Returns Ready().
func (c *TitleCore) Update(pop *Population, dt float64) bool {
	if c.linked {
		src, ok := pop.Lookup(c.source)
		if !ok || !src.Link.Core || !c.inReach(src) {
			if ok {
				pop.UnlinkCore(src)
			}
			c.linked = false
			return c.Ready()
		}

		c.clock += dt
		if c.clock >= c.cfg.Transfer.Interval {
			c.clock = 0
			Transfer(src, c, c.cfg.Derived.TitleTransferAmount, c.cfg.Title.SourceFloor)
		}
		return c.Ready()
	}

	for i := 0; i < pop.Slots(); i++ {
		b, ok := pop.At(i)
		if !ok || b.Link.Linked() || !c.inReach(b) {
			continue
		}
		if pop.LinkCore(b) {
			c.source = b.Entity
			c.linked = true
			c.clock = 0
			break
		}
	}
	return c.Ready()
}
