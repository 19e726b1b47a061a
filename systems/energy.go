package systems

import (
	"math"

	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

// EnergySource gives up energy in a transfer.
type EnergySource interface {
	Available() float64
	Drain(amount float64)
}

// EnergySink receives energy in a transfer.
type EnergySink interface {
	Receive(amount float64)
}

// Transfer moves up to amount from src to dst without taking src below floor.
// Returns the amount actually moved.
func Transfer(src EnergySource, dst EnergySink, amount, floor float64) float64 {
	if avail := src.Available() - floor; amount > avail {
		amount = avail
	}
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	src.Drain(amount)
	dst.Receive(amount)
	return amount
}

// Radius returns the collision radius for an energy level.
func Radius(cfg *config.Config, energy float64) float64 {
	return math.Sqrt(math.Max(0, energy))*cfg.Entity.RadiusScale + cfg.Entity.BaseRadius
}

// Speed returns the movement speed for an energy level.
// Title entities move faster.
func Speed(cfg *config.Config, energy float64, title bool) float64 {
	s := cfg.Entity.BaseSpeed / (1 + math.Max(0, energy)/cfg.Entity.SpeedScale)
	if title {
		s *= cfg.Title.SpeedMultiplier
	}
	return s
}

// Alive reports whether the entity is in the Alive state.
func (b Body) Alive() bool {
	return b.Life.State == components.Alive
}

// ID returns the entity's population-unique ID.
func (b Body) ID() uint32 {
	return b.Identity.ID
}

// Radius returns the entity's current radius.
func (b Body) Radius() float64 {
	return Radius(b.pop.cfg, b.Energy.Value)
}

// Speed returns the entity's current speed.
func (b Body) Speed() float64 {
	return Speed(b.pop.cfg, b.Energy.Value, b.Identity.Title)
}

// Hit reports whether the explosion hit flag is still showing.
func (b Body) Hit() bool {
	return b.pop.now < b.Identity.HitUntil
}

// ApplyEnergyDelta adds delta to an Alive entity's energy. Reaching zero
// clamps at zero and starts the death transition.
func (b Body) ApplyEnergyDelta(delta float64) {
	if !b.Alive() || math.IsNaN(delta) {
		return
	}
	v := b.Energy.Value + delta
	if v <= 0 {
		b.Energy.Value = 0
		b.pop.beginDying(b)
		return
	}
	b.Energy.Value = v
}

// Available implements EnergySource.
func (b Body) Available() float64 {
	if !b.Alive() {
		return 0
	}
	return b.Energy.Value
}

// Drain implements EnergySource.
func (b Body) Drain(amount float64) {
	b.ApplyEnergyDelta(-amount)
}

// Receive implements EnergySink.
func (b Body) Receive(amount float64) {
	b.ApplyEnergyDelta(amount)
}

// Gap returns the boundary distance between two entities.
func Gap(a, b Body) float64 {
	return distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y) - a.Radius() - b.Radius()
}

// beginDying moves an Alive entity to Dying and tears down its links.
func (p *Population) beginDying(b Body) {
	if b.Life.State != components.Alive {
		return
	}
	b.Life.State = components.Dying
	b.Life.DeathTimer = 0
	p.Unlink(b)
	p.UnlinkCore(b)
	p.sink.Emit(events.NewDeathEvent(p.now, b.Identity.ID, b.Pos.X, b.Pos.Y))
}

// Kill applies a lethal hit to an Alive entity and raises its hit flag.
// Returns false if the entity was not Alive.
func (p *Population) Kill(b Body) bool {
	if !b.Alive() {
		return false
	}
	b.Identity.HitUntil = p.now + p.cfg.Entity.HitFeedback
	p.sink.Emit(events.Event{Type: events.EntityHit, Time: p.now, EntityID: b.Identity.ID, X: b.Pos.X, Y: b.Pos.Y})
	b.Energy.Value = 0
	p.beginDying(b)
	return true
}

// UpdateLife advances death timers. Dying entities become Dead once the
// death animation has run.
func (p *Population) UpdateLife(dt float64) {
	p.Each(func(b Body) {
		if b.Life.State != components.Dying {
			return
		}
		b.Life.DeathTimer += dt
		if b.Life.DeathTimer >= p.cfg.Entity.DeathDuration {
			b.Life.State = components.Dead
		}
	})
}
