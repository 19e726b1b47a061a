package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

// BossState is the Boss encounter stage.
type BossState uint8

const (
	BossMoving    BossState = iota // Travelling toward the target, absorbing on contact
	BossDefeated                   // Converting absorbed energy into a new entity
	BossExploding                  // Blast expanding across the arena
)

func (s BossState) String() string {
	switch s {
	case BossMoving:
		return "moving"
	case BossDefeated:
		return "defeated"
	case BossExploding:
		return "exploding"
	}
	return "unknown"
}

// Conversion phases while Defeated.
const (
	PhaseContraction = iota
	PhaseReorganization
	PhaseRebirth
)

// Boss is a transient absorber that enters from an arena edge and travels to
// the center. Gathering enough energy converts it into a new entity; reaching
// the center makes it explode.
type Boss struct {
	cfg  *config.Config
	sink events.Sink

	state  BossState
	active bool

	X, Y             float64
	startX, startY   float64
	targetX, targetY float64
	moveElapsed      float64
	paused           bool

	required  float64
	absorbed  float64
	converted float64 // Captured on defeat
	clock     float64 // Seconds since the last absorption transfer
	absorbing []uint32

	conversion    float64
	phase         int
	convertedOnce bool
	convertedID   uint32
	explosion     float64
	explodedAt    float64
	damageFired   bool
	explosionHits int
}

// SpawnBoss places a Boss just outside a random arena edge, aimed at the
// arena center, with a random energy requirement.
func SpawnBoss(cfg *config.Config, rng *rand.Rand, arena Arena, now float64, sink events.Sink) *Boss {
	if sink == nil {
		sink = events.Discard
	}
	b := &Boss{cfg: cfg, sink: sink, state: BossMoving, active: true}
	bc := cfg.Boss

	b.required = bc.RequiredEnergyMin + rng.Float64()*(bc.RequiredEnergyMax-bc.RequiredEnergyMin)

	margin := bc.Radius + bc.SpawnMargin
	switch rng.Intn(4) {
	case 0: // top
		b.X, b.Y = rng.Float64()*arena.W, -margin
	case 1: // right
		b.X, b.Y = arena.W+margin, rng.Float64()*arena.H
	case 2: // bottom
		b.X, b.Y = rng.Float64()*arena.W, arena.H+margin
	default: // left
		b.X, b.Y = -margin, rng.Float64()*arena.H
	}
	b.startX, b.startY = b.X, b.Y
	b.targetX, b.targetY = arena.Center()

	sink.Emit(events.NewBossEvent(events.BossSpawned, now, b.X, b.Y, b.required))
	return b
}

// Accessors used by observers.
func (b *Boss) State() BossState         { return b.state }
func (b *Boss) Active() bool             { return b.active }
func (b *Boss) Radius() float64          { return b.cfg.Boss.Radius }
func (b *Boss) Required() float64        { return b.required }
func (b *Boss) Absorbed() float64        { return b.absorbed }
func (b *Boss) ConvertedEnergy() float64 { return b.converted }
func (b *Boss) Paused() bool             { return b.paused }
func (b *Boss) Phase() int               { return b.phase }
func (b *Boss) ExplosionRadius() float64 { return b.explosion }
func (b *Boss) ExplodedAt() float64      { return b.explodedAt }
func (b *Boss) ExplosionHits() int       { return b.explosionHits }
func (b *Boss) Target() (float64, float64) {
	return b.targetX, b.targetY
}

// Absorbing returns the IDs of the entities in absorption range last tick.
func (b *Boss) Absorbing() []uint32 { return b.absorbing }

// IsAbsorbing reports whether the entity with id was in range last tick.
func (b *Boss) IsAbsorbing(id uint32) bool {
	for _, a := range b.absorbing {
		if a == id {
			return true
		}
	}
	return false
}

// Progress returns absorbed energy as a fraction of the requirement, capped at 1.
func (b *Boss) Progress() float64 {
	if b.required <= 0 {
		return 1
	}
	return math.Min(b.absorbed/b.required, 1)
}

// ConversionProgress returns the defeated conversion progress in [0, 1].
func (b *Boss) ConversionProgress() float64 {
	return clamp01(b.conversion / b.cfg.Boss.ConversionDuration)
}

// ConvertedID returns the ID of the entity created by conversion, if any.
func (b *Boss) ConvertedID() (uint32, bool) {
	return b.convertedID, b.convertedOnce
}

// Receive implements EnergySink.
func (b *Boss) Receive(amount float64) {
	b.absorbed += amount
}

// gap returns the boundary distance between the Boss and an entity.
func (b *Boss) gap(e Body) float64 {
	return distance(b.X, b.Y, e.Pos.X, e.Pos.Y) - b.cfg.Boss.Radius - e.Radius()
}

// Update advances the state machine by one tick. now is the session clock.
func (b *Boss) Update(pop *Population, dt, now float64, arena Arena) {
	if !b.active {
		return
	}
	switch b.state {
	case BossMoving:
		b.updateMoving(pop, dt, now)
	case BossDefeated:
		b.updateDefeated(pop, dt, now)
	case BossExploding:
		b.updateExploding(pop, dt, now, arena)
	}
}

func (b *Boss) updateMoving(pop *Population, dt, now float64) {
	bc := b.cfg.Boss

	// Contact check runs every tick; transfers run on the interval
	b.absorbing = b.absorbing[:0]
	b.clock += dt
	transfer := b.clock >= b.cfg.Transfer.Interval
	if transfer {
		b.clock = 0
	}
	pop.Each(func(e Body) {
		if !e.Alive() || b.gap(e) > bc.AbsorptionDistance {
			return
		}
		b.absorbing = append(b.absorbing, e.Identity.ID)
		if transfer {
			Transfer(e, b, b.cfg.Derived.TransferAmount, 0)
		}
	})

	inContact := len(b.absorbing) > 0
	if inContact != b.paused {
		b.paused = inContact
		t := events.BossResumed
		if inContact {
			t = events.BossPaused
		}
		b.sink.Emit(events.NewBossEvent(t, now, b.X, b.Y, b.absorbed))
	}

	if !b.paused {
		b.moveElapsed += dt
		progress := math.Min(b.moveElapsed/bc.MoveTime, 1)
		if progress >= 1 {
			b.X, b.Y = b.targetX, b.targetY
		} else {
			b.X = lerp(b.startX, b.targetX, progress)
			b.Y = lerp(b.startY, b.targetY, progress)
		}
	}

	if b.absorbed >= b.required {
		b.state = BossDefeated
		b.converted = b.absorbed
		b.absorbing = b.absorbing[:0]
		b.sink.Emit(events.NewBossEvent(events.BossDefeated, now, b.X, b.Y, b.converted))
		return
	}
	if distance(b.X, b.Y, b.targetX, b.targetY) <= 0 {
		b.state = BossExploding
		b.explosion = bc.Radius
		b.explodedAt = now
		b.absorbing = b.absorbing[:0]
		b.sink.Emit(events.NewBossEvent(events.BossExploding, now, b.X, b.Y, b.absorbed))
	}
}

func (b *Boss) updateDefeated(pop *Population, dt, now float64) {
	bc := b.cfg.Boss
	b.conversion += dt
	progress := b.conversion / bc.ConversionDuration

	if progress < 1 {
		phase := PhaseContraction
		switch {
		case progress >= bc.PhaseRebirth:
			phase = PhaseRebirth
		case progress >= bc.PhaseReorganize:
			phase = PhaseReorganization
		}
		if phase != b.phase {
			b.phase = phase
			ev := events.NewBossEvent(events.BossPhase, now, b.X, b.Y, b.converted)
			ev.Phase = phase
			b.sink.Emit(ev)
		}
		return
	}

	if !b.convertedOnce {
		b.convertedOnce = true
		born := pop.Spawn(b.X, b.Y, b.converted, SpawnOptions{})
		b.convertedID = born.Identity.ID
		ev := events.NewBossEvent(events.BossConverted, now, b.X, b.Y, b.converted)
		ev.EntityID = b.convertedID
		b.sink.Emit(ev)
	}
	b.deactivate(now)
}

func (b *Boss) updateExploding(pop *Population, dt, now float64, arena Arena) {
	extent := arena.Diagonal()
	b.explosion += extent / b.cfg.Boss.ExplosionDuration * dt

	if !b.damageFired {
		b.damageFired = true
		pop.Each(func(e Body) {
			if pop.Kill(e) {
				b.explosionHits++
			}
		})
	}

	if b.explosion > extent {
		b.deactivate(now)
	}
}

func (b *Boss) deactivate(now float64) {
	b.active = false
	b.sink.Emit(events.NewBossEvent(events.BossGone, now, b.X, b.Y, b.absorbed))
}
