package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/config"
	"github.com/pthm-cable/wudao/events"
)

// SpawnOptions sets the role flags of a new entity.
type SpawnOptions struct {
	Player bool
	Title  bool
}

// Body is a view of one entity's components. The pointers are invalidated by
// Spawn and Evict; re-fetch through At or Lookup after either.
type Body struct {
	Entity   ecs.Entity
	Pos      *components.Position
	Energy   *components.Energy
	Life     *components.Life
	Link     *components.Link
	Drift    *components.Drift
	Identity *components.Identity

	pop *Population
}

// Population owns the entity world and the slot roster.
type Population struct {
	cfg  *config.Config
	sink events.Sink

	world  *ecs.World
	mapper *ecs.Map6[
		components.Position,
		components.Energy,
		components.Life,
		components.Link,
		components.Drift,
		components.Identity,
	]
	energyFilter *ecs.Filter2[components.Energy, components.Life]

	roster    Roster
	nextID    uint32
	player    ecs.Entity
	hasPlayer bool
	now       float64
}

// NewPopulation creates an empty population publishing to sink.
func NewPopulation(cfg *config.Config, sink events.Sink) *Population {
	if sink == nil {
		sink = events.Discard
	}
	world := ecs.NewWorld()
	return &Population{
		cfg:   cfg,
		sink:  sink,
		world: world,
		mapper: ecs.NewMap6[
			components.Position,
			components.Energy,
			components.Life,
			components.Link,
			components.Drift,
			components.Identity,
		](world),
		energyFilter: ecs.NewFilter2[components.Energy, components.Life](world),
	}
}

// SetTime sets the clock stamped on emitted events and hit flags.
func (p *Population) SetTime(now float64) {
	p.now = now
}

// Now returns the population clock.
func (p *Population) Now() float64 {
	return p.now
}

// Config returns the configuration the population was built with.
func (p *Population) Config() *config.Config {
	return p.cfg
}

// Spawn creates an Alive entity in the lowest free slot.
func (p *Population) Spawn(x, y, energy float64, opts SpawnOptions) Body {
	p.nextID++

	pos := components.Position{X: x, Y: y}
	en := components.Energy{Value: math.Max(0, energy)}
	life := components.Life{State: components.Alive}
	link := components.Link{}
	drift := components.Drift{}
	ident := components.Identity{ID: p.nextID, Player: opts.Player, Title: opts.Title}

	entity := p.mapper.NewEntity(&pos, &en, &life, &link, &drift, &ident)
	slot := p.roster.Insert(entity)

	b := p.get(entity)
	b.Identity.Slot = slot
	if opts.Player {
		p.player = entity
		p.hasPlayer = true
	}
	return b
}

func (p *Population) get(e ecs.Entity) Body {
	pos, en, life, link, drift, ident := p.mapper.Get(e)
	return Body{
		Entity:   e,
		Pos:      pos,
		Energy:   en,
		Life:     life,
		Link:     link,
		Drift:    drift,
		Identity: ident,
		pop:      p,
	}
}

// At returns the entity in a roster slot.
func (p *Population) At(slot int) (Body, bool) {
	e, ok := p.roster.At(slot)
	if !ok {
		return Body{}, false
	}
	return p.get(e), true
}

// Lookup returns the body of a live ECS entity.
func (p *Population) Lookup(e ecs.Entity) (Body, bool) {
	if !p.world.Alive(e) {
		return Body{}, false
	}
	return p.get(e), true
}

// Player returns the player entity if it is still in the roster.
func (p *Population) Player() (Body, bool) {
	if !p.hasPlayer {
		return Body{}, false
	}
	return p.Lookup(p.player)
}

// Slots returns the roster length including free slots.
func (p *Population) Slots() int {
	return p.roster.Len()
}

// Count returns the number of entities in the roster.
func (p *Population) Count() int {
	return p.roster.Count()
}

// Each calls fn for every entity in slot order. fn must not spawn or evict.
func (p *Population) Each(fn func(b Body)) {
	for i := 0; i < p.roster.Len(); i++ {
		if b, ok := p.At(i); ok {
			fn(b)
		}
	}
}

// Evict removes an entity from the roster and the world.
func (p *Population) Evict(e ecs.Entity) {
	b, ok := p.Lookup(e)
	if !ok {
		return
	}
	p.Unlink(b)
	p.UnlinkCore(b)
	if p.hasPlayer && e == p.player {
		p.hasPlayer = false
	}
	p.roster.Free(b.Identity.Slot)
	p.world.RemoveEntity(e)
}

// Sweep evicts every Dead entity. The player is retained when keepPlayer is set.
// Returns the number of evicted entities.
func (p *Population) Sweep(keepPlayer bool) int {
	// First pass: collect (pointers are invalidated by removal)
	var toRemove []ecs.Entity
	p.Each(func(b Body) {
		if b.Life.State != components.Dead {
			return
		}
		if keepPlayer && b.Identity.Player {
			return
		}
		toRemove = append(toRemove, b.Entity)
	})

	// Second pass: remove
	for _, e := range toRemove {
		p.Evict(e)
	}
	return len(toRemove)
}

// AliveEnergies appends the energy of every Alive entity to dst.
func (p *Population) AliveEnergies(dst []float64) []float64 {
	query := p.energyFilter.Query()
	for query.Next() {
		en, life := query.Get()
		if life.State == components.Alive {
			dst = append(dst, en.Value)
		}
	}
	return dst
}

// Link makes absorber drain source. Both must be Alive, distinct and not
// already an endpoint of any link.
func (p *Population) Link(absorber, source Body) bool {
	if absorber.Entity == source.Entity {
		return false
	}
	if !absorber.Alive() || !source.Alive() {
		return false
	}
	if absorber.Link.Linked() || source.Link.Linked() {
		return false
	}

	absorber.Link.Source = source.Entity
	absorber.Link.Absorbing = true
	absorber.Link.Clock = 0
	source.Link.Absorber = absorber.Entity
	source.Link.Drained = true

	p.sink.Emit(events.NewLinkEvent(events.AbsorbStart, p.now, absorber.Identity.ID, source.Identity.ID))
	return true
}

// Unlink tears down the entity link b is an endpoint of, on either side.
func (p *Population) Unlink(b Body) {
	if b.Link.Absorbing {
		var sourceID uint32
		if src, ok := p.Lookup(b.Link.Source); ok {
			sourceID = src.Identity.ID
			src.Link.Drained = false
			src.Link.Absorber = ecs.Entity{}
		}
		b.Link.Absorbing = false
		b.Link.Source = ecs.Entity{}
		b.Link.Clock = 0
		p.sink.Emit(events.NewLinkEvent(events.AbsorbStop, p.now, b.Identity.ID, sourceID))
	}
	if b.Link.Drained {
		var absorberID uint32
		if abs, ok := p.Lookup(b.Link.Absorber); ok {
			absorberID = abs.Identity.ID
			abs.Link.Absorbing = false
			abs.Link.Source = ecs.Entity{}
			abs.Link.Clock = 0
		}
		b.Link.Drained = false
		b.Link.Absorber = ecs.Entity{}
		p.sink.Emit(events.NewLinkEvent(events.AbsorbStop, p.now, absorberID, b.Identity.ID))
	}
}

// LinkCore marks b as feeding the title core.
func (p *Population) LinkCore(b Body) bool {
	if !b.Alive() || b.Link.Linked() {
		return false
	}
	b.Link.Core = true
	p.sink.Emit(events.NewCoreLinkEvent(events.AbsorbStart, p.now, b.Identity.ID))
	return true
}

// UnlinkCore clears the title core link of b.
func (p *Population) UnlinkCore(b Body) {
	if !b.Link.Core {
		return
	}
	b.Link.Core = false
	p.sink.Emit(events.NewCoreLinkEvent(events.AbsorbStop, p.now, b.Identity.ID))
}
