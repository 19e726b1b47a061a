package game

import (
	"github.com/pthm-cable/wudao/components"
	"github.com/pthm-cable/wudao/systems"
)

// EntityView is a read-only snapshot of one entity.
type EntityView struct {
	ID     uint32
	Slot   int
	X, Y   float64
	Radius float64
	Energy float64
	State  components.LifeState
	Player bool
	Title  bool
	Hit    bool

	Absorbing  bool
	SourceID   uint32 // Entity drained by this one
	Drained    bool
	AbsorberID uint32 // Entity draining this one
	CoreLinked bool
}

// BossView is a read-only snapshot of the Boss.
type BossView struct {
	Present            bool // A Boss exists this session, active or not
	Active             bool
	State              systems.BossState
	X, Y               float64
	Radius             float64
	Progress           float64 // Absorbed / required
	Required           float64
	Absorbed           float64
	Paused             bool
	Absorbing          []uint32
	ExplosionRadius    float64
	Phase              int
	ConversionProgress float64
}

// CoreView is a read-only snapshot of the title core.
type CoreView struct {
	Present  bool
	X, Y     float64
	Radius   float64
	Reach    float64 // Center distance at which the core drains an entity
	Energy   float64
	Progress float64
	Ready    bool
	SourceID uint32
}

// Observation is everything a renderer or controller may read about the game.
// Slices are reused and valid until the next call to Observe.
type Observation struct {
	State     State
	Cause     Cause
	Elapsed   float64
	FinalTime float64
	WallClock float64

	FlourishProgress  float64 // 0 when no flourish is running
	TitleExitProgress float64

	Width, Height float64

	Entities    []EntityView
	PlayerIndex int // Index into Entities, -1 if none
	ActiveLinks int

	Boss BossView
	Core CoreView
}

// Observe returns a snapshot of the current state.
func (g *Game) Observe() Observation {
	obs := Observation{
		State:             g.state,
		Cause:             g.cause,
		Elapsed:           g.elapsed,
		FinalTime:         g.finalTime,
		WallClock:         g.wallClock,
		TitleExitProgress: g.TitleExitProgress(),
		Width:             g.arena.W,
		Height:            g.arena.H,
		PlayerIndex:       -1,
		Entities:          g.obs.Entities[:0],
		ActiveLinks:       g.interactions.ActiveLinks(),
	}
	if g.state == StateGameOver {
		obs.Elapsed = g.finalTime
	}
	if g.flourish > 0 && g.cfg.Session.StartFlourish > 0 {
		obs.FlourishProgress = 1 - g.flourish/g.cfg.Session.StartFlourish
	}

	idOf := func(e systems.Body, ok bool) uint32 {
		if !ok {
			return 0
		}
		return e.Identity.ID
	}

	g.pop.Each(func(b systems.Body) {
		v := EntityView{
			ID:         b.Identity.ID,
			Slot:       b.Identity.Slot,
			X:          b.Pos.X,
			Y:          b.Pos.Y,
			Radius:     b.Radius(),
			Energy:     b.Energy.Value,
			State:      b.Life.State,
			Player:     b.Identity.Player,
			Title:      b.Identity.Title,
			Hit:        b.Hit(),
			Absorbing:  b.Link.Absorbing,
			Drained:    b.Link.Drained,
			CoreLinked: b.Link.Core,
		}
		if b.Link.Absorbing {
			v.SourceID = idOf(g.pop.Lookup(b.Link.Source))
		}
		if b.Link.Drained {
			v.AbsorberID = idOf(g.pop.Lookup(b.Link.Absorber))
		}
		if v.Player {
			obs.PlayerIndex = len(obs.Entities)
		}
		obs.Entities = append(obs.Entities, v)
	})
	g.obs.Entities = obs.Entities

	if b := g.boss; b != nil {
		obs.Boss = BossView{
			Present:            true,
			Active:             b.Active(),
			State:              b.State(),
			X:                  b.X,
			Y:                  b.Y,
			Radius:             b.Radius(),
			Progress:           b.Progress(),
			Required:           b.Required(),
			Absorbed:           b.Absorbed(),
			Paused:             b.Paused(),
			Absorbing:          append(g.obs.Boss.Absorbing[:0], b.Absorbing()...),
			ExplosionRadius:    b.ExplosionRadius(),
			Phase:              b.Phase(),
			ConversionProgress: b.ConversionProgress(),
		}
		g.obs.Boss.Absorbing = obs.Boss.Absorbing
	}

	if c := g.core; c != nil {
		obs.Core = CoreView{
			Present:  true,
			X:        c.X,
			Y:        c.Y,
			Radius:   c.Radius(),
			Reach:    g.cfg.Derived.TitleAbsorptionDistance,
			Energy:   c.Energy(),
			Progress: c.Progress(),
			Ready:    c.Ready(),
		}
		if src, ok := c.Source(); ok {
			obs.Core.SourceID = idOf(g.pop.Lookup(src))
		}
	}

	return obs
}

// Player returns the player's view and whether there is one.
func (o Observation) Player() (EntityView, bool) {
	if o.PlayerIndex < 0 || o.PlayerIndex >= len(o.Entities) {
		return EntityView{}, false
	}
	return o.Entities[o.PlayerIndex], true
}
