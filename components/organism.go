package components

// LifeState is the lifecycle stage of an entity.
type LifeState uint8

const (
	Alive LifeState = iota
	Dying           // Death animation running, no longer interacts
	Dead            // Eligible for eviction
)

func (s LifeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// Energy is an entity's absolute energy. Never negative.
type Energy struct {
	Value float64
}

// Life tracks the death transition.
type Life struct {
	State      LifeState
	DeathTimer float64 // seconds since entering Dying
}

// Identity bundles roster placement and role flags.
type Identity struct {
	ID       uint32 // Monotonic per population, starts at 1
	Slot     int    // Roster slot, reused after eviction
	Player   bool
	Title    bool    // Title screen entity: faster, never absorbed by peers
	HitUntil float64 // Clock time the explosion hit flag expires
}
