package components

import "github.com/mlange-42/ark/ecs"

// Link holds both ends of an entity's absorption relationships.
// An entity is an endpoint of at most one link at a time.
type Link struct {
	Source    ecs.Entity // Entity this one drains, valid while Absorbing
	Absorbing bool

	Absorber ecs.Entity // Entity draining this one, valid while Drained
	Drained  bool

	Core bool // Feeding the title core

	Clock float64 // Seconds since the last transfer, absorber side only
}

// Linked reports whether the entity is an endpoint of any link.
func (l *Link) Linked() bool {
	return l.Absorbing || l.Drained || l.Core
}
