package systems

import "slices"

// Interactions forms absorption links between nearby entities and runs the
// per-link energy transfers.
type Interactions struct {
	pop  *Population
	grid *SpatialGrid

	candidates []int
}

// NewInteractions creates the interaction engine for a population.
func NewInteractions(pop *Population) *Interactions {
	return &Interactions{
		pop:        pop,
		grid:       NewSpatialGrid(1, 1, 1),
		candidates: make([]int, 0, 32),
	}
}

// rebuildGrid buckets every Alive entity and returns the largest radius.
func (s *Interactions) rebuildGrid(arena Arena) float64 {
	maxRadius := 0.0
	s.pop.Each(func(b Body) {
		if b.Alive() {
			maxRadius = max(maxRadius, b.Radius())
		}
	})

	reach := s.pop.cfg.Transfer.InteractionDistance + 2*maxRadius
	s.grid.Reset(arena.W, arena.H, reach)
	s.pop.Each(func(b Body) {
		if b.Alive() {
			s.grid.Insert(b.Identity.Slot, b.Pos.X, b.Pos.Y)
		}
	})
	return maxRadius
}

// canInteract reports whether two entities are close enough to link.
func (s *Interactions) canInteract(a, b Body) bool {
	return a.Alive() && b.Alive() && Gap(a, b) <= s.pop.cfg.Transfer.InteractionDistance
}

// Link scans unordered pairs in slot order. When two unlinked entities are in
// range with unequal energy, the weaker one starts absorbing from the stronger.
// Returns the number of links formed.
func (s *Interactions) Link(arena Arena) int {
	pop := s.pop
	maxRadius := s.rebuildGrid(arena)
	formed := 0

	for i := 0; i < pop.Slots(); i++ {
		a, ok := pop.At(i)
		if !ok || !a.Alive() || a.Link.Linked() {
			continue
		}

		// Grid candidates in slot order keep the pair order of a full scan
		reach := pop.cfg.Transfer.InteractionDistance + a.Radius() + maxRadius
		s.candidates = s.grid.QueryInto(s.candidates[:0], a.Pos.X, a.Pos.Y, reach)
		slices.Sort(s.candidates)

		for _, j := range s.candidates {
			if j <= i {
				continue
			}
			if a.Link.Linked() {
				break
			}
			b, ok := pop.At(j)
			if !ok || b.Link.Linked() || !s.canInteract(a, b) {
				continue
			}

			switch {
			case a.Energy.Value < b.Energy.Value:
				if pop.Link(a, b) {
					formed++
				}
			case b.Energy.Value < a.Energy.Value:
				if pop.Link(b, a) {
					formed++
				}
			}
		}
	}
	return formed
}

// Transfer runs one tick of every active link in slot order. Links whose
// source is gone or out of range are torn down first. Returns the energy moved.
func (s *Interactions) Transfer(dt float64) float64 {
	pop := s.pop
	cfg := pop.cfg
	moved := 0.0

	for i := 0; i < pop.Slots(); i++ {
		a, ok := pop.At(i)
		if !ok || !a.Link.Absorbing {
			continue
		}

		src, ok := pop.Lookup(a.Link.Source)
		if !ok || !a.Alive() || !src.Alive() {
			pop.Unlink(a)
			continue
		}
		if Gap(a, src) > cfg.Transfer.InteractionDistance {
			pop.Unlink(a)
			continue
		}

		a.Link.Clock += dt
		if a.Link.Clock < cfg.Transfer.Interval {
			continue
		}
		a.Link.Clock = 0
		// A source drained to zero dies and tears the link down itself
		moved += Transfer(src, a, cfg.Derived.TransferAmount, 0)
	}
	return moved
}

// ActiveLinks returns the number of entity-to-entity links.
func (s *Interactions) ActiveLinks() int {
	n := 0
	s.pop.Each(func(b Body) {
		if b.Link.Absorbing {
			n++
		}
	})
	return n
}
