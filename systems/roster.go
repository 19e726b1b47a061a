package systems

import "github.com/mlange-42/ark/ecs"

// Roster maps stable slot indices to entities. Slots are iterated in index
// order and a freed slot is handed to the next insert before the roster grows.
type Roster struct {
	entities []ecs.Entity
	used     []bool
	count    int
}

// Insert places e in the lowest free slot and returns the slot index.
func (r *Roster) Insert(e ecs.Entity) int {
	for i, u := range r.used {
		if !u {
			r.entities[i] = e
			r.used[i] = true
			r.count++
			return i
		}
	}
	r.entities = append(r.entities, e)
	r.used = append(r.used, true)
	r.count++
	return len(r.entities) - 1
}

// Free releases a slot. Freeing an unused or out-of-range slot is a no-op.
func (r *Roster) Free(slot int) {
	if slot < 0 || slot >= len(r.used) || !r.used[slot] {
		return
	}
	r.used[slot] = false
	r.entities[slot] = ecs.Entity{}
	r.count--
}

// At returns the entity in a slot.
func (r *Roster) At(slot int) (ecs.Entity, bool) {
	if slot < 0 || slot >= len(r.used) || !r.used[slot] {
		return ecs.Entity{}, false
	}
	return r.entities[slot], true
}

// Len returns the number of slots, used or free.
func (r *Roster) Len() int {
	return len(r.entities)
}

// Count returns the number of occupied slots.
func (r *Roster) Count() int {
	return r.count
}
