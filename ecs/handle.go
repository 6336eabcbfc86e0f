package ecs

// EntityId encodes the arena slot index (lower 32 bits) and the slot's generation (upper 32 bits).
// Freeing a slot bumps its generation, so ids held past an entity's destruction stop resolving.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the arena slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether the id is the zero value. Generations start at 1, so no live entity has it.
func (e EntityId) IsZero() bool {
	return e == 0
}

// arena owns every entity of a scene and hands out generation-checked ids.
// Freed slots are recycled through a free list.
type arena struct {
	slots       []*Entity
	generations []uint32
	freeSlots   []uint32
	live        int
}

func (a *arena) alloc(e *Entity) EntityId {
	var index uint32
	if len(a.freeSlots) > 0 {
		index = a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, nil)
		a.generations = append(a.generations, 1)
	}

	a.slots[index] = e
	a.live++
	return NewEntityId(index, a.generations[index])
}

func (a *arena) get(id EntityId) *Entity {
	index := id.Index()
	if int(index) >= len(a.slots) {
		return nil
	}
	if a.generations[index] != id.Generation() {
		return nil
	}
	return a.slots[index]
}

func (a *arena) free(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(a.slots) || a.generations[index] != id.Generation() {
		return false
	}

	a.slots[index] = nil
	a.generations[index]++
	if a.generations[index] == 0 {
		// Skip generation 0 on wraparound so the zero id never resolves.
		a.generations[index] = 1
	}
	a.freeSlots = append(a.freeSlots, index)
	a.live--
	return true
}
