package ecs

// EntityId encodes both the generation (upper 32 bits) and the slot index
// (lower 32 bits). Slot indices are recycled through a free list; the
// generation is bumped every time a slot is recycled, so a handle held
// across a destroy can never be mistaken for the slot's next occupant.
type EntityId uint64

// NewEntityId creates an EntityId from a generation and a slot index.
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the generation from the entity ID.
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
