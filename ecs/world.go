package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// World owns entity identity and all component columns. It is the sole
// mutator of the entity lifecycle; columns are never shared outside the
// world. A world is not safe for concurrent use.
type World struct {
	entities   []EntityId
	liveIndex  *intmap.Map[uint32, int]
	generation []uint32
	free       []uint32
	next       uint32

	components *componentStorage
	onDestroy  []func(EntityId)
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return NewWorldWithCapacity(1024)
}

// NewWorldWithCapacity creates an empty world with pre-sized entity storage.
func NewWorldWithCapacity(capacity int) *World {
	return &World{
		entities:   make([]EntityId, 0, capacity),
		liveIndex:  intmap.New[uint32, int](capacity),
		generation: make([]uint32, 0, capacity),
		components: newComponentStorage(),
	}
}

// CreateEntity allocates a new live entity. Slot indices are reused from a
// LIFO free list before new ones are allocated, keeping the index range
// bounded; a reused slot carries a fresh generation.
func (w *World) CreateEntity() EntityId {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = w.next
		w.next++
		w.generation = append(w.generation, 0)
	}

	id := NewEntityId(w.generation[index], index)
	w.liveIndex.Put(index, len(w.entities))
	w.entities = append(w.entities, id)
	return id
}

// DestroyEntity removes the entity and purges its data from every component
// column. Returns false if the handle is stale or the entity was never
// live; in particular, destroying the same handle twice only succeeds the
// first time, so a slot is never pushed onto the free list twice.
func (w *World) DestroyEntity(id EntityId) bool {
	pos, ok := w.liveIndex.Get(id.Index())
	if !ok || w.entities[pos] != id {
		return false
	}

	for _, hook := range w.onDestroy {
		hook(id)
	}

	last := len(w.entities) - 1
	if pos != last {
		moved := w.entities[last]
		w.entities[pos] = moved
		w.liveIndex.Put(moved.Index(), pos)
	}
	w.entities = w.entities[:last]
	w.liveIndex.Del(id.Index())

	w.components.removeAll(id)

	w.generation[id.Index()]++ // invalidates every outstanding handle
	w.free = append(w.free, id.Index())
	return true
}

// Alive reports whether the handle refers to a currently live entity.
// Handles to destroyed entities stay dead even after their slot is reused.
func (w *World) Alive(id EntityId) bool {
	pos, ok := w.liveIndex.Get(id.Index())
	return ok && w.entities[pos] == id
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// Entities iterates the live entities. Order is not entity-ID order and is
// not stable across destroys.
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range w.entities {
			if !yield(id) {
				return
			}
		}
	}
}

// OnDestroy registers a hook invoked for every entity right before it is
// destroyed, while its component data is still present. The engine uses
// this to keep the physics world's body maps in sync with entity lifetime.
func (w *World) OnDestroy(hook func(EntityId)) {
	w.onDestroy = append(w.onDestroy, hook)
}

// Clear destroys all entities and empties every column. Destroy hooks run
// for each live entity. Slot generations survive, so handles from before
// the clear stay invalid.
func (w *World) Clear() {
	for _, hook := range w.onDestroy {
		for _, id := range w.entities {
			hook(id)
		}
	}
	for _, id := range w.entities {
		w.generation[id.Index()]++
		w.free = append(w.free, id.Index())
	}
	w.entities = w.entities[:0]
	w.liveIndex.Clear()
	w.components.clear()
}

// Add sets the entity's component of type T, overwriting any existing
// value. The column for T is created on first use. Stale handles are
// rejected.
func Add[T any](w *World, id EntityId, value T) bool {
	if !w.Alive(id) {
		return false
	}
	columnFor[T](w.components, true).Insert(id, value)
	return true
}

// Get returns a pointer to the entity's component of type T. Absence —
// entity not live, no column for T, or no value for this entity — is
// normal control flow, reported via the second return.
func Get[T any](w *World, id EntityId) (*T, bool) {
	if !w.Alive(id) {
		return nil, false
	}
	col := columnFor[T](w.components, false)
	if col == nil {
		return nil, false
	}
	return col.Get(id)
}

// MustGet is Get for callers that have already established presence.
// It panics on absence, which would be a programmer error at that point.
func MustGet[T any](w *World, id EntityId) *T {
	v, ok := Get[T](w, id)
	if !ok {
		panic("ecs: MustGet on entity without requested component")
	}
	return v
}

// Remove deletes the entity's component of type T and returns it.
func Remove[T any](w *World, id EntityId) (T, bool) {
	var zero T
	if !w.Alive(id) {
		return zero, false
	}
	col := columnFor[T](w.components, false)
	if col == nil {
		return zero, false
	}
	return col.Remove(id)
}

// Has reports whether the entity has a component of type T.
func Has[T any](w *World, id EntityId) bool {
	if !w.Alive(id) {
		return false
	}
	col := columnFor[T](w.components, false)
	return col != nil && col.Has(id)
}

// ColumnOf exposes the dense column for T, creating it if absent. Intended
// for tight system loops that want raw dense iteration.
func ColumnOf[T any](w *World) *Column[T] {
	return columnFor[T](w.components, true)
}
