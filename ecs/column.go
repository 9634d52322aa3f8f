package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// anyColumn is the capability interface every typed column exposes to the
// type-erased side of the storage: enough to purge an entity's data and to
// reset the column, nothing more. Typed access goes through a checked
// downcast to *Column[T].
type anyColumn interface {
	removeEntity(id EntityId) bool
	clear()
	len() int
}

// Column is the dense storage for one component type across all entities.
// Values live in a contiguous slice with a parallel slice of owning entity
// IDs; an index map gives O(1) entity lookup. Removal compacts by swapping
// the last element into the vacated slot, so iteration order is not stable
// across removals.
type Column[T any] struct {
	values   []T
	entities []EntityId
	index    *intmap.Map[EntityId, int]
}

// NewColumn creates an empty column.
func NewColumn[T any]() *Column[T] {
	return &Column[T]{
		index: intmap.New[EntityId, int](64),
	}
}

// Insert sets the entity's component value. If the entity already has a
// value in this column it is overwritten in place and its dense index does
// not change; otherwise the value is appended.
func (c *Column[T]) Insert(id EntityId, value T) {
	if pos, ok := c.index.Get(id); ok {
		c.values[pos] = value
		return
	}
	pos := len(c.values)
	c.values = append(c.values, value)
	c.entities = append(c.entities, id)
	c.index.Put(id, pos)
}

// Get returns a pointer to the entity's component value, or false if the
// entity has no value in this column. The pointer is invalidated by the
// next Insert or Remove on this column.
func (c *Column[T]) Get(id EntityId) (*T, bool) {
	pos, ok := c.index.Get(id)
	if !ok {
		return nil, false
	}
	return &c.values[pos], true
}

// Has reports whether the entity has a value in this column.
func (c *Column[T]) Has(id EntityId) bool {
	_, ok := c.index.Get(id)
	return ok
}

// Remove deletes the entity's component value and returns it. The last
// element is swapped into the vacated slot and its index entry is re-pointed
// to keep lookups for the moved entity valid.
func (c *Column[T]) Remove(id EntityId) (T, bool) {
	var zero T
	pos, ok := c.index.Get(id)
	if !ok {
		return zero, false
	}

	removed := c.values[pos]
	last := len(c.values) - 1
	if pos != last {
		c.values[pos] = c.values[last]
		c.entities[pos] = c.entities[last]
		c.index.Put(c.entities[pos], pos)
	}

	c.values[last] = zero // release references held by the old value
	c.values = c.values[:last]
	c.entities = c.entities[:last]
	c.index.Del(id)
	return removed, true
}

// Len returns the number of values in the column.
func (c *Column[T]) Len() int {
	return len(c.values)
}

// All returns an iterator over the dense arrays directly. Order is
// insertion/compaction order, not entity ID order.
func (c *Column[T]) All() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for i := range c.values {
			if !yield(c.entities[i], &c.values[i]) {
				return
			}
		}
	}
}

// Entities returns the owning entity IDs in dense order. The slice is the
// column's own backing array; callers must not mutate it.
func (c *Column[T]) Entities() []EntityId {
	return c.entities
}

func (c *Column[T]) removeEntity(id EntityId) bool {
	_, ok := c.Remove(id)
	return ok
}

func (c *Column[T]) clear() {
	var zero T
	for i := range c.values {
		c.values[i] = zero
	}
	c.values = c.values[:0]
	c.entities = c.entities[:0]
	c.index.Clear()
}

func (c *Column[T]) len() int {
	return len(c.values)
}
