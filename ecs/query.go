package ecs

import "iter"

// Queries iterate entities that are present in every requested column,
// yielding pointers into the dense arrays. The requested types are distinct,
// so the yielded pointers never alias each other; mutating through them is
// the supported write path during iteration. Structural changes (Add,
// Remove, DestroyEntity) must not happen while a query is running.
//
// Multi-component queries walk the smallest requested column and probe the
// others through their index maps, so cost is proportional to the smallest
// column, not the largest.

// Pair holds pointers to two components of one entity.
type Pair[A, B any] struct {
	A *A
	B *B
}

// Iter iterates all entities holding a component of type A.
func Iter[A any](w *World) iter.Seq2[EntityId, *A] {
	col := columnFor[A](w.components, false)
	if col == nil {
		return func(yield func(EntityId, *A) bool) {}
	}
	return col.All()
}

// Each invokes fn for every entity holding a component of type A.
func Each[A any](w *World, fn func(EntityId, *A)) {
	for id, a := range Iter[A](w) {
		fn(id, a)
	}
}

// Iter2 iterates entities holding both A and B.
func Iter2[A, B any](w *World) iter.Seq2[EntityId, Pair[A, B]] {
	colA := columnFor[A](w.components, false)
	colB := columnFor[B](w.components, false)
	return func(yield func(EntityId, Pair[A, B]) bool) {
		if colA == nil || colB == nil {
			return
		}
		if colA.Len() <= colB.Len() {
			for id, a := range colA.All() {
				b, ok := colB.Get(id)
				if !ok {
					continue
				}
				if !yield(id, Pair[A, B]{A: a, B: b}) {
					return
				}
			}
			return
		}
		for id, b := range colB.All() {
			a, ok := colA.Get(id)
			if !ok {
				continue
			}
			if !yield(id, Pair[A, B]{A: a, B: b}) {
				return
			}
		}
	}
}

// Each2 invokes fn for every entity holding both A and B.
func Each2[A, B any](w *World, fn func(EntityId, *A, *B)) {
	for id, c := range Iter2[A, B](w) {
		fn(id, c.A, c.B)
	}
}

// Each3 invokes fn for every entity holding A, B and C.
func Each3[A, B, C any](w *World, fn func(EntityId, *A, *B, *C)) {
	colA := columnFor[A](w.components, false)
	colB := columnFor[B](w.components, false)
	colC := columnFor[C](w.components, false)
	if colA == nil || colB == nil || colC == nil {
		return
	}

	// Drive from the smallest column.
	driver := 0
	smallest := colA.Len()
	if colB.Len() < smallest {
		driver, smallest = 1, colB.Len()
	}
	if colC.Len() < smallest {
		driver = 2
	}

	var ids []EntityId
	switch driver {
	case 0:
		ids = colA.Entities()
	case 1:
		ids = colB.Entities()
	default:
		ids = colC.Entities()
	}

	for _, id := range ids {
		a, ok := colA.Get(id)
		if !ok {
			continue
		}
		b, ok := colB.Get(id)
		if !ok {
			continue
		}
		c, ok := colC.Get(id)
		if !ok {
			continue
		}
		fn(id, a, b, c)
	}
}

// Count2 returns the number of entities holding both A and B.
func Count2[A, B any](w *World) int {
	n := 0
	for range Iter2[A, B](w) {
		n++
	}
	return n
}
