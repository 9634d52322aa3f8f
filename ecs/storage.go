package ecs

import "reflect"

// componentStorage maps a component type to its erased column. Columns are
// created lazily on the first insert of a type and live for the lifetime of
// the storage; Clear empties them without discarding them.
type componentStorage struct {
	columns map[reflect.Type]anyColumn
}

func newComponentStorage() *componentStorage {
	return &componentStorage{
		columns: make(map[reflect.Type]anyColumn),
	}
}

// removeAll purges the entity's entry from every column.
func (s *componentStorage) removeAll(id EntityId) {
	for _, col := range s.columns {
		col.removeEntity(id)
	}
}

func (s *componentStorage) clear() {
	for _, col := range s.columns {
		col.clear()
	}
}

// columnFor recovers the typed column for T, creating it if requested.
// A column registered under T's type but holding a different concrete
// column type would be a bug in this package, and the type assertion
// panics rather than returning wrong data.
func columnFor[T any](s *componentStorage, create bool) *Column[T] {
	t := reflect.TypeFor[T]()
	col, ok := s.columns[t]
	if !ok {
		if !create {
			return nil
		}
		typed := NewColumn[T]()
		s.columns[t] = typed
		return typed
	}
	typed, ok := col.(*Column[T])
	if !ok {
		panic("ecs: column for " + t.String() + " holds a mismatched concrete type")
	}
	return typed
}
