package ecs

import "slices"

// Removable is a table that can forget an entity.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore maps entity ids to component pointers. Iteration is in
// ascending id order, which is creation order, so runs that visit a store
// stay reproducible.
type PtrComponentStore[T any] struct {
	rows map[EntityID]*T
	ids  []EntityID // sorted; rebuilt lazily after inserts and removals
	sync bool
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{rows: make(map[EntityID]*T, 256)}
}

// NewStore creates a store that joins set, so destroyed entities leave it
// on the next flush.
func NewStore[T any](set *Stores) *PtrComponentStore[T] {
	s := NewPtrComponentStore[T]()
	set.Join(s)
	return s
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	if _, ok := s.rows[id]; !ok {
		s.sync = false
	}
	s.rows[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.rows[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	if _, ok := s.rows[id]; ok {
		delete(s.rows, id)
		s.sync = false
	}
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.rows[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.rows)
}

// IDs returns the ids in ascending order. The slice is owned by the store
// and valid until the next Set or Remove.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	if !s.sync {
		s.ids = s.ids[:0]
		for id := range s.rows {
			s.ids = append(s.ids, id)
		}
		slices.Sort(s.ids)
		s.sync = true
	}
	return s.ids
}

// Each visits rows in ascending id order. fn must not add or remove rows.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.IDs() {
		fn(id, s.rows[id])
	}
}
