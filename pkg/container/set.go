package container

import "github.com/jharju/stm"

// Set is a transactional hash set; a Map with presence-only values.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet creates an empty transactional set.
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}]()}
}

// Add inserts k, reporting whether it was newly added.
func (s *Set[K]) Add(tx *stm.Tx, k K) bool {
	if s.m.Has(tx, k) {
		return false
	}
	s.m.Set(tx, k, struct{}{})
	return true
}

// Remove deletes k, reporting whether it was present.
func (s *Set[K]) Remove(tx *stm.Tx, k K) bool {
	return s.m.Delete(tx, k)
}

// Has reports whether k is present.
func (s *Set[K]) Has(tx *stm.Tx, k K) bool {
	return s.m.Has(tx, k)
}

// Len returns the number of elements.
func (s *Set[K]) Len(tx *stm.Tx) int {
	return s.m.Len(tx)
}

// Elems returns the elements in unspecified order.
func (s *Set[K]) Elems(tx *stm.Tx) []K {
	return s.m.Keys(tx)
}

// Clear removes every element.
func (s *Set[K]) Clear(tx *stm.Tx) {
	s.m.Clear(tx)
}
