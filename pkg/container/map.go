package container

import "github.com/jharju/stm"

// Map is a transactional hash map backed by a single Var holding an
// immutable map value. Writes clone the map, which keeps reads O(1) and
// conflict detection whole-map: two transactions writing different keys of
// the same Map conflict. Shard across several Maps if that matters.
type Map[K comparable, V any] struct {
	state *stm.Var[map[K]V]
}

// NewMap creates an empty transactional map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{state: stm.NewVar(map[K]V{})}
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(tx *stm.Tx, k K) (V, bool) {
	v, ok := m.state.Get(tx)[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(tx *stm.Tx, k K) bool {
	_, ok := m.state.Get(tx)[k]
	return ok
}

// Set stores v under k.
func (m *Map[K, V]) Set(tx *stm.Tx, k K, v V) {
	cur := m.state.Get(tx)
	next := make(map[K]V, len(cur)+1)
	for kk, vv := range cur {
		next[kk] = vv
	}
	next[k] = v
	m.state.Set(tx, next)
}

// Delete removes k, reporting whether it was present.
func (m *Map[K, V]) Delete(tx *stm.Tx, k K) bool {
	cur := m.state.Get(tx)
	if _, ok := cur[k]; !ok {
		return false
	}
	next := make(map[K]V, len(cur)-1)
	for kk, vv := range cur {
		if kk != k {
			next[kk] = vv
		}
	}
	m.state.Set(tx, next)
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len(tx *stm.Tx) int {
	return len(m.state.Get(tx))
}

// Keys returns the keys in unspecified order.
func (m *Map[K, V]) Keys(tx *stm.Tx) []K {
	cur := m.state.Get(tx)
	keys := make([]K, 0, len(cur))
	for k := range cur {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes every entry.
func (m *Map[K, V]) Clear(tx *stm.Tx) {
	m.state.Set(tx, map[K]V{})
}
