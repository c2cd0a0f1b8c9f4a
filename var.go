package stm

import "github.com/jharju/stm/internal/engine"

// Var is a typed transactional variable backed by a single versioned cell.
// The zero Var is not usable; create one with NewVar.
//
// A Var may only be read or written through the Tx of an active transaction.
// Its committed state can be inspected at any time with Committed.
type Var[T any] struct {
	cell *engine.Cell
}

// NewVar creates a transactional variable holding initial at version 0.
func NewVar[T any](initial T) *Var[T] {
	return &Var[T]{cell: engine.NewCell(initial)}
}

// Get returns the Var's value as seen by tx: a pending write from the same
// transaction if one exists, otherwise the committed value captured on first
// access. Valid only inside an active transaction body.
func (v *Var[T]) Get(tx *Tx) T {
	return tx.Read(v.cell).(T)
}

// Set stages val as the Var's new value. It is visible to later Gets in the
// same transaction immediately, and to everyone else when the boundary
// commits.
func (v *Var[T]) Set(tx *Tx, val T) {
	tx.Write(v.cell, val)
}

// Committed returns the last committed value and version without entering a
// transaction. It never blocks beyond the cell's short critical section and
// is mainly useful for diagnostics and tests; code that needs a consistent
// multi-Var view must use a transaction.
func (v *Var[T]) Committed() (T, uint64) {
	val, ver := v.cell.Committed()
	return val.(T), ver
}
