package container

import "github.com/jharju/stm"

// Ref is a transactional reference: a single mutable slot with functional
// update helpers. It is the smallest container — one Var, nothing else.
type Ref[T any] struct {
	v *stm.Var[T]
}

// NewRef creates a Ref holding initial.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{v: stm.NewVar(initial)}
}

// Get returns the current value as seen by tx.
func (r *Ref[T]) Get(tx *stm.Tx) T {
	return r.v.Get(tx)
}

// Set replaces the value.
func (r *Ref[T]) Set(tx *stm.Tx, val T) {
	r.v.Set(tx, val)
}

// Update applies f to the current value and stores the result, returning it.
func (r *Ref[T]) Update(tx *stm.Tx, f func(T) T) T {
	next := f(r.v.Get(tx))
	r.v.Set(tx, next)
	return next
}

// GetAndSet stores val and returns the value it replaced.
func (r *Ref[T]) GetAndSet(tx *stm.Tx, val T) T {
	prev := r.v.Get(tx)
	r.v.Set(tx, val)
	return prev
}

// Committed returns the last committed value and version; see Var.Committed.
func (r *Ref[T]) Committed() (T, uint64) {
	return r.v.Committed()
}

// Modify applies f to the Ref's value, stores the new value, and returns
// f's extra result. It lives at package level because Go methods cannot
// introduce their own type parameters.
func Modify[T, R any](tx *stm.Tx, r *Ref[T], f func(T) (T, R)) R {
	next, out := f(r.v.Get(tx))
	r.v.Set(tx, next)
	return out
}
