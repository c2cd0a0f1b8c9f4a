package container

import (
	"errors"

	"github.com/jharju/stm"
)

// ErrOutOfRange is returned by Buffer.Get for an index past the end.
var ErrOutOfRange = errors.New("container: buffer index out of range")

// Buffer is a transactional append-only sequence buffer. Like the other
// containers it is one Var plus pure slice transformations; the committed
// slice is shared copy-on-append and never mutated in place.
type Buffer[T any] struct {
	items *stm.Var[[]T]
}

// NewBuffer creates an empty sequence buffer.
func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{items: stm.NewVar[[]T](nil)}
}

// Append adds v at the end and returns its index.
func (b *Buffer[T]) Append(tx *stm.Tx, v T) int {
	items := b.items.Get(tx)
	b.items.Set(tx, append(items[:len(items):len(items)], v))
	return len(items)
}

// Get returns the element at index i.
func (b *Buffer[T]) Get(tx *stm.Tx, i int) (T, error) {
	items := b.items.Get(tx)
	if i < 0 || i >= len(items) {
		var zero T
		return zero, ErrOutOfRange
	}
	return items[i], nil
}

// Len returns the number of elements.
func (b *Buffer[T]) Len(tx *stm.Tx) int {
	return len(b.items.Get(tx))
}

// Snapshot returns a copy of the buffer's contents.
func (b *Buffer[T]) Snapshot(tx *stm.Tx) []T {
	items := b.items.Get(tx)
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Clear removes every element.
func (b *Buffer[T]) Clear(tx *stm.Tx) {
	b.items.Set(tx, nil)
}
