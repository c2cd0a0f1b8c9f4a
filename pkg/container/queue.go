package container

import (
	"errors"

	"github.com/jharju/stm"
)

// ErrShutdown is returned by queue operations after Shutdown, once any
// remaining elements have been drained.
var ErrShutdown = errors.New("container: queue is shut down")

// Strategy decides what Offer does when a bounded queue is full.
type Strategy int

const (
	// Bounded blocks the offering transaction until space is available.
	Bounded Strategy = iota

	// Dropping rejects the new element; Offer reports false.
	Dropping

	// Sliding evicts the oldest element to make room.
	Sliding
)

// Queue is a transactional FIFO queue. Its state is two Vars: the element
// slice and a shutdown flag — logical closure is an ordinary boolean cell,
// not an engine concept. Elements are shared copy-on-write; committed slices
// are never mutated in place.
type Queue[T any] struct {
	items    *stm.Var[[]T]
	down     *stm.Var[bool]
	capacity int
	strategy Strategy
}

// NewBounded creates a queue that holds at most capacity elements; a full
// queue blocks Offer. capacity <= 0 makes the queue unbounded.
func NewBounded[T any](capacity int) *Queue[T] {
	return newQueue[T](capacity, Bounded)
}

// NewDropping creates a queue that rejects offers while full.
func NewDropping[T any](capacity int) *Queue[T] {
	return newQueue[T](capacity, Dropping)
}

// NewSliding creates a queue that evicts its oldest element when an offer
// arrives while full.
func NewSliding[T any](capacity int) *Queue[T] {
	return newQueue[T](capacity, Sliding)
}

// NewUnbounded creates a queue with no capacity limit.
func NewUnbounded[T any]() *Queue[T] {
	return newQueue[T](0, Bounded)
}

func newQueue[T any](capacity int, strategy Strategy) *Queue[T] {
	return &Queue[T]{
		items:    stm.NewVar[[]T](nil),
		down:     stm.NewVar(false),
		capacity: capacity,
		strategy: strategy,
	}
}

// Offer appends v. On a full Bounded queue the transaction blocks until
// space is available; a full Dropping queue reports false; a full Sliding
// queue evicts the oldest element. Returns ErrShutdown after Shutdown.
func (q *Queue[T]) Offer(tx *stm.Tx, v T) (bool, error) {
	if q.down.Get(tx) {
		return false, ErrShutdown
	}

	items := q.items.Get(tx)
	if q.capacity > 0 && len(items) >= q.capacity {
		switch q.strategy {
		case Dropping:
			return false, nil
		case Sliding:
			items = items[1:]
		default:
			tx.Retry()
		}
	}

	// Full slice expression forces copy-on-append so the committed slice is
	// never mutated through a shared backing array.
	q.items.Set(tx, append(items[:len(items):len(items)], v))
	return true, nil
}

// Take removes and returns the oldest element, blocking while the queue is
// empty. After Shutdown, remaining elements are still drained; Take on an
// empty shut-down queue returns ErrShutdown.
func (q *Queue[T]) Take(tx *stm.Tx) (T, error) {
	items := q.items.Get(tx)
	if len(items) == 0 {
		if q.down.Get(tx) {
			var zero T
			return zero, ErrShutdown
		}
		tx.Retry()
	}

	head := items[0]
	q.items.Set(tx, items[1:])
	return head, nil
}

// Poll removes and returns the oldest element without blocking; ok is false
// on an empty queue. An empty shut-down queue returns ErrShutdown.
func (q *Queue[T]) Poll(tx *stm.Tx) (v T, ok bool, err error) {
	items := q.items.Get(tx)
	if len(items) == 0 {
		if q.down.Get(tx) {
			return v, false, ErrShutdown
		}
		return v, false, nil
	}

	q.items.Set(tx, items[1:])
	return items[0], true, nil
}

// Peek returns the oldest element without removing it, blocking while the
// queue is empty. An empty shut-down queue returns ErrShutdown.
func (q *Queue[T]) Peek(tx *stm.Tx) (T, error) {
	items := q.items.Get(tx)
	if len(items) == 0 {
		if q.down.Get(tx) {
			var zero T
			return zero, ErrShutdown
		}
		tx.Retry()
	}
	return items[0], nil
}

// Size returns the number of queued elements as seen by tx.
func (q *Queue[T]) Size(tx *stm.Tx) int {
	return len(q.items.Get(tx))
}

// Shutdown marks the queue as closed. Pending elements remain takeable;
// offers fail immediately. Idempotent.
func (q *Queue[T]) Shutdown(tx *stm.Tx) {
	q.down.Set(tx, true)
}

// IsShutdown reports whether Shutdown has been committed.
func (q *Queue[T]) IsShutdown(tx *stm.Tx) bool {
	return q.down.Get(tx)
}

// AwaitShutdown blocks the transaction until the queue is shut down.
func (q *Queue[T]) AwaitShutdown(tx *stm.Tx) {
	if !q.down.Get(tx) {
		tx.Retry()
	}
}
