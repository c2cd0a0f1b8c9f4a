package engine

import (
	"sync"
	"sync/atomic"
)

// cellIDs hands out creation-ordered ids. Commit locks cells in id order,
// which is what makes multi-cell publishing deadlock free.
var cellIDs atomic.Uint64

// Cell is the smallest transactional unit: a value, a monotonic version
// counter, and the set of transactions currently parked on it.
//
// A cell is created once by the data structure that owns it and lives as
// long as that structure. Its value and version only ever change inside a
// successful commit; everything else is read-only access under the cell's
// mutex.
type Cell struct {
	id uint64

	mu      sync.Mutex
	value   any
	version uint64
	waiters map[*waiter]struct{}
}

// NewCell creates a cell holding initial at version 0.
func NewCell(initial any) *Cell {
	return &Cell{
		id:    cellIDs.Add(1),
		value: initial,
	}
}

// Committed returns the last committed value and version. It never blocks
// beyond the cell's short critical section and never mutates.
func (c *Cell) Committed() (any, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.version
}

func (c *Cell) committedVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *Cell) addWaiter(w *waiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiters == nil {
		c.waiters = make(map[*waiter]struct{})
	}
	c.waiters[w] = struct{}{}
}

// removeWaiter is idempotent; a waiter drained by a commit may be removed
// again by the woken transaction.
func (c *Cell) removeWaiter(w *waiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.waiters, w)
}

// drainWaitersLocked detaches and returns the current waiter set. The caller
// must hold c.mu and must call wake on the result only after releasing it.
func (c *Cell) drainWaitersLocked() []*waiter {
	if len(c.waiters) == 0 {
		return nil
	}
	ws := make([]*waiter, 0, len(c.waiters))
	for w := range c.waiters {
		ws = append(ws, w)
	}
	c.waiters = nil
	return ws
}

// waiter is a one-shot wake handle shared across every cell a parked
// transaction read. Any committing writer may fire it; wake is idempotent.
type waiter struct {
	ch   chan struct{}
	once sync.Once
}

func newWaiter() *waiter {
	return &waiter{ch: make(chan struct{})}
}

func (w *waiter) wake() {
	w.once.Do(func() { close(w.ch) })
}
