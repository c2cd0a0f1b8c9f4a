package engine

import "sort"

// commit validates the journal against live cell versions and, if every
// recorded read version still matches, applies all pending writes as a
// single indivisible step. It returns false on a version conflict, in which
// case no cell was touched.
//
// The critical section covers exactly the touched cells, locked in cell-id
// order so concurrent commits over overlapping sets cannot deadlock. Writes
// apply in journal insertion order; each written cell's version advances by
// exactly one. Waiters of written cells are woken after every lock is
// released.
func commit(j *journal) bool {
	if len(j.entries) == 0 {
		return true
	}

	locked := make([]*journalEntry, len(j.entries))
	copy(locked, j.entries)
	sort.Slice(locked, func(a, b int) bool {
		return locked[a].cell.id < locked[b].cell.id
	})

	for i, e := range locked {
		e.cell.mu.Lock()
		if e.cell.version != e.readVersion {
			for k := i; k >= 0; k-- {
				locked[k].cell.mu.Unlock()
			}
			return false
		}
	}

	var wake []*waiter
	for _, e := range j.entries {
		if !e.dirty {
			continue
		}
		e.cell.value = e.pending
		e.cell.version++
		wake = append(wake, e.cell.drainWaitersLocked()...)
	}

	for i := len(locked) - 1; i >= 0; i-- {
		locked[i].cell.mu.Unlock()
	}

	for _, w := range wake {
		w.wake()
	}
	return true
}
