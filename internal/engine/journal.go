package engine

// journalEntry tracks one cell's involvement in one attempt: the version
// observed on first access and, if written, the pending value.
type journalEntry struct {
	cell        *Cell
	readVersion uint64
	snapshot    any // value observed on first access

	pending any
	dirty   bool // pending is set
}

// journal is the per-attempt log of cell reads and writes. Entries are keyed
// by cell identity, one per cell per attempt, and kept in insertion order so
// writes apply deterministically.
type journal struct {
	entries []*journalEntry
	index   map[*Cell]*journalEntry

	// retryRequested is set when the body declared it cannot proceed (for
	// example a take from an empty queue). It is distinct from a version
	// conflict but handled identically: discard and wait.
	retryRequested bool
}

func newJournal() *journal {
	return &journal{index: make(map[*Cell]*journalEntry)}
}

// read returns the cell's value as seen by this attempt: the pending write
// if one exists, the cached snapshot on repeat reads, and the committed
// value (recorded with its version) on first access.
func (j *journal) read(c *Cell) any {
	if e, ok := j.index[c]; ok {
		if e.dirty {
			return e.pending
		}
		return e.snapshot
	}

	val, ver := c.Committed()
	e := &journalEntry{cell: c, readVersion: ver, snapshot: val}
	j.index[c] = e
	j.entries = append(j.entries, e)
	return val
}

// write stages a pending value for the cell, recording the cell's current
// version first if this is the attempt's first touch of it.
func (j *journal) write(c *Cell, val any) {
	e, ok := j.index[c]
	if !ok {
		snap, ver := c.Committed()
		e = &journalEntry{cell: c, readVersion: ver, snapshot: snap}
		j.index[c] = e
		j.entries = append(j.entries, e)
	}
	e.pending = val
	e.dirty = true
}

func (j *journal) cellsRead() int {
	return len(j.entries)
}

func (j *journal) cellsWritten() int {
	n := 0
	for _, e := range j.entries {
		if e.dirty {
			n++
		}
	}
	return n
}
