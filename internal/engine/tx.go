package engine

import (
	"context"
	"time"

	"github.com/jharju/stm/pkg/api"
)

// Tx is the transaction handle threaded through a body. All cell access
// inside the body routes through the Tx's journal; nothing becomes visible
// to other transactions before the boundary commits.
//
// A Tx is only valid for the duration of the body it was passed to, and only
// on that goroutine. Capturing it for later use is a bug.
type Tx struct {
	rt      *Runtime
	ctx     context.Context
	journal *journal
	mode    api.TxMode
	parent  *Tx // lookup only, never ownership

	id      uint64
	attempt int
	started time.Time
}

// retrySignal aborts a body via panic when Retry is called. The driver
// recovers it; anything else re-panics through.
type retrySignal struct{}

// Context returns the context of the boundary this Tx belongs to.
func (tx *Tx) Context() context.Context {
	return tx.ctx
}

// Read returns the cell's value as seen by this transaction: a pending write
// from the same journal if one exists, otherwise the committed value at the
// time of first access.
func (tx *Tx) Read(c *Cell) any {
	return tx.journal.read(c)
}

// Write stages a value for the cell. It becomes visible to later Reads in
// the same transaction immediately and to everyone else at commit.
func (tx *Tx) Write(c *Cell, val any) {
	tx.journal.write(c, val)
}

// Retry declares that the body cannot proceed (for example a take from an
// empty queue). The attempt's journal is discarded, the transaction parks on
// every cell it read, and the body re-runs from the top once one of them is
// committed to. Retry never returns.
func (tx *Tx) Retry() {
	panic(retrySignal{})
}

// Atomic composes body into this transaction: it runs against the same
// journal, its effects commit (or retry, or abort) together with the
// enclosing boundary, and no new boundary is drawn.
func (tx *Tx) Atomic(body func(*Tx) error) error {
	return body(tx)
}

// Transaction runs body as an isolated boundary with its own journal and its
// own commit, even though this transaction is still open. Its committed
// effects are never undone if this transaction aborts or retries. A cell this
// transaction already journaled keeps its snapshot; writing it here makes the
// enclosing commit conflict and re-run.
func (tx *Tx) Transaction(body func(*Tx) error) error {
	return tx.rt.run(tx.ctx, api.ModeIsolated, tx, body)
}

// Info returns a snapshot of the current attempt.
func (tx *Tx) Info() api.TxInfo {
	return api.TxInfo{
		ID:           tx.id,
		Mode:         tx.mode,
		Attempt:      tx.attempt,
		CellsRead:    tx.journal.cellsRead(),
		CellsWritten: tx.journal.cellsWritten(),
	}
}
