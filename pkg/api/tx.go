package api

// TxMode identifies how a transaction boundary was opened.
type TxMode string

const (
	// ModeComposing boundaries are opened by Atomic. Nested Atomic calls
	// share the boundary's journal and commit together with it.
	ModeComposing TxMode = "COMPOSING"

	// ModeIsolated boundaries are opened by Transaction. They always use a
	// fresh journal and commit independently of any enclosing boundary.
	ModeIsolated TxMode = "ISOLATED"
)

// TxInfo is an immutable snapshot of a single transaction attempt, as passed
// to Observer callbacks. The same transaction id is kept across retries of
// one boundary; Attempt distinguishes the individual runs.
type TxInfo struct {
	// ID is a process-unique identifier of the transaction boundary.
	ID uint64

	// Mode records whether the boundary was opened by Atomic or Transaction.
	Mode TxMode

	// Attempt is the 1-based run counter of the boundary's body. It grows by
	// one every time a conflict or an explicit retry forces a re-run.
	Attempt int

	// CellsRead and CellsWritten count the cells touched by this attempt's
	// journal at the time the callback fires.
	CellsRead    int
	CellsWritten int
}
