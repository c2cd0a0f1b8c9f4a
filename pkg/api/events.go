package api

import "time"

// EventType identifies a transaction history event.
type EventType string

const (
	EventTxBegin     EventType = "tx.begin"
	EventTxCommitted EventType = "tx.committed"
	EventTxConflict  EventType = "tx.conflict"
	EventTxRetryWait EventType = "tx.retry_wait"
	EventTxAborted   EventType = "tx.aborted"
)

// TxEvent is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable; richer history can be layered later.
type TxEvent struct {
	TxID uint64
	At   time.Time
	Type EventType

	// Optional context.
	Mode         TxMode
	Attempt      int
	CellsRead    int
	CellsWritten int

	// Small, human-oriented details (e.g. the abort error string).
	// Keep this low-volume: do NOT dump cell values here.
	Detail string
}
