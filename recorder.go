package stm

import (
	"database/sql"
	"log/slog"

	"github.com/jharju/stm/internal/eventlog"
)

// Recorder is an Observer that appends every transaction lifecycle event to
// a store and can list a transaction's history back in order. Wire it into a
// Runtime with WithObserver; combine it with other observers via
// NewCompositeObserver.
type Recorder = eventlog.Recorder

// NewMemoryRecorder creates a Recorder backed by an in-memory store.
// Non-durable; best for tests and debugging sessions.
func NewMemoryRecorder() *Recorder {
	return eventlog.NewRecorder(eventlog.NewMemoryStore(), nil)
}

// NewSQLiteRecorder creates a Recorder that persists transaction events in
// SQLite, initializing the schema on first use. The caller owns db; pass a
// database opened with the modernc.org/sqlite driver. Store failures are
// logged to logger (slog.Default() if nil) and never fail a transaction.
func NewSQLiteRecorder(db *sql.DB, logger *slog.Logger) (*Recorder, error) {
	store, err := eventlog.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return eventlog.NewRecorder(store, logger), nil
}
