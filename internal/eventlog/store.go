// Package eventlog records transaction lifecycle events for audit and
// debugging. It is wired into the engine as an Observer; storage is
// pluggable between an in-memory store and SQLite.
package eventlog

import (
	"context"
	"errors"

	"github.com/jharju/stm/pkg/api"
)

// ErrStoreClosed is returned by stores whose backing resource is gone.
var ErrStoreClosed = errors.New("eventlog: store closed")

// Store is an append-only event sink with per-transaction retrieval.
type Store interface {
	// AppendEvent records ev. Events for one transaction id must be listed
	// back in append order.
	AppendEvent(ctx context.Context, ev api.TxEvent) error

	// ListEvents returns every event recorded for the transaction id, in
	// append order. An unknown id yields an empty slice, not an error.
	ListEvents(ctx context.Context, txID uint64) ([]api.TxEvent, error)
}
