package eventlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jharju/stm/pkg/api"
)

// Recorder is an api.Observer that appends every transaction lifecycle event
// to a Store. Append failures are logged and swallowed: observability must
// never fail a transaction.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// Ensure Recorder implements the Observer interface.
var _ api.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder over store. If logger is nil,
// slog.Default() is used for append failures.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Events returns the recorded history of the given transaction id, in order.
func (r *Recorder) Events(ctx context.Context, txID uint64) ([]api.TxEvent, error) {
	return r.store.ListEvents(ctx, txID)
}

func (r *Recorder) OnBegin(ctx context.Context, info api.TxInfo) {
	r.append(ctx, info, api.EventTxBegin, "")
}

func (r *Recorder) OnCommit(ctx context.Context, info api.TxInfo, d time.Duration) {
	r.append(ctx, info, api.EventTxCommitted, d.String())
}

func (r *Recorder) OnConflict(ctx context.Context, info api.TxInfo) {
	r.append(ctx, info, api.EventTxConflict, "")
}

func (r *Recorder) OnRetryWait(ctx context.Context, info api.TxInfo) {
	r.append(ctx, info, api.EventTxRetryWait, "")
}

func (r *Recorder) OnAbort(ctx context.Context, info api.TxInfo, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	r.append(ctx, info, api.EventTxAborted, detail)
}

func (r *Recorder) append(ctx context.Context, info api.TxInfo, typ api.EventType, detail string) {
	ev := api.TxEvent{
		TxID:         info.ID,
		At:           time.Now(),
		Type:         typ,
		Mode:         info.Mode,
		Attempt:      info.Attempt,
		CellsRead:    info.CellsRead,
		CellsWritten: info.CellsWritten,
		Detail:       detail,
	}
	if err := r.store.AppendEvent(ctx, ev); err != nil {
		r.logger.ErrorContext(ctx, "tx_event_append_failed",
			slog.Uint64("tx_id", info.ID),
			slog.String("type", string(typ)),
			slog.Any("error", err),
		)
	}
}
