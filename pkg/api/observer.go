package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the transaction engine for logging and
// metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay transaction execution. Callbacks may be
// invoked concurrently from many goroutines.
type Observer interface {
	// OnBegin is called at the start of every attempt of a transaction
	// boundary, before the body runs. info.Attempt is 1 on the first run.
	OnBegin(ctx context.Context, info TxInfo)

	// OnCommit is called once per boundary, after its journal has been
	// validated and published. duration covers all attempts, first begin to
	// successful commit.
	OnCommit(ctx context.Context, info TxInfo, duration time.Duration)

	// OnConflict is called when commit validation finds a cell whose version
	// moved since the attempt first read it. The attempt's journal has been
	// discarded and the body will re-run.
	OnConflict(ctx context.Context, info TxInfo)

	// OnRetryWait is called when the body requested an explicit retry and
	// the transaction is about to park on the cells it read.
	OnRetryWait(ctx context.Context, info TxInfo)

	// OnAbort is called when the body returned an error. The journal is
	// discarded with no cell touched and the error propagates to the caller.
	OnAbort(ctx context.Context, info TxInfo, err error)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnBegin(ctx context.Context, info TxInfo)                          {}
func (NoopObserver) OnCommit(ctx context.Context, info TxInfo, duration time.Duration) {}
func (NoopObserver) OnConflict(ctx context.Context, info TxInfo)                       {}
func (NoopObserver) OnRetryWait(ctx context.Context, info TxInfo)                      {}
func (NoopObserver) OnAbort(ctx context.Context, info TxInfo, err error)               {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnBegin(ctx context.Context, info TxInfo) {
	for _, o := range c.observers {
		o.OnBegin(ctx, info)
	}
}

func (c *CompositeObserver) OnCommit(ctx context.Context, info TxInfo, d time.Duration) {
	for _, o := range c.observers {
		o.OnCommit(ctx, info, d)
	}
}

func (c *CompositeObserver) OnConflict(ctx context.Context, info TxInfo) {
	for _, o := range c.observers {
		o.OnConflict(ctx, info)
	}
}

func (c *CompositeObserver) OnRetryWait(ctx context.Context, info TxInfo) {
	for _, o := range c.observers {
		o.OnRetryWait(ctx, info)
	}
}

func (c *CompositeObserver) OnAbort(ctx context.Context, info TxInfo, err error) {
	for _, o := range c.observers {
		o.OnAbort(ctx, info, err)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs transaction lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnBegin(ctx context.Context, info TxInfo) {
	o.Logger.DebugContext(ctx, "tx_begin",
		slog.Uint64("tx_id", info.ID),
		slog.String("mode", string(info.Mode)),
		slog.Int("attempt", info.Attempt),
	)
}

func (o *LoggingObserver) OnCommit(ctx context.Context, info TxInfo, d time.Duration) {
	o.Logger.InfoContext(ctx, "tx_committed",
		slog.Uint64("tx_id", info.ID),
		slog.String("mode", string(info.Mode)),
		slog.Int("attempt", info.Attempt),
		slog.Int("cells_read", info.CellsRead),
		slog.Int("cells_written", info.CellsWritten),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnConflict(ctx context.Context, info TxInfo) {
	o.Logger.DebugContext(ctx, "tx_conflict",
		slog.Uint64("tx_id", info.ID),
		slog.Int("attempt", info.Attempt),
		slog.Int("cells_read", info.CellsRead),
	)
}

func (o *LoggingObserver) OnRetryWait(ctx context.Context, info TxInfo) {
	o.Logger.DebugContext(ctx, "tx_retry_wait",
		slog.Uint64("tx_id", info.ID),
		slog.Int("attempt", info.Attempt),
		slog.Int("cells_read", info.CellsRead),
	)
}

func (o *LoggingObserver) OnAbort(ctx context.Context, info TxInfo, err error) {
	o.Logger.ErrorContext(ctx, "tx_aborted",
		slog.Uint64("tx_id", info.ID),
		slog.Int("attempt", info.Attempt),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate commit latencies.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	begins     atomic.Int64
	commits    atomic.Int64
	conflicts  atomic.Int64
	retryWaits atomic.Int64
	aborts     atomic.Int64

	totalCommitDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Begins     int64
	Commits    int64
	Conflicts  int64
	RetryWaits int64
	Aborts     int64

	AvgCommitDuration time.Duration
}

func (m *BasicMetrics) OnBegin(ctx context.Context, info TxInfo) {
	m.begins.Add(1)
}

func (m *BasicMetrics) OnCommit(ctx context.Context, info TxInfo, d time.Duration) {
	m.commits.Add(1)
	m.totalCommitDuration.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnConflict(ctx context.Context, info TxInfo) {
	m.conflicts.Add(1)
}

func (m *BasicMetrics) OnRetryWait(ctx context.Context, info TxInfo) {
	m.retryWaits.Add(1)
}

func (m *BasicMetrics) OnAbort(ctx context.Context, info TxInfo, err error) {
	m.aborts.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	commits := m.commits.Load()
	totalNs := m.totalCommitDuration.Load()

	var avg time.Duration
	if commits > 0 {
		avg = time.Duration(totalNs / commits)
	}

	return BasicMetricsSnapshot{
		Begins:            m.begins.Load(),
		Commits:           commits,
		Conflicts:         m.conflicts.Load(),
		RetryWaits:        m.retryWaits.Load(),
		Aborts:            m.aborts.Load(),
		AvgCommitDuration: avg,
	}
}
