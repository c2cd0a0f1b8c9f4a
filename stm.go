package stm

import (
	"context"

	"github.com/jharju/stm/internal/engine"
	"github.com/jharju/stm/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
	TxInfo               = api.TxInfo
	TxMode               = api.TxMode
	TxEvent              = api.TxEvent
	EventType            = api.EventType
)

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export transaction modes and event types for convenience.

const (
	ModeComposing = api.ModeComposing
	ModeIsolated  = api.ModeIsolated

	EventTxBegin     = api.EventTxBegin
	EventTxCommitted = api.EventTxCommitted
	EventTxConflict  = api.EventTxConflict
	EventTxRetryWait = api.EventTxRetryWait
	EventTxAborted   = api.EventTxAborted
)

// Tx is the transaction handle passed to every body. See the package
// documentation for the composing/isolated semantics of Tx.Atomic and
// Tx.Transaction.
type Tx = engine.Tx

// Runtime drives transaction boundaries and carries the observer and
// conflict-backoff configuration.
type Runtime = engine.Runtime

// ErrNoWake is returned when a body calls Retry without having read any
// transactional variable; such a transaction could never be woken.
var ErrNoWake = engine.ErrNoWake

// Option configures a Runtime.
type Option func(*engine.Config)

// WithObserver wires an Observer into the Runtime. Use NewCompositeObserver
// to combine several.
func WithObserver(obs Observer) Option {
	return func(cfg *engine.Config) {
		cfg.Observer = obs
	}
}

// WithConflictBackoff delays conflicted re-runs with the given policy.
// Explicit retries are unaffected; they already wait for a cell change.
func WithConflictBackoff(p BackoffPolicy) Option {
	return func(cfg *engine.Config) {
		cfg.Backoff = p
	}
}

// NewRuntime creates a Runtime. With no options it behaves exactly like the
// package-level entry points: no observer, no conflict backoff.
func NewRuntime(opts ...Option) *Runtime {
	var cfg engine.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return engine.NewRuntime(cfg)
}

// defaultRuntime backs the package-level entry points. It is configured once
// here and never mutated.
var defaultRuntime = engine.NewRuntime(engine.Config{})

// Atomic runs body as a composing transaction on the default Runtime and
// returns once it commits, or with body's error and zero applied writes.
// Conflicts and explicit retries are handled internally and never surface.
func Atomic(ctx context.Context, body func(*Tx) error) error {
	return defaultRuntime.Atomic(ctx, body)
}

// Transaction runs body as an isolated transaction on the default Runtime.
// At the top level this is equivalent to Atomic; the distinction matters
// when nesting, see Tx.Transaction.
func Transaction(ctx context.Context, body func(*Tx) error) error {
	return defaultRuntime.Transaction(ctx, body)
}

// Run executes body as a composing transaction on rt and returns its result.
// It is a convenience over Runtime.Atomic for bodies that produce a value.
func Run[T any](ctx context.Context, rt *Runtime, body func(*Tx) (T, error)) (T, error) {
	var out T
	err := rt.Atomic(ctx, func(tx *Tx) error {
		var err error
		out, err = body(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
