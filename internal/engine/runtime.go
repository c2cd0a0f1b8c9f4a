package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jharju/stm/pkg/api"
)

// ErrNoWake is returned when a transaction requests a retry without having
// read a single cell. There is nothing whose change could ever wake it, so
// parking would block forever.
var ErrNoWake = errors.New("stm: retry requested by a transaction that read no cells")

// Config describes how to construct a Runtime.
// Only used inside this package; external callers use the stm package options.
type Config struct {
	Observer api.Observer
	Backoff  Backoff
}

// Runtime drives transaction boundaries: it owns the attempt loop, the
// observer, and the optional conflict backoff. Runtimes are cheap and
// independent; tests can run many of them concurrently without cross-talk.
// Cells are not bound to a runtime.
type Runtime struct {
	observer api.Observer
	backoff  Backoff
	ids      atomic.Uint64
}

// NewRuntime creates a Runtime from cfg, defaulting to a no-op observer and
// no conflict backoff.
func NewRuntime(cfg Config) *Runtime {
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	return &Runtime{
		observer: obs,
		backoff:  cfg.Backoff,
	}
}

// Atomic opens a composing boundary: a fresh journal is created, body runs
// against it, and the journal commits when body returns nil. On a version
// conflict or an explicit Retry the journal is discarded and body re-runs;
// on a body error the journal is discarded and the error propagates with
// zero writes applied.
func (rt *Runtime) Atomic(ctx context.Context, body func(*Tx) error) error {
	return rt.run(ctx, api.ModeComposing, nil, body)
}

// Transaction opens an isolated boundary. At the top level it behaves like
// Atomic; the distinction matters when nesting, see Tx.Transaction.
func (rt *Runtime) Transaction(ctx context.Context, body func(*Tx) error) error {
	return rt.run(ctx, api.ModeIsolated, nil, body)
}

// run is the retry/suspension driver: Running -> Committing ->
// {Committed | Conflicted}, with Conflicted looping back through a park on
// the attempt's read set. There is no bound on attempts; a conflicted
// transaction retries until it commits or its context is cancelled.
func (rt *Runtime) run(ctx context.Context, mode api.TxMode, parent *Tx, body func(*Tx) error) error {
	id := rt.ids.Add(1)
	started := time.Now()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx := &Tx{
			rt:      rt,
			ctx:     ctx,
			journal: newJournal(),
			mode:    mode,
			parent:  parent,
			id:      id,
			attempt: attempt,
			started: started,
		}

		rt.observer.OnBegin(ctx, tx.Info())

		if err := runBody(tx, body); err != nil {
			rt.observer.OnAbort(ctx, tx.Info(), err)
			return err
		}

		if tx.journal.retryRequested {
			rt.observer.OnRetryWait(ctx, tx.Info())
			if err := park(ctx, tx.journal); err != nil {
				return err
			}
			continue
		}

		if commit(tx.journal) {
			rt.observer.OnCommit(ctx, tx.Info(), time.Since(started))
			return nil
		}

		rt.observer.OnConflict(ctx, tx.Info())
		if err := rt.backoff.sleep(ctx, attempt); err != nil {
			return err
		}
		if err := park(ctx, tx.journal); err != nil {
			return err
		}
	}
}

// runBody executes body, converting a Retry panic into the journal's
// retryRequested flag. Other panics pass through untouched; since nothing is
// applied before commit, the journal simply dies with the attempt.
func runBody(tx *Tx, body func(*Tx) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(retrySignal); ok {
				tx.journal.retryRequested = true
				err = nil
				return
			}
			panic(r)
		}
	}()
	return body(tx)
}

// park suspends the transaction on every cell its discarded journal read,
// until one of them is committed to or ctx is cancelled. Registration is
// re-validated against live versions before blocking: a commit that landed
// between the attempt and the registration must not be missed.
func park(ctx context.Context, j *journal) error {
	if len(j.entries) == 0 {
		return ErrNoWake
	}

	w := newWaiter()
	for _, e := range j.entries {
		e.cell.addWaiter(w)
	}

	stale := false
	for _, e := range j.entries {
		if e.cell.committedVersion() != e.readVersion {
			stale = true
			break
		}
	}
	if stale {
		for _, e := range j.entries {
			e.cell.removeWaiter(w)
		}
		return nil
	}

	select {
	case <-w.ch:
	case <-ctx.Done():
		for _, e := range j.entries {
			e.cell.removeWaiter(w)
		}
		return ctx.Err()
	}

	for _, e := range j.entries {
		e.cell.removeWaiter(w)
	}
	return nil
}
