// Package stm provides a lightweight, embeddable software transactional
// memory engine for Go.
//
// Stm is designed for concurrent code that needs multi-variable atomic
// updates, composable blocking operations, or lock-free data structures —
// without hand-rolled lock hierarchies or heavy infrastructure. It runs
// fully in Go, holds no global locks beyond a short per-commit critical
// section, and integrates cleanly into existing codebases.
//
// # Core Concepts
//
// The stm programming model is intentionally small and idiomatic:
//
//  1. Var
//  2. Tx
//  3. Atomic / Transaction
//  4. Retry
//  5. Runtime
//
// These components form a complete optimistic-concurrency system with
// all-or-nothing commits, automatic conflict retry, and a clear mental
// model.
//
// # Var
//
// A Var[T] is a typed transactional variable: a value plus a monotonic
// version counter. Vars are created with NewVar and owned by whatever data
// structure created them; the engine only mediates access. Reading and
// writing a Var is valid only inside a transaction body, through the body's
// Tx handle.
//
// # Tx
//
// Tx is the transaction handle passed to every body. All Var access routes
// through the Tx's private journal, which gives each attempt
// read-your-own-writes semantics and records the versions needed for
// conflict detection. Nothing a body writes is visible to other goroutines
// before the boundary commits.
//
// # Atomic and Transaction
//
// Atomic(ctx, body) opens a composing boundary: body runs against a fresh
// journal and commits when it returns nil. Composition is structural —
// helper functions take the same *Tx and join the same journal, so a queue
// transfer built from Take and Offer is exactly as atomic as its parts.
// tx.Atomic widens the enclosing scope; only the outermost boundary commits.
//
// Transaction (and tx.Transaction) always draws a new boundary: a nested
// isolated transaction commits on its own, its effects are immediately
// visible, and they are neither undone nor re-executed if the enclosing
// transaction later conflicts and retries. Code with externally visible
// side effects belongs in an isolated transaction; everything inside a
// composing scope may re-run on every retry.
//
// # Retry
//
// tx.Retry() declares that a body cannot proceed — the canonical example is
// taking from an empty queue. The attempt's journal is discarded and the
// transaction parks on exactly the cells it read, resuming when some commit
// touches one of them. Callers never observe retries or conflicts; they see
// either a committed result or a propagated error from their own body.
//
// # Runtime
//
// A Runtime drives transaction boundaries and carries cross-cutting
// configuration: an Observer for logging and metrics, and an optional
// conflict backoff. Package-level Atomic and Transaction use a default
// Runtime with no observer; construct one with NewRuntime to wire in
// observability. Runtimes are independent — Vars are not bound to one, and
// tests can run many runtimes concurrently without cross-talk.
//
// # Observability
//
// The engine reports begin, commit, conflict, retry-wait, and abort events
// through the Observer interface. Ready-made implementations include a
// slog-based LoggingObserver, in-memory BasicMetrics, a Prometheus adapter
// (pkg/metrics), and Recorders that append history to memory or SQLite for
// post-mortem inspection.
//
// # Data structures
//
// Package pkg/container layers transactional data structures on top of
// Vars: Ref, Queue (bounded, dropping, sliding, unbounded), Map, Set, and
// Buffer. Each is a thin pure-data wrapper around one or two Vars; all
// concurrency logic stays in the engine.
//
// See the examples directory for end-to-end usage.
package stm
