// Package api contains the core building blocks shared across the stm
// transactional-memory engine. It provides the value types used to describe
// transactions and the Observer interface used to watch them.
//
// Most users interact with the higher-level stm package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// engine itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - Transaction modes and attempt snapshots (TxMode, TxInfo)
//   - Lifecycle events (TxEvent)
//   - Observability (Observer)
//
// # Transactions
//
// A transaction is one or more reads and writes of transactional cells
// executed against a private journal and published atomically at a commit
// boundary. A boundary is opened in one of two modes: composing boundaries
// widen the enclosing atomicity scope, isolated boundaries always commit
// independently. TxInfo is an immutable snapshot of one attempt of one
// boundary: its id, mode, attempt number, and touched-cell counts.
//
// # Observability
//
// The api package defines the Observer interface, which the engine calls at
// transaction lifecycle points: begin, commit, conflict, retry-wait, and
// abort.
//
// Observers can be used to:
//
//   - Log transaction transitions
//   - Collect metrics (e.g. commit counts, conflict rates, latencies)
//   - Integrate with external monitoring systems
//
// The stm package exposes ready-made implementations such as logging and
// basic in-memory metrics, along with helpers to combine multiple observers.
//
// # Usage
//
// Most applications should start from the stm package, using the Runtime and
// Var constructors provided there. The api package is useful when you need
// lower-level access, custom observers, or when contributing changes to the
// core engine.
package api
