// Package engine implements the transactional-memory core: versioned cells,
// per-attempt journals, the commit protocol, and the retry/suspension driver.
//
// Cells are the only shared mutable resource. All mutation goes through the
// commit protocol: an attempt's journal is validated against live cell
// versions and its pending writes are applied as a single indivisible step
// under a short critical section covering exactly the touched cells, taken
// in cell-id order. A version mismatch discards the journal, parks the
// transaction on every cell it read, and re-runs the body once a commit
// touches one of those cells.
//
// External users access this package through the stm root package.
package engine
