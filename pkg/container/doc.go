// Package container provides transactional data structures layered on stm
// variables: references, queues, maps, sets, and sequence buffers.
//
// Every structure is a thin pure-data wrapper around one or two Vars plus
// transformation functions; all concurrency logic lives in the engine. That
// makes the structures composable: any combination of operations passed the
// same *stm.Tx commits or retries as a single atomic unit.
//
//	transfer := func(tx *stm.Tx) error {
//	    v, err := src.Take(tx)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = dst.Offer(tx, v)
//	    return err
//	}
//	err := stm.Atomic(ctx, transfer)
//
// Blocking operations (Take on an empty queue, AwaitShutdown) use tx.Retry
// under the hood: the transaction parks until another commit changes a cell
// the operation read, then re-runs.
//
// Values stored in the structures are treated as immutable: operations copy
// on write and never mutate a slice or map that a committed state may share.
// Callers must extend the same courtesy to values they put in and take out.
package container
