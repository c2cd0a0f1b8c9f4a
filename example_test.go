package stm_test

import (
	"context"
	"fmt"
	"log"

	"github.com/jharju/stm"
)

// Example_atomic demonstrates the basic transaction boundary: reads and
// writes inside the body are invisible to other goroutines until the body
// returns nil and the journal commits.
func Example_atomic() {
	ctx := context.Background()
	counter := stm.NewVar(0)

	if err := stm.Atomic(ctx, func(tx *stm.Tx) error {
		counter.Set(tx, counter.Get(tx)+1)
		return nil
	}); err != nil {
		log.Fatal(err)
	}

	val, ver := counter.Committed()
	fmt.Printf("counter=%d version=%d\n", val, ver)
	// Output: counter=1 version=1
}

// Example_transfer demonstrates composing reads and writes over several
// variables into one all-or-nothing commit.
func Example_transfer() {
	ctx := context.Background()
	checking := stm.NewVar(100)
	savings := stm.NewVar(0)

	transfer := func(from, to *stm.Var[int], amount int) error {
		return stm.Atomic(ctx, func(tx *stm.Tx) error {
			balance := from.Get(tx)
			if balance < amount {
				return fmt.Errorf("insufficient funds: have %d, need %d", balance, amount)
			}
			from.Set(tx, balance-amount)
			to.Set(tx, to.Get(tx)+amount)
			return nil
		})
	}

	if err := transfer(checking, savings, 30); err != nil {
		log.Fatal(err)
	}

	c, _ := checking.Committed()
	s, _ := savings.Committed()
	fmt.Printf("checking=%d savings=%d\n", c, s)
	// Output: checking=70 savings=30
}

// Example_retry demonstrates Retry: the consumer suspends on the variables it
// read, and is woken only when a commit changes one of them.
func Example_retry() {
	ctx := context.Background()
	mailbox := stm.NewVar("")

	done := make(chan string)
	go func() {
		var msg string
		_ = stm.Atomic(ctx, func(tx *stm.Tx) error {
			msg = mailbox.Get(tx)
			if msg == "" {
				tx.Retry()
			}
			return nil
		})
		done <- msg
	}()

	if err := stm.Atomic(ctx, func(tx *stm.Tx) error {
		mailbox.Set(tx, "ping")
		return nil
	}); err != nil {
		log.Fatal(err)
	}

	fmt.Println(<-done)
	// Output: ping
}

// Example_run demonstrates the generic Run helper for bodies that produce a
// value alongside the transactional effects.
func Example_run() {
	ctx := context.Background()
	counter := stm.NewVar(41)

	next, err := stm.Run(ctx, stm.NewRuntime(), func(tx *stm.Tx) (int, error) {
		n := counter.Get(tx) + 1
		counter.Set(tx, n)
		return n, nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(next)
	// Output: 42
}

// Example_recorder demonstrates recording a transaction's lifecycle with a
// memory-backed Recorder wired in as the runtime's observer.
func Example_recorder() {
	ctx := context.Background()
	rec := stm.NewMemoryRecorder()
	rt := stm.NewRuntime(stm.WithObserver(rec))
	v := stm.NewVar(0)

	var txID uint64
	if err := rt.Atomic(ctx, func(tx *stm.Tx) error {
		txID = tx.Info().ID
		v.Set(tx, 7)
		return nil
	}); err != nil {
		log.Fatal(err)
	}

	events, err := rec.Events(ctx, txID)
	if err != nil {
		log.Fatal(err)
	}
	for _, ev := range events {
		fmt.Println(ev.Type)
	}
	// Output:
	// tx.begin
	// tx.committed
}
