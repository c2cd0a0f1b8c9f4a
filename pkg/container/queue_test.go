package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jharju/stm"
)

func TestQueueOfferTakeFIFO(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		for i := 1; i <= 3; i++ {
			if _, err := q.Offer(tx, i); err != nil {
				return err
			}
		}
		return nil
	}))

	var got []int
	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		got = got[:0]
		for q.Size(tx) > 0 {
			v, err := q.Take(tx)
			if err != nil {
				return err
			}
			got = append(got, v)
		}
		return nil
	}))

	require.Equal(t, []int{1, 2, 3}, got)
}

func TestQueueTakeBlocksUntilOffer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	got := make(chan int, 1)
	go func() {
		_ = stm.Atomic(ctx, func(tx *stm.Tx) error {
			v, err := q.Take(tx)
			if err != nil {
				return err
			}
			got <- v
			return nil
		})
	}()

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		_, err := q.Offer(tx, 42)
		return err
	}))

	select {
	case v := <-got:
		require.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked taker never woke up")
	}
}

func TestQueueBoundedOfferBlocksUntilTake(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewBounded[string](1)

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		_, err := q.Offer(tx, "first")
		return err
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = stm.Atomic(ctx, func(tx *stm.Tx) error {
			_, err := q.Offer(tx, "second")
			return err
		})
	}()

	select {
	case <-done:
		t.Fatal("offer to a full bounded queue did not block")
	case <-time.After(20 * time.Millisecond):
	}

	v, err := stm.Run(ctx, stm.NewRuntime(), func(tx *stm.Tx) (string, error) {
		return q.Take(tx)
	})
	require.NoError(t, err)
	require.Equal(t, "first", v)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("blocked offer never woke up")
	}
}

func TestQueueDroppingRejectsWhenFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewDropping[int](2)

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		for i := 1; i <= 2; i++ {
			ok, err := q.Offer(tx, i)
			require.NoError(t, err)
			require.True(t, ok)
		}
		ok, err := q.Offer(tx, 3)
		require.NoError(t, err)
		require.False(t, ok, "offer to a full dropping queue must be rejected")
		require.Equal(t, 2, q.Size(tx))
		return nil
	}))
}

func TestQueueSlidingEvictsOldest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewSliding[int](2)

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		for i := 1; i <= 3; i++ {
			if _, err := q.Offer(tx, i); err != nil {
				return err
			}
		}
		return nil
	}))

	var got []int
	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		got = got[:0]
		for {
			v, ok, err := q.Poll(tx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			got = append(got, v)
		}
	}))

	require.Equal(t, []int{2, 3}, got)
}

func TestQueuePollAndPeek(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		_, ok, err := q.Poll(tx)
		require.NoError(t, err)
		require.False(t, ok)

		if _, err := q.Offer(tx, 7); err != nil {
			return err
		}

		v, err := q.Peek(tx)
		require.NoError(t, err)
		require.Equal(t, 7, v)
		require.Equal(t, 1, q.Size(tx), "peek must not remove")

		v, ok, err = q.Poll(tx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 7, v)
		require.Equal(t, 0, q.Size(tx))
		return nil
	}))
}

func TestQueueShutdownDrainsThenFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		if _, err := q.Offer(tx, 1); err != nil {
			return err
		}
		q.Shutdown(tx)
		return nil
	}))

	// Offers fail immediately.
	err := stm.Atomic(ctx, func(tx *stm.Tx) error {
		_, err := q.Offer(tx, 2)
		return err
	})
	require.ErrorIs(t, err, ErrShutdown)

	// Remaining elements drain.
	v, err := stm.Run(ctx, stm.NewRuntime(), func(tx *stm.Tx) (int, error) {
		return q.Take(tx)
	})
	require.NoError(t, err)
	require.Equal(t, 1, v)

	// Then takes fail instead of blocking forever.
	err = stm.Atomic(ctx, func(tx *stm.Tx) error {
		_, err := q.Take(tx)
		return err
	})
	require.ErrorIs(t, err, ErrShutdown)
}

func TestQueueShutdownWakesBlockedTaker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	errCh := make(chan error, 1)
	go func() {
		errCh <- stm.Atomic(ctx, func(tx *stm.Tx) error {
			_, err := q.Take(tx)
			return err
		})
	}()

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		q.Shutdown(tx)
		return nil
	}))

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrShutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked taker did not observe shutdown")
	}
}

func TestQueueAwaitShutdown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewUnbounded[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = stm.Atomic(ctx, func(tx *stm.Tx) error {
			q.AwaitShutdown(tx)
			return nil
		})
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		q.Shutdown(tx)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitShutdown never returned")
	}
}

// A transfer composed from Take and Offer is atomic: concurrent transfers
// between two queues never lose or duplicate an element.
func TestQueueComposedTransferAtomicity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := NewUnbounded[int]()
	dst := NewUnbounded[int]()

	const n = 50
	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		for i := 0; i < n; i++ {
			if _, err := src.Offer(tx, i); err != nil {
				return err
			}
		}
		return nil
	}))

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for {
				moved := true
				err := stm.Atomic(ctx, func(tx *stm.Tx) error {
					v, ok, err := src.Poll(tx)
					if err != nil {
						return err
					}
					if !ok {
						moved = false
						return nil
					}
					_, err = dst.Offer(tx, v)
					return err
				})
				if err != nil {
					return err
				}
				if !moved {
					return nil
				}
			}
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int]bool, n)
	require.NoError(t, stm.Atomic(ctx, func(tx *stm.Tx) error {
		clear(seen)
		require.Equal(t, 0, src.Size(tx))
		for {
			v, ok, err := dst.Poll(tx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			require.False(t, seen[v], "element %d duplicated", v)
			seen[v] = true
		}
	}))
	require.Len(t, seen, n)
}
