package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jharju/stm"
)

func TestPromObserverCountsLifecycle(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	obs := NewPromObserver(reg)

	rt := stm.NewRuntime(stm.WithObserver(obs))
	v := stm.NewVar(0)

	require.NoError(t, rt.Atomic(ctx, func(tx *stm.Tx) error {
		v.Set(tx, v.Get(tx)+1)
		return nil
	}))

	boom := errors.New("boom")
	err := rt.Atomic(ctx, func(tx *stm.Tx) error {
		v.Set(tx, 100)
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.Equal(t, 1.0, testutil.ToFloat64(obs.commits))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.aborts))
	require.Equal(t, 2.0, testutil.ToFloat64(obs.begins))
	require.Equal(t, 0.0, testutil.ToFloat64(obs.conflicts))
}

func TestPromObserverRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPromObserver(reg)

	families, err := reg.Gather()
	require.NoError(t, err)

	// Histograms only show up after the first observation; force some.
	// Counters are exported immediately.
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"stm_attempts_total",
		"stm_commits_total",
		"stm_conflicts_total",
		"stm_retry_waits_total",
		"stm_aborts_total",
	} {
		require.True(t, names[want], "missing metric family %s", want)
	}
}

func TestPromObserverDirectCallbacks(t *testing.T) {
	ctx := context.Background()
	obs := NewPromObserver(nil)

	info := stm.TxInfo{ID: 1, Attempt: 3, CellsRead: 2, CellsWritten: 1}
	obs.OnBegin(ctx, info)
	obs.OnConflict(ctx, info)
	obs.OnRetryWait(ctx, info)
	obs.OnCommit(ctx, info, 2*time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(obs.begins))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.conflicts))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.retryWaits))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.commits))
}
