// Package metrics exports transaction lifecycle metrics to Prometheus.
//
// PromObserver implements the engine's Observer interface; wire it into a
// Runtime together with other observers:
//
//	reg := prometheus.NewRegistry()
//	rt := stm.NewRuntime(stm.WithObserver(metrics.NewPromObserver(reg)))
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jharju/stm/pkg/api"
)

// PromObserver counts transaction outcomes and observes commit latencies and
// attempt counts. All collectors live under the "stm" namespace.
type PromObserver struct {
	begins     prometheus.Counter
	commits    prometheus.Counter
	conflicts  prometheus.Counter
	retryWaits prometheus.Counter
	aborts     prometheus.Counter

	attempts prometheus.Histogram
	duration prometheus.Histogram
}

// Ensure PromObserver implements the Observer interface.
var _ api.Observer = (*PromObserver)(nil)

// NewPromObserver creates a PromObserver and registers its collectors with
// reg. A nil reg skips registration, which is occasionally useful in tests.
func NewPromObserver(reg prometheus.Registerer) *PromObserver {
	o := &PromObserver{
		begins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stm",
			Name:      "attempts_total",
			Help:      "Transaction body runs, including retried attempts.",
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stm",
			Name:      "commits_total",
			Help:      "Successfully committed transactions.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stm",
			Name:      "conflicts_total",
			Help:      "Attempts discarded because a read cell's version moved.",
		}),
		retryWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stm",
			Name:      "retry_waits_total",
			Help:      "Attempts that requested an explicit retry and parked.",
		}),
		aborts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stm",
			Name:      "aborts_total",
			Help:      "Transactions aborted by an error from their body.",
		}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stm",
			Name:      "attempts_per_commit",
			Help:      "Body runs needed before a transaction committed.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stm",
			Name:      "commit_duration_seconds",
			Help:      "Time from first attempt to successful commit.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(
			o.begins,
			o.commits,
			o.conflicts,
			o.retryWaits,
			o.aborts,
			o.attempts,
			o.duration,
		)
	}
	return o
}

func (o *PromObserver) OnBegin(ctx context.Context, info api.TxInfo) {
	o.begins.Inc()
}

func (o *PromObserver) OnCommit(ctx context.Context, info api.TxInfo, d time.Duration) {
	o.commits.Inc()
	o.attempts.Observe(float64(info.Attempt))
	o.duration.Observe(d.Seconds())
}

func (o *PromObserver) OnConflict(ctx context.Context, info api.TxInfo) {
	o.conflicts.Inc()
}

func (o *PromObserver) OnRetryWait(ctx context.Context, info api.TxInfo) {
	o.retryWaits.Inc()
}

func (o *PromObserver) OnAbort(ctx context.Context, info api.TxInfo, err error) {
	o.aborts.Inc()
}
