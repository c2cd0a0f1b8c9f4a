package engine

import (
	"context"
	"time"
)

// Backoff delays conflicted re-runs. The zero value disables it: a
// conflicted transaction re-runs as soon as its park re-validation lets it
// through, which is the classic optimistic behavior. Explicit retries are
// never delayed; they already wait on a cell change.
type Backoff struct {
	// Initial is the delay before the second attempt. Zero or negative
	// disables backoff entirely.
	Initial time.Duration

	// Multiplier grows the delay per attempt (default 2.0 if <= 0).
	Multiplier float64

	// Max caps the delay; if <= 0, there is no cap.
	Max time.Duration
}

// delay returns the sleep before re-running after the given failed attempt.
func (b Backoff) delay(attempt int) time.Duration {
	if b.Initial <= 0 || attempt < 1 {
		return 0
	}

	m := b.Multiplier
	if m <= 0 {
		m = 2.0
	}

	d := float64(b.Initial)
	for i := 1; i < attempt; i++ {
		d *= m
		if b.Max > 0 && d >= float64(b.Max) {
			return b.Max
		}
	}

	out := time.Duration(d)
	if b.Max > 0 && out > b.Max {
		out = b.Max
	}
	return out
}

// sleep blocks for delay(attempt), honoring ctx cancellation.
func (b Backoff) sleep(ctx context.Context, attempt int) error {
	d := b.delay(attempt)
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
