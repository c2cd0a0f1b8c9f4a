package engine

import (
	"context"
	"testing"
	"time"
)

func TestBackoffZeroValueDisabled(t *testing.T) {
	var b Backoff
	for attempt := 1; attempt <= 5; attempt++ {
		if d := b.delay(attempt); d != 0 {
			t.Fatalf("zero-value backoff returned %v for attempt %d", d, attempt)
		}
	}
}

func TestBackoffExponentialGrowth(t *testing.T) {
	b := Backoff{Initial: 10 * time.Millisecond, Multiplier: 2.0}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 10 * time.Millisecond},
		{2, 20 * time.Millisecond},
		{3, 40 * time.Millisecond},
		{4, 80 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := b.delay(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: delay=%v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestBackoffMaxCap(t *testing.T) {
	b := Backoff{Initial: 10 * time.Millisecond, Multiplier: 2.0, Max: 25 * time.Millisecond}

	if got := b.delay(3); got != 25*time.Millisecond {
		t.Fatalf("capped delay=%v, want 25ms", got)
	}
	if got := b.delay(10); got != 25*time.Millisecond {
		t.Fatalf("capped delay=%v, want 25ms", got)
	}
}

func TestBackoffDefaultMultiplier(t *testing.T) {
	b := Backoff{Initial: 5 * time.Millisecond}

	if got := b.delay(2); got != 10*time.Millisecond {
		t.Fatalf("delay=%v, want default multiplier 2.0 applied", got)
	}
}

func TestBackoffSleepHonorsCancellation(t *testing.T) {
	b := Backoff{Initial: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.sleep(ctx, 2)
	}()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected cancellation error")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sleep ignored context cancellation")
	}
}
