package stm

import (
	"time"

	"github.com/jharju/stm/internal/engine"
)

// BackoffPolicy delays conflicted re-runs of a transaction. The zero value
// disables backoff: a conflicted transaction re-runs as soon as the winning
// commit is observed, which is the classic optimistic-STM behavior. There is
// deliberately no attempt cap; a transaction retries until it commits or its
// context is cancelled.
type BackoffPolicy = engine.Backoff

// BackoffBuilder provides a fluent way to construct BackoffPolicy values
// for use with WithConflictBackoff.
type BackoffBuilder struct {
	policy BackoffPolicy
}

// Backoff creates a BackoffBuilder with the given initial delay.
//
// initial <= 0 produces a disabled policy.
func Backoff(initial time.Duration) BackoffBuilder {
	return BackoffBuilder{
		policy: BackoffPolicy{
			Initial:    initial,
			Multiplier: 2.0,
		},
	}
}

// WithMultiplier grows the delay each conflicted attempt (default 2.0 if
// <= 0).
func (b BackoffBuilder) WithMultiplier(multiplier float64) BackoffBuilder {
	p := b.policy
	if multiplier <= 0 {
		multiplier = 2.0
	}
	p.Multiplier = multiplier
	return BackoffBuilder{policy: p}
}

// WithMax caps the delay; if max <= 0, there is no cap.
//
// Example:
//
//	Backoff(100*time.Microsecond).WithMultiplier(2.0).WithMax(5*time.Millisecond)
func (b BackoffBuilder) WithMax(max time.Duration) BackoffBuilder {
	p := b.policy
	p.Max = max
	return BackoffBuilder{policy: p}
}

// Constant configures a constant delay between conflicted attempts.
//
// This is equivalent to a multiplier of 1.0 and no cap.
func (b BackoffBuilder) Constant() BackoffBuilder {
	p := b.policy
	p.Multiplier = 1.0
	p.Max = 0
	return BackoffBuilder{policy: p}
}

// Policy returns the underlying BackoffPolicy to be passed to
// WithConflictBackoff.
func (b BackoffBuilder) Policy() BackoffPolicy {
	return b.policy
}
