// Package lockout decides when repeated login failures suspend an account.
//
// The policy is pure: it reads the stored counter and lock timestamp and
// returns what the caller should write back. An expired lock is treated as
// unlocked with a zero counter the next time it is read, so no background
// job is needed.
package lockout

import (
	"math"
	"time"
)

const (
	DefaultThreshold = 3
	DefaultDuration  = 30 * time.Second
)

// Policy holds the failure threshold and how long a lock lasts.
type Policy struct {
	Threshold int
	Duration  time.Duration
}

// DefaultPolicy locks for 30 seconds after 3 consecutive failures.
func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, Duration: DefaultDuration}
}

// Decision is the result of checking an account before evaluating a password.
type Decision struct {
	AllowAttempt  bool
	RemainingLock time.Duration
	// FailedCount is the counter to build on. It is zero when a previous
	// lock has already elapsed.
	FailedCount int
}

// RemainingSeconds rounds the remaining lock up to whole seconds.
func (d Decision) RemainingSeconds() int {
	return ceilSeconds(d.RemainingLock)
}

// Outcome is the state to persist after a wrong password.
type Outcome struct {
	FailedCount       int
	LockedUntil       *time.Time
	Locked            bool
	AttemptsRemaining int
}

// IsLocked reports whether lockedUntil is set and still in the future.
func IsLocked(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && lockedUntil.After(now)
}

// Decide checks whether a login attempt may evaluate the password.
func (p Policy) Decide(count int, lockedUntil *time.Time, now time.Time) Decision {
	if IsLocked(lockedUntil, now) {
		return Decision{
			AllowAttempt:  false,
			RemainingLock: lockedUntil.Sub(now),
			FailedCount:   count,
		}
	}
	if lockedUntil != nil {
		// Locked(until) with now >= until becomes Unlocked(0).
		count = 0
	}
	if count < 0 {
		count = 0
	}
	return Decision{AllowAttempt: true, FailedCount: count}
}

// RecordFailure applies one wrong password on top of count, the counter
// returned by Decide.
func (p Policy) RecordFailure(count int, now time.Time) Outcome {
	next := count + 1
	if next >= p.threshold() {
		until := now.Add(p.Duration)
		return Outcome{
			FailedCount:       next,
			LockedUntil:       &until,
			Locked:            true,
			AttemptsRemaining: 0,
		}
	}
	return Outcome{
		FailedCount:       next,
		AttemptsRemaining: p.threshold() - next,
	}
}

func (p Policy) threshold() int {
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
