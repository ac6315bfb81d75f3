package lockout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestIsLocked(t *testing.T) {
	assert.False(t, IsLocked(nil, now))
	assert.False(t, IsLocked(ptr(now), now))
	assert.False(t, IsLocked(ptr(now.Add(-time.Second)), now))
	assert.True(t, IsLocked(ptr(now.Add(time.Nanosecond)), now))
}

func TestDecide(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name        string
		count       int
		lockedUntil *time.Time
		wantAllow   bool
		wantSeconds int
		wantCount   int
	}{
		{"fresh account", 0, nil, true, 0, 0},
		{"some failures", 2, nil, true, 0, 2},
		{"locked", 3, ptr(now.Add(30 * time.Second)), false, 30, 3},
		{"locked partial second rounds up", 3, ptr(now.Add(1500 * time.Millisecond)), false, 2, 3},
		{"lock elapsed resets counter", 3, ptr(now.Add(-time.Second)), true, 0, 0},
		{"lock ends exactly now", 3, ptr(now), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Decide(tt.count, tt.lockedUntil, now)
			assert.Equal(t, tt.wantAllow, d.AllowAttempt)
			assert.Equal(t, tt.wantSeconds, d.RemainingSeconds())
			assert.Equal(t, tt.wantCount, d.FailedCount)
		})
	}
}

func TestRecordFailure(t *testing.T) {
	p := DefaultPolicy()

	out := p.RecordFailure(0, now)
	assert.Equal(t, 1, out.FailedCount)
	assert.False(t, out.Locked)
	assert.Nil(t, out.LockedUntil)
	assert.Equal(t, 2, out.AttemptsRemaining)

	out = p.RecordFailure(1, now)
	assert.Equal(t, 2, out.FailedCount)
	assert.Equal(t, 1, out.AttemptsRemaining)

	out = p.RecordFailure(2, now)
	assert.Equal(t, 3, out.FailedCount)
	assert.True(t, out.Locked)
	require.NotNil(t, out.LockedUntil)
	assert.Equal(t, now.Add(30*time.Second), *out.LockedUntil)
	assert.Equal(t, 0, out.AttemptsRemaining)
}

func TestStateMachine(t *testing.T) {
	p := Policy{Threshold: 3, Duration: 30 * time.Second}

	count := 0
	var lockedUntil *time.Time
	clock := now

	for i := 0; i < 3; i++ {
		d := p.Decide(count, lockedUntil, clock)
		require.True(t, d.AllowAttempt, "attempt %d", i+1)
		out := p.RecordFailure(d.FailedCount, clock)
		count, lockedUntil = out.FailedCount, out.LockedUntil
	}
	require.True(t, IsLocked(lockedUntil, clock))

	d := p.Decide(count, lockedUntil, clock.Add(29*time.Second))
	assert.False(t, d.AllowAttempt)
	assert.Equal(t, 1, d.RemainingSeconds())

	d = p.Decide(count, lockedUntil, clock.Add(30*time.Second))
	assert.True(t, d.AllowAttempt)
	assert.Equal(t, 0, d.FailedCount)

	// One more failure after the lock elapsed starts a new cycle.
	out := p.RecordFailure(d.FailedCount, clock.Add(30*time.Second))
	assert.False(t, out.Locked)
	assert.Equal(t, 2, out.AttemptsRemaining)
}

func TestZeroThresholdFallsBackToDefault(t *testing.T) {
	p := Policy{Duration: time.Minute}
	out := p.RecordFailure(DefaultThreshold-1, now)
	assert.True(t, out.Locked)
}
