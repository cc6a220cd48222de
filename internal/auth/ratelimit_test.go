package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRateLimiter(t *testing.T, policy Policy) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	rl := NewRateLimiter(policy)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_CheckLimit_NoAttempts(t *testing.T) {
	rl, _ := newTestRateLimiter(t, DefaultPolicy())

	locked, retryAfter, err := rl.CheckLimit("10.0.0.1")
	assert.False(t, locked)
	assert.Zero(t, retryAfter)
	assert.NoError(t, err)
}

func TestRateLimiter_RecordFailure_ProgressiveDelays(t *testing.T) {
	rl, _ := newTestRateLimiter(t, DefaultPolicy())
	clientID := "10.0.0.1"

	assert.Equal(t, 1*time.Second, rl.RecordFailure(clientID))
	assert.Equal(t, 2*time.Second, rl.RecordFailure(clientID))
	assert.Equal(t, 5*time.Second, rl.RecordFailure(clientID))
	assert.Equal(t, 60*time.Second, rl.RecordFailure(clientID))
	assert.Equal(t, 60*time.Second, rl.RecordFailure(clientID))
}

func TestRateLimiter_DelayEnforced(t *testing.T) {
	rl, clock := newTestRateLimiter(t, DefaultPolicy())
	clientID := "10.0.0.1"

	rl.RecordFailure(clientID)
	rl.RecordFailure(clientID)

	clock.Advance(500 * time.Millisecond)
	locked, retryAfter, err := rl.CheckLimit(clientID)
	assert.False(t, locked)
	assert.Equal(t, 1500*time.Millisecond, retryAfter)
	require.ErrorIs(t, err, ErrRateLimitExceeded)

	clock.Advance(1500 * time.Millisecond)
	_, _, err = rl.CheckLimit(clientID)
	assert.NoError(t, err)
}

func TestRateLimiter_Lockout(t *testing.T) {
	rl, clock := newTestRateLimiter(t, DefaultPolicy())
	clientID := "10.0.0.1"

	for range 4 {
		rl.RecordFailure(clientID)
	}

	clock.Advance(10 * time.Second)
	locked, retryAfter, err := rl.CheckLimit(clientID)
	assert.True(t, locked)
	assert.Equal(t, 50*time.Second, retryAfter)
	require.ErrorIs(t, err, ErrClientLocked)

	clock.Advance(50 * time.Second)
	locked, _, err = rl.CheckLimit(clientID)
	assert.False(t, locked)
	assert.NoError(t, err)

	// Failures after an expired lockout lock the client again.
	assert.Equal(t, 60*time.Second, rl.RecordFailure(clientID))
	locked, _, _ = rl.CheckLimit(clientID)
	assert.True(t, locked)
}

func TestRateLimiter_CustomPolicy(t *testing.T) {
	rl, _ := newTestRateLimiter(t, Policy{Lockout: 10 * time.Second})

	// Without delays the first failure locks the client out.
	assert.Equal(t, 10*time.Second, rl.RecordFailure("c1"))
	locked, _, err := rl.CheckLimit("c1")
	assert.True(t, locked)
	assert.ErrorIs(t, err, ErrClientLocked)
}

func TestRateLimiter_RecordSuccess(t *testing.T) {
	rl, _ := newTestRateLimiter(t, DefaultPolicy())
	clientID := "10.0.0.1"

	rl.RecordFailure(clientID)
	rl.RecordFailure(clientID)
	assert.Equal(t, 2, rl.GetAttemptCount(clientID))

	rl.RecordSuccess(clientID)
	assert.Zero(t, rl.GetAttemptCount(clientID))

	// Next failure should be treated as first failure
	assert.Equal(t, 1*time.Second, rl.RecordFailure(clientID))
}

func TestRateLimiter_MultipleClients(t *testing.T) {
	rl, _ := newTestRateLimiter(t, DefaultPolicy())

	rl.RecordFailure("c1")
	rl.RecordFailure("c2")
	rl.RecordFailure("c2")
	assert.Equal(t, 1, rl.GetAttemptCount("c1"))
	assert.Equal(t, 2, rl.GetAttemptCount("c2"))
	assert.Equal(t, 2, rl.GetTrackedClientCount())

	rl.RecordSuccess("c1")
	assert.Zero(t, rl.GetAttemptCount("c1"))
	assert.Equal(t, 2, rl.GetAttemptCount("c2"))
	assert.Equal(t, 1, rl.GetTrackedClientCount())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, clock := newTestRateLimiter(t, DefaultPolicy())

	rl.RecordFailure("stale")
	clock.Advance(CleanupThreshold + time.Second)
	rl.RecordFailure("fresh")

	rl.performCleanup()
	assert.Zero(t, rl.GetAttemptCount("stale"))
	assert.Equal(t, 1, rl.GetAttemptCount("fresh"))
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(DefaultPolicy())
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestFormatRetryAfter(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected int
	}{
		{0, 0},
		{1 * time.Second, 1},
		{60 * time.Second, 60},
		{1500 * time.Millisecond, 2}, // Rounds up
		{1 * time.Millisecond, 1},
	}

	for _, tt := range tests {
		t.Run(tt.duration.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRetryAfter(tt.duration))
		})
	}
}
