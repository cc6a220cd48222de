package auth

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrRateLimitExceeded is returned when a client retries before its progressive delay has passed
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrClientLocked is returned when a client is locked out due to too many failed attempts
	ErrClientLocked = errors.New("client locked out")
)

const (
	// CleanupThreshold is how long to keep attempt trackers for inactive clients
	CleanupThreshold = 5 * time.Minute

	// CleanupIntervalRateLimit is how often to clean up inactive client trackers
	CleanupIntervalRateLimit = 2 * time.Minute
)

// Policy defines the progressive delays enforced after consecutive failures.
// Delays[i] applies after failure i+1; once they are used up the client is locked out for Lockout.
type Policy struct {
	Delays  []time.Duration
	Lockout time.Duration
}

// DefaultPolicy returns delays of 1s, 2s and 5s followed by a 60s lockout.
func DefaultPolicy() Policy {
	return Policy{
		Delays:  []time.Duration{1 * time.Second, 2 * time.Second, 5 * time.Second},
		Lockout: 60 * time.Second,
	}
}

// delayFor returns the delay enforced after count consecutive failures.
func (p Policy) delayFor(count int) time.Duration {
	switch {
	case count <= 0:
		return 0
	case count <= len(p.Delays):
		return p.Delays[count-1]
	default:
		return p.Lockout
	}
}

// AttemptTracker tracks authentication attempts for a single client.
type AttemptTracker struct {
	Count       int       // Number of consecutive failed attempts
	LastFailed  time.Time // Timestamp of last failed attempt
	LockedUntil time.Time // Timestamp when lockout expires (zero if not locked)
}

// RateLimiter implements progressive delay brute force protection per client.
type RateLimiter struct {
	mu       sync.RWMutex
	policy   Policy
	attempts map[string]*AttemptTracker // key: client ID
	now      func() time.Time
	stopCh   chan struct{} // Channel to stop cleanup goroutine
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter with background cleanup.
func NewRateLimiter(policy Policy) *RateLimiter {
	rl := &RateLimiter{
		policy:   policy,
		attempts: make(map[string]*AttemptTracker),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	// Start background cleanup goroutine
	go rl.cleanupInactiveClients()

	return rl
}

// CheckLimit checks if a client is currently delayed or locked out.
// Returns (locked, retryAfter, error):
//   - locked: true if the client is locked out
//   - retryAfter: duration to wait before next attempt
//   - error: ErrClientLocked if locked, ErrRateLimitExceeded if delayed, nil otherwise
func (rl *RateLimiter) CheckLimit(clientID string) (locked bool, retryAfter time.Duration, err error) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	tracker, exists := rl.attempts[clientID]
	if !exists {
		// No attempts yet, allow request
		return false, 0, nil
	}

	now := rl.now()
	if now.Before(tracker.LockedUntil) {
		return true, tracker.LockedUntil.Sub(now), ErrClientLocked
	}

	if tracker.Count <= len(rl.policy.Delays) {
		if wait := tracker.LastFailed.Add(rl.policy.delayFor(tracker.Count)).Sub(now); wait > 0 {
			return false, wait, ErrRateLimitExceeded
		}
	}

	return false, 0, nil
}

// RecordFailure records a failed authentication attempt for a client.
// Returns the delay duration that is enforced before the next attempt.
func (rl *RateLimiter) RecordFailure(clientID string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	tracker, exists := rl.attempts[clientID]
	if !exists {
		tracker = &AttemptTracker{}
		rl.attempts[clientID] = tracker
	}

	tracker.Count++
	tracker.LastFailed = rl.now()

	delay := rl.policy.delayFor(tracker.Count)
	if tracker.Count > len(rl.policy.Delays) {
		tracker.LockedUntil = tracker.LastFailed.Add(delay)
	}

	return delay
}

// RecordSuccess records a successful authentication for a client.
// This clears the failure count and removes any lockout.
func (rl *RateLimiter) RecordSuccess(clientID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, clientID)
}

// GetAttemptCount returns the current failure count for a client.
func (rl *RateLimiter) GetAttemptCount(clientID string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	tracker, exists := rl.attempts[clientID]
	if !exists {
		return 0
	}
	return tracker.Count
}

// GetTrackedClientCount returns the number of clients currently being tracked.
func (rl *RateLimiter) GetTrackedClientCount() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return len(rl.attempts)
}

// Stop stops the background cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// cleanupInactiveClients is a background goroutine that removes attempt trackers
// for clients that have been inactive for CleanupThreshold duration.
func (rl *RateLimiter) cleanupInactiveClients() {
	ticker := time.NewTicker(CleanupIntervalRateLimit)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.performCleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// performCleanup removes attempt trackers for inactive clients.
func (rl *RateLimiter) performCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-CleanupThreshold)

	for clientID, tracker := range rl.attempts {
		if tracker.LastFailed.Before(cutoff) && !now.Before(tracker.LockedUntil) {
			delete(rl.attempts, clientID)
		}
	}
}

// FormatRetryAfter formats a duration as whole seconds, rounded up.
func FormatRetryAfter(d time.Duration) int {
	seconds := int(d / time.Second)
	if d%time.Second > 0 {
		seconds++ // Round up
	}
	return seconds
}
