package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ─── Toast Circuit Breaker ──────────────────────────────────────────────────
// A machine without a notification daemon fails every toast. After
// FailureThreshold consecutive failures the breaker opens and toasts are
// skipped until ResetTimeout has passed; then one probe is let through.
//
//   - closed    → failures reach threshold → open
//   - open      → after timeout            → half-open
//   - half-open → probe succeeds → closed, probe fails → open

// BreakerState represents the circuit breaker state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // Toasts attempted
	BreakerOpen                         // Toasts skipped, balloon only
	BreakerHalfOpen                     // Next toast is a probe
)

// String returns a human-readable breaker state.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures the toast breaker.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip (default 3)
	ResetTimeout     time.Duration // time open before probing (default 10m)
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		ResetTimeout:     10 * time.Minute,
	}
}

// ErrToastSuppressed is returned by Allow while the breaker is open.
var ErrToastSuppressed = errors.New("toast suppressed after repeated failures")

// Breaker guards the OS toast. Safe for concurrent use.
type Breaker struct {
	mu        sync.Mutex
	config    BreakerConfig
	state     BreakerState
	failures  int
	trippedAt time.Time
	trips     int
	now       func() time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = DefaultBreakerConfig().ResetTimeout
	}
	return &Breaker{config: cfg, now: time.Now}
}

// Allow reports whether a toast may be attempted.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	if b.state == BreakerOpen {
		return fmt.Errorf("%w (retry after %s)", ErrToastSuppressed,
			b.trippedAt.Add(b.config.ResetTimeout).Format(time.Kitchen))
	}
	return nil
}

// RecordSuccess closes the breaker.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = BreakerClosed
	b.failures = 0
}

// RecordFailure counts a failed toast. May trip the breaker.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		b.trip()
	}
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return b.state
}

// Trips returns how many times the breaker has opened.
func (b *Breaker) Trips() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trips
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.trippedAt = b.now()
	b.trips++
}

// advance moves open → half-open once the timeout has elapsed.
// Caller holds mu.
func (b *Breaker) advance() {
	if b.state == BreakerOpen && b.now().Sub(b.trippedAt) >= b.config.ResetTimeout {
		b.state = BreakerHalfOpen
	}
}
