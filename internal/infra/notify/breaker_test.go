package notify

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(t *testing.T, now *time.Time) *Breaker {
	t.Helper()
	b := NewBreaker(BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	b.now = func() time.Time { return *now }
	return b
}

func TestBreakerState_String(t *testing.T) {
	tests := []struct {
		state BreakerState
		want  string
	}{
		{BreakerClosed, "closed"},
		{BreakerOpen, "open"},
		{BreakerHalfOpen, "half-open"},
		{BreakerState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("BreakerState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestBreaker_TripsAfterThreshold(t *testing.T) {
	clock := time.Now()
	b := newTestBreaker(t, &clock)

	for i := 0; i < 2; i++ {
		b.RecordFailure()
	}
	if b.State() != BreakerClosed {
		t.Fatalf("state after 2 failures = %s, want closed", b.State())
	}
	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Fatalf("state after 3 failures = %s, want open", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrToastSuppressed) {
		t.Errorf("Allow() = %v, want ErrToastSuppressed", err)
	}
	if b.Trips() != 1 {
		t.Errorf("Trips() = %d, want 1", b.Trips())
	}
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	clock := time.Now()
	b := newTestBreaker(t, &clock)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	if b.State() != BreakerClosed {
		t.Errorf("state = %s, want closed (failures must be consecutive)", b.State())
	}
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	clock := time.Now()
	b := newTestBreaker(t, &clock)
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	clock = clock.Add(time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("Allow() after timeout = %v, want probe allowed", err)
	}
	if b.State() != BreakerHalfOpen {
		t.Fatalf("state = %s, want half-open", b.State())
	}

	// Failed probe re-opens
	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Fatalf("state after failed probe = %s, want open", b.State())
	}

	clock = clock.Add(time.Minute)
	b.RecordSuccess()
	if b.State() != BreakerClosed {
		t.Errorf("state after successful probe = %s, want closed", b.State())
	}
	if b.Trips() != 2 {
		t.Errorf("Trips() = %d, want 2", b.Trips())
	}
}

func TestNewBreaker_Defaults(t *testing.T) {
	b := NewBreaker(BreakerConfig{})
	if b.config != DefaultBreakerConfig() {
		t.Errorf("config = %+v, want defaults", b.config)
	}
}
