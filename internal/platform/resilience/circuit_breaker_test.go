package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("allow after threshold = %v, want ErrCircuitOpen", err)
	}
	if b.State() != CircuitStateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute, 1)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("allow after reset: %v", err)
	}
}

func TestCircuitBreakerHalfOpenProbeCloses(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}

	now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe allow: %v", err)
	}
	b.RecordSuccess()

	if b.State() != CircuitStateClosed {
		t.Fatalf("state = %s, want closed after successful probe", b.State())
	}
}

func TestCircuitBreakerHalfOpenProbeFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe allow: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("allow after failed probe = %v, want ErrCircuitOpen", err)
	}
}

func TestSingleFlightSharesResult(t *testing.T) {
	var flight SingleFlight

	value, err, shared := flight.Do("k", func() (any, error) {
		return 7, nil
	})
	if err != nil || shared {
		t.Fatalf("first call: err=%v shared=%v", err, shared)
	}
	if value != 7 {
		t.Fatalf("value = %v", value)
	}
}
