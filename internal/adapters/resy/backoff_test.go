package resy

import (
	"testing"
	"time"
)

func TestDefaultBackoffNonDecreasing(t *testing.T) {
	if got := defaultBackoff(1); got != 3*time.Second {
		t.Fatalf("first backoff = %v, want 3s", got)
	}
	prev := time.Duration(0)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		d := defaultBackoff(attempt)
		if d < prev {
			t.Fatalf("backoff decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		prev = d
	}
}
