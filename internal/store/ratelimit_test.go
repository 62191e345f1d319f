package store

import (
	"testing"
	"time"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Jamais incrémenté : admissible
	if got := Remaining(nil, now); got != 0 {
		t.Fatalf("Remaining(nil) = %v, want 0", got)
	}

	// Exactement à la borne : admissible (inclusif)
	last := now.Add(-Cooldown)
	if got := Remaining(&last, now); got != 0 {
		t.Fatalf("Remaining at boundary = %v, want 0", got)
	}

	// Juste sous la borne : refusé
	last = now.Add(-Cooldown + 10*time.Millisecond)
	if got := Remaining(&last, now); got != 10*time.Millisecond {
		t.Fatalf("Remaining just under boundary = %v, want 10ms", got)
	}

	// Au-delà de la borne : admissible
	last = now.Add(-2 * Cooldown)
	if got := Remaining(&last, now); got != 0 {
		t.Fatalf("Remaining past boundary = %v, want 0", got)
	}
}

func TestRetrySeconds(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Second, 1},
		{58*time.Second + 900*time.Millisecond, 59},
		{100 * time.Millisecond, 1},
	}
	for _, tc := range cases {
		if got := RetrySeconds(tc.d); got != tc.want {
			t.Fatalf("RetrySeconds(%v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
