package fetch

import (
	"testing"
	"time"
)

func TestBackoff_GrowthAndClamp(t *testing.T) {
	b := newBackoff(time.Second, 4*time.Second)

	// Pre-jitter schedule: 1s, 2s, 4s, 4s, 4s...
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second}
	var prev time.Duration
	for i, w := range want {
		got := b.Next()
		if b.Current() != w {
			t.Fatalf("step %d: pre-jitter = %v, want %v", i, b.Current(), w)
		}
		lo := time.Duration(float64(w) * 0.75)
		hi := time.Duration(float64(w) * 1.25)
		if got < lo || got > hi {
			t.Errorf("step %d: jittered %v outside [%v, %v]", i, got, lo, hi)
		}
		if b.Current() < prev {
			t.Errorf("step %d: pre-jitter decreased: %v < %v", i, b.Current(), prev)
		}
		prev = b.Current()
	}
}

func TestBackoff_Reset(t *testing.T) {
	b := newBackoff(time.Second, 10*time.Second)
	b.Next()
	b.Next()
	b.Reset()
	b.Next()
	if b.Current() != time.Second {
		t.Errorf("after reset, pre-jitter = %v, want %v", b.Current(), time.Second)
	}
}
