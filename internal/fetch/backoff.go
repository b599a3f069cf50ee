package fetch

import (
	"math/rand"
	"time"
)

// backoff produces exponentially growing retry delays. The pre-jitter
// value doubles from base up to max; Next applies ±25% jitter on top.
type backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

func newBackoff(base, max time.Duration) *backoff {
	return &backoff{base: base, max: max}
}

// Next advances the schedule and returns the jittered delay.
func (b *backoff) Next() time.Duration {
	if b.cur <= 0 {
		b.cur = b.base
	} else {
		b.cur *= 2
		if b.cur > b.max {
			b.cur = b.max
		}
	}
	// jitter ~ +/-25%
	j := 0.75 + 0.5*rand.Float64()
	return time.Duration(float64(b.cur) * j)
}

// Current returns the pre-jitter delay of the last Next call.
func (b *backoff) Current() time.Duration { return b.cur }

func (b *backoff) Reset() { b.cur = 0 }
