package validate

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lexkit/wordvet/internal/domain"
)

type fakeTier struct {
	result domain.TierResult
	calls  int
}

func (f *fakeTier) Lookup(context.Context, string) domain.TierResult {
	f.calls++
	return f.result
}

func newTestValidator(primary, fallback *fakeTier) (*Validator, *[]time.Duration) {
	v := New(primary, fallback, 300*time.Millisecond, zerolog.Nop())
	var slept []time.Duration
	v.sleep = func(d time.Duration) { slept = append(slept, d) }
	return v, &slept
}

func TestValidate_LengthGate(t *testing.T) {
	primary := &fakeTier{result: domain.TierResult{OK: true}}
	fallback := &fakeTier{result: domain.TierResult{OK: true}}
	v, _ := newTestValidator(primary, fallback)

	for _, word := range []string{"", "cat", "cranes", "cr4ne"} {
		got := v.Validate(context.Background(), word)
		assert.False(t, got.Valid, "word %q", word)
		assert.Equal(t, "length", got.Reason, "word %q", word)
	}
	assert.Zero(t, primary.calls, "ineligible words must make no network calls")
	assert.Zero(t, fallback.calls)
}

func TestValidate_PrimaryHit(t *testing.T) {
	primary := &fakeTier{result: domain.TierResult{OK: true}}
	fallback := &fakeTier{result: domain.TierResult{OK: true}}
	v, slept := newTestValidator(primary, fallback)

	got := v.Validate(context.Background(), "crane")

	assert.True(t, got.Valid)
	assert.Equal(t, domain.SourcePrimary, got.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls, "fallback must not be consulted on a primary hit")
	assert.Empty(t, *slept, "no tier gap on a primary hit")
}

func TestValidate_FallbackHit(t *testing.T) {
	primary := &fakeTier{result: domain.TierResult{Reason: "status 404"}}
	fallback := &fakeTier{result: domain.TierResult{OK: true}}
	v, slept := newTestValidator(primary, fallback)

	got := v.Validate(context.Background(), "hello")

	assert.True(t, got.Valid)
	assert.Equal(t, domain.SourceFallback, got.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
	if assert.Len(t, *slept, 1) {
		assert.Equal(t, 300*time.Millisecond, (*slept)[0])
	}
}

// cancellingTier cancels the run context during its lookup, the way a
// signal arriving mid-request does, and reports a miss.
type cancellingTier struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancellingTier) Lookup(context.Context, string) domain.TierResult {
	c.calls++
	c.cancel()
	return domain.TierResult{Reason: "context canceled"}
}

func TestValidate_CancelledMidPrimarySkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	primary := &cancellingTier{cancel: cancel}
	fallback := &fakeTier{result: domain.TierResult{OK: true}}

	v := New(primary, fallback, 300*time.Millisecond, zerolog.Nop())
	var slept []time.Duration
	v.sleep = func(d time.Duration) { slept = append(slept, d) }

	got := v.Validate(ctx, "hello")

	assert.False(t, got.Valid)
	assert.Equal(t, "canceled", got.Reason)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls, "fallback must not run under a cancelled context")
	assert.Empty(t, slept, "no tier gap under a cancelled context")
}

func TestValidate_BothMiss(t *testing.T) {
	primary := &fakeTier{result: domain.TierResult{Reason: "attempts exhausted"}}
	fallback := &fakeTier{result: domain.TierResult{Reason: "no english entries"}}
	v, _ := newTestValidator(primary, fallback)

	got := v.Validate(context.Background(), "zzzzz")

	assert.False(t, got.Valid)
	assert.Empty(t, got.Source)
	assert.Equal(t, "no match", got.Reason)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}
