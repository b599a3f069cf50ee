// Package validate decides whether a single candidate word is valid
// English using a two-tier external lookup: the primary definition
// service first, then the Wiktionary-style fallback.
package validate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

// Tier is one of the two definition services consulted in order.
type Tier interface {
	Lookup(ctx context.Context, word string) domain.TierResult
}

// Validator applies the two-tier lookup policy. It performs exactly
// zero network calls for ineligible words, one when the primary tier
// affirms, and two otherwise.
type Validator struct {
	primary  Tier
	fallback Tier
	tierGap  time.Duration
	log      zerolog.Logger

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// New creates a Validator. tierGap is the pacing delay applied before
// querying the fallback service, so a primary miss does not burst
// straight into the second API.
func New(primary, fallback Tier, tierGap time.Duration, log zerolog.Logger) *Validator {
	return &Validator{
		primary:  primary,
		fallback: fallback,
		tierGap:  tierGap,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Validate produces the verdict for one word. Tier failures of any kind
// are ordinary branches. A cancelled context short-circuits after the
// current tier; callers must check ctx.Err() and discard the returned
// verdict when it is non-nil.
func (v *Validator) Validate(ctx context.Context, word string) domain.Verdict {
	if !domain.Eligible(word) {
		return domain.Verdict{Reason: "length"}
	}

	res := v.primary.Lookup(ctx, word)
	if res.OK {
		return domain.Verdict{Valid: true, Source: domain.SourcePrimary}
	}
	v.log.Debug().Str("word", word).Str("reason", res.Reason).Msg("primary tier missed")

	// A primary miss caused by cancellation is not a real miss; skip the
	// fallback rather than verdict the word. The caller discards verdicts
	// produced under a cancelled context.
	if ctx.Err() != nil {
		return domain.Verdict{Reason: "canceled"}
	}

	v.sleep(v.tierGap)

	res = v.fallback.Lookup(ctx, word)
	if res.OK {
		return domain.Verdict{Valid: true, Source: domain.SourceFallback}
	}
	v.log.Debug().Str("word", word).Str("reason", res.Reason).Msg("fallback tier missed")

	return domain.Verdict{Reason: "no match"}
}
