package dict

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

// FallbackClient queries the Wiktionary-style fallback service, whose
// response maps language codes to definition entry lists.
type FallbackClient struct {
	fetcher Getter
	baseURL string
	log     zerolog.Logger
}

// NewFallback creates a fallback-tier client. baseURL must not end with
// a slash.
func NewFallback(fetcher Getter, baseURL string, log zerolog.Logger) *FallbackClient {
	return &FallbackClient{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Lookup reports whether the fallback service has a non-empty
// English-language entry collection for the word.
func (c *FallbackClient) Lookup(ctx context.Context, word string) domain.TierResult {
	resp, err := c.fetcher.Get(ctx, lookupURL(c.baseURL, word), word)
	if err != nil {
		c.log.Debug().Str("word", word).Err(err).Msg("fallback lookup failed")
		return domain.TierResult{Reason: err.Error()}
	}
	if !resp.OK() {
		return domain.TierResult{Reason: fmt.Sprintf("status %d", resp.Status)}
	}

	var byLang map[string][]json.RawMessage
	if err := json.Unmarshal(resp.Body, &byLang); err != nil {
		return domain.TierResult{Reason: "unparseable response"}
	}
	if len(byLang["en"]) == 0 {
		return domain.TierResult{Reason: "no english entries"}
	}
	return domain.TierResult{OK: true}
}
