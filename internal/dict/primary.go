package dict

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

// PrimaryClient queries the primary definition service
// (Free Dictionary API shape: a JSON array of entries, each carrying a
// meanings collection).
type PrimaryClient struct {
	fetcher Getter
	baseURL string
	log     zerolog.Logger
}

// NewPrimary creates a primary-tier client. baseURL must not end with a
// slash.
func NewPrimary(fetcher Getter, baseURL string, log zerolog.Logger) *PrimaryClient {
	return &PrimaryClient{fetcher: fetcher, baseURL: baseURL, log: log}
}

type primaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Lookup reports whether the primary service has at least one entry with
// a non-empty meanings collection for the word.
func (c *PrimaryClient) Lookup(ctx context.Context, word string) domain.TierResult {
	resp, err := c.fetcher.Get(ctx, lookupURL(c.baseURL, word), word)
	if err != nil {
		c.log.Debug().Str("word", word).Err(err).Msg("primary lookup failed")
		return domain.TierResult{Reason: err.Error()}
	}
	if !resp.OK() {
		return domain.TierResult{Reason: fmt.Sprintf("status %d", resp.Status)}
	}

	var entries []primaryEntry
	if err := json.Unmarshal(resp.Body, &entries); err != nil {
		return domain.TierResult{Reason: "unparseable response"}
	}
	for _, e := range entries {
		if len(e.Meanings) > 0 {
			return domain.TierResult{OK: true}
		}
	}
	return domain.TierResult{Reason: "no meanings"}
}
