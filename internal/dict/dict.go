// Package dict implements clients for the two external definition
// services. Each client reduces a lookup to a domain.TierResult; fetch
// errors are absorbed into a failed result so the validator can fall
// through to the next tier without exception-style control flow.
package dict

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lexkit/wordvet/internal/domain"
	"github.com/lexkit/wordvet/internal/fetch"
)

// Getter is the slice of the fetcher the clients need.
type Getter interface {
	Get(ctx context.Context, url, label string) (*fetch.Response, error)
}

// UserAgent builds the User-Agent sent to both services, optionally
// embedding an operator contact string so API maintainers can reach out.
func UserAgent(version, contact string) string {
	if contact == "" {
		return "wordvet/" + version
	}
	return fmt.Sprintf("wordvet/%s (%s)", version, contact)
}

func lookupURL(base, word string) string {
	return base + "/" + url.PathEscape(domain.Normalize(word))
}
