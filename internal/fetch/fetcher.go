// Package fetch performs single logical HTTP GETs with a bounded retry
// budget. Only two conditions are retried: 429 responses (with
// server-directed or computed backoff plus a fixed cooldown buffer) and
// transient transport failures (with computed backoff). Every other
// response, 2xx or not, is returned to the caller on the first attempt.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

// Response is a fully-read HTTP response. The body is drained before the
// per-attempt request context is released, so callers never touch a
// half-closed stream.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports whether the response status is 2xx.
func (r *Response) OK() bool { return r.Status/100 == 2 }

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds each individual attempt.
	Timeout time.Duration

	// Retries is the number of re-attempts after the first; total
	// attempts = Retries + 1.
	Retries int

	// BackoffBase and BackoffMax bound the computed exponential backoff.
	BackoffBase time.Duration
	BackoffMax  time.Duration

	// Cooldown is added on top of any 429 wait to avoid immediately
	// re-tripping the limit.
	Cooldown time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// Fetcher executes GET requests against the definition services.
type Fetcher struct {
	client *http.Client
	opts   Options
	log    zerolog.Logger

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Fetcher. The client's own Timeout is left untouched;
// per-attempt deadlines come from opts.Timeout via request contexts.
func New(client *http.Client, opts Options, log zerolog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
		opts:   opts,
		log:    log,
		sleep:  sleepCtx,
	}
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes
// first. Backoff waits can run to minutes under a server-directed
// Retry-After; they must not outlive the run.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Get performs one logical GET with retries. label is the word being
// looked up, used only for diagnostics. The number of attempts never
// exceeds Retries+1 on either the 429 path or the transient-error path.
func (f *Fetcher) Get(ctx context.Context, url, label string) (*Response, error) {
	attempts := f.opts.Retries + 1
	back := newBackoff(f.opts.BackoffBase, f.opts.BackoffMax)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := f.attempt(ctx, url)
		if err != nil {
			if !isTransient(err) {
				return nil, fmt.Errorf("fetch %q: %w", label, err)
			}
			lastErr = err
			if attempt == attempts {
				break
			}
			wait := back.Next()
			f.log.Warn().
				Str("word", label).
				Int("attempt", attempt).
				Dur("wait", wait).
				Err(err).
				Msg("transient fetch error, retrying")
			if err := f.sleep(ctx, wait); err != nil {
				return nil, fmt.Errorf("fetch %q: %w", label, err)
			}
			continue
		}

		if resp.Status != http.StatusTooManyRequests {
			return resp, nil
		}
		if attempt == attempts {
			// Out of budget: hand the 429 back, the caller decides.
			return resp, nil
		}

		wait, ok := ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		if !ok {
			wait = back.Next()
		}
		wait += f.opts.Cooldown
		f.log.Warn().
			Str("word", label).
			Int("attempt", attempt).
			Dur("wait", wait).
			Bool("server_directed", ok).
			Msg("rate limited, backing off")
		if err := f.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("fetch %q: %w", label, err)
		}
	}

	return nil, fmt.Errorf("fetch %q: %w after %d attempts: %v",
		label, domain.ErrAttemptsExhausted, attempts, lastErr)
}

// attempt issues a single request with its own deadline and drains the
// body before returning.
func (f *Fetcher) attempt(ctx context.Context, url string) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

// isTransient classifies errors worth retrying: timeouts (including the
// local per-attempt abort), DNS failures, connection resets and refusals,
// and truncated reads. Context cancellation from the caller is not
// transient; it means the run is being torn down.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	var dns *net.DNSError
	if errors.As(err, &dns) {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	return false
}
