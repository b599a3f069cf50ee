package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

func testFetcher(t *testing.T, opts Options) (*Fetcher, *[]time.Duration) {
	t.Helper()
	if opts.Timeout == 0 {
		opts.Timeout = time.Second
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Millisecond
	}
	if opts.BackoffMax == 0 {
		opts.BackoffMax = 10 * time.Millisecond
	}
	f := New(http.DefaultClient, opts, zerolog.Nop())
	var slept []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return f, &slept
}

func TestGet_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q, want application/json", r.Header.Get("Accept"))
		}
		if r.Header.Get("User-Agent") != "wordvet-test" {
			t.Errorf("User-Agent = %q, want wordvet-test", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"word":"crane"}]`))
	}))
	defer ts.Close()

	f, slept := testFetcher(t, Options{Retries: 3, UserAgent: "wordvet-test"})

	resp, err := f.Get(context.Background(), ts.URL, "crane")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !resp.OK() {
		t.Errorf("Status = %d, want 2xx", resp.Status)
	}
	if string(resp.Body) != `[{"word":"crane"}]` {
		t.Errorf("Body = %q", resp.Body)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %d times on clean success", len(*slept))
	}
}

func TestGet_NonRetryableStatus(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f, _ := testFetcher(t, Options{Retries: 3})

	resp, err := f.Get(context.Background(), ts.URL, "zzzzz")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", resp.Status)
	}
	if hits != 1 {
		t.Errorf("hits = %d, want 1 (no retry on ordinary error status)", hits)
	}
}

func TestGet_Sustained429(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	f, slept := testFetcher(t, Options{Retries: 2, Cooldown: time.Millisecond})

	resp, err := f.Get(context.Background(), ts.URL, "crane")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want the 429 handed back", resp.Status)
	}
	if hits != 3 {
		t.Errorf("hits = %d, want retries+1 = 3", hits)
	}
	// No sleep after the final attempt.
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}
}

func TestGet_RetryAfterHonored(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cooldown := 500 * time.Millisecond
	f, slept := testFetcher(t, Options{Retries: 3, Cooldown: cooldown})

	resp, err := f.Get(context.Background(), ts.URL, "crane")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !resp.OK() {
		t.Errorf("Status = %d, want 2xx", resp.Status)
	}
	if hits != 2 {
		t.Errorf("hits = %d, want exactly 2", hits)
	}
	if len(*slept) != 1 {
		t.Fatalf("slept %d times, want 1", len(*slept))
	}
	if min := 2*time.Second + cooldown; (*slept)[0] < min {
		t.Errorf("waited %v, want >= Retry-After + cooldown = %v", (*slept)[0], min)
	}
}

func TestGet_TransientExhaustion(t *testing.T) {
	// A server that is immediately closed yields connection refused,
	// which is transient.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	f, slept := testFetcher(t, Options{Retries: 2})

	_, err := f.Get(context.Background(), url, "crane")
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, domain.ErrAttemptsExhausted) {
		t.Errorf("err = %v, want ErrAttemptsExhausted", err)
	}
	if len(*slept) != 2 {
		t.Errorf("slept %d times, want 2", len(*slept))
	}
}

func TestGet_TimeoutRetried(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			time.Sleep(200 * time.Millisecond)
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	f, _ := testFetcher(t, Options{Retries: 2, Timeout: 50 * time.Millisecond})

	resp, err := f.Get(context.Background(), ts.URL, "crane")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !resp.OK() {
		t.Errorf("Status = %d, want 2xx after timeout retry", resp.Status)
	}
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
}

func TestGet_CallerCancelNotRetried(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer ts.Close()

	f, slept := testFetcher(t, Options{Retries: 3, Timeout: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := f.Get(ctx, ts.URL, "crane")
	if err == nil {
		t.Fatal("expected error on cancellation")
	}
	if errors.Is(err, domain.ErrAttemptsExhausted) {
		t.Errorf("cancellation should propagate, not exhaust retries: %v", err)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %d times on caller cancel", len(*slept))
	}
}

func TestGet_CancelDuringRateLimitWait(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	// Real sleep here: the wait itself must abort on cancellation.
	f := New(http.DefaultClient, Options{
		Timeout:     time.Second,
		Retries:     3,
		BackoffBase: time.Millisecond,
		BackoffMax:  10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := f.Get(ctx, ts.URL, "crane")
	if err == nil {
		t.Fatal("expected error when cancelled during the wait")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("waited %v, cancellation should interrupt the 60s Retry-After wait", elapsed)
	}
}

func TestIsTransient(t *testing.T) {
	if isTransient(context.Canceled) {
		t.Error("context.Canceled must not be transient")
	}
	if !isTransient(context.DeadlineExceeded) {
		t.Error("deadline exceeded (local abort) must be transient")
	}
	if isTransient(errors.New("boom")) {
		t.Error("arbitrary errors must not be transient")
	}
}
