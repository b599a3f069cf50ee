package wordvet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testWordsJS = `// Total: 2 words
export const WORDS = [
  "CRANE",
  "HELLO",
];
`

func TestRun_WatcherDoesNotOutliveRun(t *testing.T) {
	before := runtime.NumGoroutine()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"x","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"d"}]}]}]`))
	}))

	dir := t.TempDir()
	source := filepath.Join(dir, "words.js")
	if err := os.WriteFile(source, []byte(testWordsJS), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("pace = \"1ms\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.SourcePath = source
	cfg.PrimaryURL = ts.URL
	cfg.FallbackURL = ts.URL
	cfg.Pace = 0
	cfg.TierGap = 0
	cfg.Watch = true

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer devnull.Close()

	// The context deliberately outlives the run, the embedder case.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Run(ctx, cfg, Options{
		Version:     "test",
		ConfigPath:  cfgFile,
		ProgressOut: devnull,
	}, zerolog.Nop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	rewritten, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(rewritten), "\"crane\",\n  \"hello\",") {
		t.Errorf("rewritten source:\n%s", rewritten)
	}

	// With the run over and the server closed, the watcher goroutine must
	// be gone even though ctx is still live.
	ts.Close()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("goroutines = %d, want <= %d after Run returns", runtime.NumGoroutine(), before)
}
