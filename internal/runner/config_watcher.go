package runner

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/cliconfig"
)

// ConfigWatcher monitors the TOML config file via fsnotify and retunes
// the run's inter-word pace when the file changes, so an operator can
// slow a run down without losing its progress when a service starts
// rate-limiting aggressively.
type ConfigWatcher struct {
	path   string
	pacing *Pacing
	log    zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, pacing *Pacing, log zerolog.Logger) *ConfigWatcher {
	return &ConfigWatcher{path: path, pacing: pacing, log: log}
}

// Run watches until the context is cancelled. Watch failures are logged
// and disable retuning; they never fail the run.
func (w *ConfigWatcher) Run(ctx context.Context) {
	if w.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warn().Err(err).Msg("config watcher: create failed")
		return
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which would
	// drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config watcher: watch failed")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher: error")
		}
	}
}

func (w *ConfigWatcher) debounceReload(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, w.reload)
}

func (w *ConfigWatcher) reload() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("config watcher: reload failed")
		return
	}
	if fc.Pace == "" {
		return
	}

	d, err := time.ParseDuration(fc.Pace)
	if err != nil {
		w.log.Warn().Err(err).Str("pace", fc.Pace).Msg("config watcher: bad pace value")
		return
	}

	if d != w.pacing.Pace() {
		w.pacing.SetPace(d)
		w.log.Info().Dur("pace", d).Msg("config watcher: pace retuned")
	}
}
