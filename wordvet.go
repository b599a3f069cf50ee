// Package wordvet wires the word validation pipeline so it can be
// embedded in other programs. The cmd/wordvet binary is a thin CLI over
// Run.
package wordvet

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/checkpoint"
	"github.com/lexkit/wordvet/internal/cliconfig"
	"github.com/lexkit/wordvet/internal/dict"
	"github.com/lexkit/wordvet/internal/fetch"
	"github.com/lexkit/wordvet/internal/runner"
	"github.com/lexkit/wordvet/internal/validate"
)

// Config is re-exported so embedders do not import internal packages.
type Config = cliconfig.Config

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config { return cliconfig.DefaultConfig() }

// Options carries run inputs that are not pipeline configuration.
type Options struct {
	// Version is embedded in the User-Agent sent to the definition
	// services.
	Version string

	// ConfigPath, when set and cfg.Watch is on, is watched during the
	// run so edits to its pace value take effect immediately.
	ConfigPath string

	// ProgressOut receives per-word progress lines. Defaults to stdout.
	ProgressOut *os.File
}

// Run validates cfg, wires the pipeline, and executes one run to
// completion. On context cancellation the checkpoint is preserved and
// ctx.Err() is returned; the next Run resumes where this one stopped.
func Run(ctx context.Context, cfg Config, opts Options, log zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fetcher := fetch.New(&http.Client{}, fetch.Options{
		Timeout:     cfg.HTTPTimeout,
		Retries:     cfg.Retries,
		BackoffBase: cfg.BackoffBase,
		BackoffMax:  cfg.BackoffMax,
		Cooldown:    cfg.Cooldown,
		UserAgent:   dict.UserAgent(opts.Version, cfg.Contact),
	}, log)

	primary := dict.NewPrimary(fetcher, cfg.PrimaryURL, log)
	fallback := dict.NewFallback(fetcher, cfg.FallbackURL, log)
	validator := validate.New(primary, fallback, cfg.TierGap, log)

	store := checkpoint.NewStore(cfg.CheckpointPath)

	progressOut := opts.ProgressOut
	if progressOut == nil {
		progressOut = os.Stdout
	}

	r := runner.New(runner.Config{
		SourcePath: cfg.SourcePath,
		BackupPath: cfg.BackupPath,
		ReportPath: cfg.ReportPath,
		FlushEvery: cfg.FlushEvery,
		Pace:       cfg.Pace,
	}, validator, store, progressOut, log)

	if cfg.Watch && opts.ConfigPath != "" && cliconfig.FileExists(opts.ConfigPath) {
		// Scope the watcher to this run: an embedder's ctx may live far
		// longer than the run does.
		watchCtx, stopWatch := context.WithCancel(ctx)
		watcher := runner.NewConfigWatcher(opts.ConfigPath, r.Pacing(), log)
		watchDone := make(chan struct{})
		go func() {
			watcher.Run(watchCtx)
			close(watchDone)
		}()
		defer func() {
			stopWatch()
			<-watchDone
		}()
	}

	return r.Run(ctx)
}
