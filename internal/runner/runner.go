// Package runner drives the validation run as a three-phase state
// machine: INIT (load list, load checkpoint, back up the source),
// PROCESS (sequential word loop with pacing and periodic flushes), and
// FINALIZE (partition, rewrite, report, clear checkpoint). There is no
// branching back once a phase is entered; any error escaping Run is
// fatal to the process, and the last flushed checkpoint is the resume
// point for the next invocation.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/checkpoint"
	"github.com/lexkit/wordvet/internal/domain"
	"github.com/lexkit/wordvet/internal/wordlist"
)

// WordValidator is the slice of the validator the runner needs.
type WordValidator interface {
	Validate(ctx context.Context, word string) domain.Verdict
}

// Config holds the runner's file paths and cadence settings.
type Config struct {
	SourcePath string
	BackupPath string
	ReportPath string

	// FlushEvery is the checkpoint cadence in processed words.
	FlushEvery int

	// Pace is the initial unconditional inter-word delay.
	Pace time.Duration
}

// Runner executes one validation run.
type Runner struct {
	cfg       Config
	validator WordValidator
	store     *checkpoint.Store
	pacing    *Pacing
	progress  *Progress
	log       zerolog.Logger

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

// New creates a Runner. Progress lines go to progressOut.
func New(cfg Config, v WordValidator, store *checkpoint.Store, progressOut io.Writer, log zerolog.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		validator: v,
		store:     store,
		pacing:    NewPacing(cfg.Pace),
		progress:  NewProgress(progressOut),
		log:       log,
		sleep:     time.Sleep,
	}
}

// Pacing exposes the retunable inter-word delay for the config watcher.
func (r *Runner) Pacing() *Pacing { return r.pacing }

// Run executes INIT, PROCESS, and FINALIZE in order. Words are always
// attempted in list order; the checkpoint cursor strictly increases; no
// two words' work ever overlaps.
func (r *Runner) Run(ctx context.Context) error {
	// INIT
	src, err := wordlist.Load(r.cfg.SourcePath)
	if err != nil {
		return err
	}

	var subset []string
	for _, w := range src.Words() {
		if domain.Eligible(w) {
			subset = append(subset, w)
		}
	}
	skipped := len(src.Words()) - len(subset)

	if err := r.store.Load(); err != nil {
		return err
	}

	start := r.store.LastIndex()
	if start > len(subset) {
		// The source list shrank between runs; clamp rather than reject.
		r.log.Warn().Int("cursor", start).Int("words", len(subset)).
			Msg("checkpoint cursor beyond list end, clamping")
		start = len(subset)
	}

	if r.store.Resuming() {
		r.log.Info().
			Str("run_id", r.store.RunID()).
			Int("resume_at", start).
			Int("words", len(subset)).
			Msg("resuming from checkpoint")
	} else {
		created, err := src.EnsureBackup(r.cfg.BackupPath)
		if err != nil {
			return err
		}
		r.log.Info().
			Str("run_id", r.store.RunID()).
			Int("words", len(subset)).
			Int("skipped", skipped).
			Bool("backup_created", created).
			Msg("starting fresh run")
	}

	// PROCESS
	for i := start; i < len(subset); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		word := subset[i]
		verdict := r.validator.Validate(ctx, word)
		// A lookup aborted by cancellation must not be verdicted: both
		// tiers report a cancelled fetch as a miss, and persisting that
		// would drop a valid word from the final list. Leave the word
		// unrecorded so the next invocation re-processes it.
		if err := ctx.Err(); err != nil {
			return err
		}
		r.store.Record(word, i, verdict)
		r.progress.Step(i+1, len(subset), word, verdict)

		last := i == len(subset)-1
		if (i+1)%r.cfg.FlushEvery == 0 || last {
			if err := r.store.Flush(); err != nil {
				return err
			}
		}

		// Unconditional pacing, whether the validator made 0 or 2 calls,
		// keeps the overall request cadence predictable.
		if !last {
			r.sleep(r.pacing.Pace())
		}
	}
	r.progress.Finish()

	// FINALIZE
	var valid, invalid []string
	for _, w := range subset {
		ok, recorded := r.store.Result(w)
		if !recorded {
			return fmt.Errorf("word %q has no recorded verdict", w)
		}
		if ok {
			valid = append(valid, w)
		} else {
			invalid = append(invalid, w)
		}
	}

	if err := src.RewriteValid(valid); err != nil {
		return err
	}
	if err := wordlist.WriteInvalidReport(r.cfg.ReportPath, invalid); err != nil {
		return err
	}
	if err := r.store.Clear(); err != nil {
		return err
	}

	r.log.Info().
		Int("kept", len(valid)).
		Int("removed", len(invalid)).
		Str("report", r.cfg.ReportPath).
		Msg("run complete")
	return nil
}
