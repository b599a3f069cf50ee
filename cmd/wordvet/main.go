package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	wordvet "github.com/lexkit/wordvet"
	"github.com/lexkit/wordvet/internal/cliconfig"
)

const helpDescription = `
Validate every five-letter word in a JS word list against two public
dictionary services, rewrite the list to keep only real words, and write
the removals to a JSON report.

Highlights:
  - Resumable: progress is checkpointed, so an interrupted run picks up
    where it left off on the next invocation.
  - Polite to the APIs: paced requests, exponential backoff with jitter,
    and Retry-After-aware handling of rate limits.
  - The original list is backed up once before anything is rewritten.
  - Configure via file, WORDVET_* environment variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  wordvet --source ./src/words.js
  wordvet --source ./src/words.js --pace 1s --retries 5
  wordvet --config $HOME/.wordvet/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "wordvet",
		Short:   "Validate a five-letter word list against dictionary APIs",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Flags win over env, env wins over file.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			// SIGINT and SIGTERM cancel the run; the checkpoint makes the
			// interruption resumable.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return wordvet.Run(ctx, cfg, wordvet.Options{
				Version:    getVersion(),
				ConfigPath: cfgFile,
			}, log)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.wordvet/config.toml)")
	root.Flags().StringVar(&cfg.SourcePath, "source", "", "JS word list file to validate (required)")
	root.Flags().StringVar(&cfg.BackupPath, "backup", "", "backup path (default: <source>.bak)")
	root.Flags().StringVar(&cfg.CheckpointPath, "checkpoint", "", "checkpoint path (default: .wordvet-checkpoint.json beside source)")
	root.Flags().StringVar(&cfg.ReportPath, "report", "", "invalid-word report path (default: invalid-words.json beside source)")

	root.Flags().StringVar(&cfg.PrimaryURL, "primary-url", cfg.PrimaryURL, "primary definition service base URL")
	root.Flags().StringVar(&cfg.FallbackURL, "fallback-url", cfg.FallbackURL, "fallback definition service base URL")
	root.Flags().StringVar(&cfg.Contact, "contact", cfg.Contact, "operator contact embedded in the User-Agent")

	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request HTTP timeout")
	root.Flags().IntVar(&cfg.Retries, "retries", cfg.Retries, "retries after the first attempt")
	root.Flags().DurationVar(&cfg.BackoffBase, "backoff-base", cfg.BackoffBase, "initial exponential backoff delay")
	root.Flags().DurationVar(&cfg.BackoffMax, "backoff-max", cfg.BackoffMax, "exponential backoff ceiling")
	root.Flags().DurationVar(&cfg.Cooldown, "cooldown", cfg.Cooldown, "extra wait added after each 429")

	root.Flags().DurationVar(&cfg.Pace, "pace", cfg.Pace, "delay between consecutive words")
	root.Flags().DurationVar(&cfg.TierGap, "tier-gap", cfg.TierGap, "delay between primary and fallback lookups")
	root.Flags().IntVar(&cfg.FlushEvery, "flush-every", cfg.FlushEvery, "checkpoint flush cadence in words")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "watch the config file and retune pace mid-run")

	if err := root.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Msg("interrupted, checkpoint preserved; rerun to resume")
			os.Exit(130)
		}
		log.Error().Err(err).Msg("wordvet")
		os.Exit(1)
	}
}
