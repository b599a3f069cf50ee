// Package cliconfig holds the wordvet CLI configuration and its three
// override layers: TOML config file, WORDVET_* environment variables,
// and command-line flags (highest precedence).
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/wordvet/internal/domain"
)

// Default service endpoints. Both are unauthenticated public APIs with
// undocumented quotas, which is why pacing and the 429 cooldown exist.
const (
	DefaultPrimaryURL  = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultFallbackURL = "https://en.wiktionary.org/api/rest_v1/page/definition"
)

// Config holds CLI configuration for wordvet.
type Config struct {
	SourcePath     string
	BackupPath     string
	CheckpointPath string
	ReportPath     string

	PrimaryURL  string
	FallbackURL string
	Contact     string

	HTTPTimeout time.Duration
	Retries     int
	BackoffBase time.Duration
	BackoffMax  time.Duration
	Cooldown    time.Duration

	Pace       time.Duration
	TierGap    time.Duration
	FlushEvery int

	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		PrimaryURL:  DefaultPrimaryURL,
		FallbackURL: DefaultFallbackURL,
		Contact:     os.Getenv("WORDVET_CONTACT"),
		HTTPTimeout: 10 * time.Second,
		Retries:     3,
		BackoffBase: time.Second,
		BackoffMax:  30 * time.Second,
		Cooldown:    2 * time.Second,
		Pace:        500 * time.Millisecond,
		TierGap:     300 * time.Millisecond,
		FlushEvery:  10,
		Watch:       true,
	}
}

// Validate checks the configuration for errors and sets derived
// defaults: backup, checkpoint, and report paths land next to the
// source file unless set explicitly.
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("%w: source is required", domain.ErrInvalidConfig)
	}

	dir := filepath.Dir(c.SourcePath)
	if c.BackupPath == "" {
		c.BackupPath = c.SourcePath + ".bak"
	}
	if c.CheckpointPath == "" {
		c.CheckpointPath = filepath.Join(dir, ".wordvet-checkpoint.json")
	}
	if c.ReportPath == "" {
		c.ReportPath = filepath.Join(dir, "invalid-words.json")
	}

	if c.PrimaryURL == "" {
		c.PrimaryURL = DefaultPrimaryURL
	}
	if c.FallbackURL == "" {
		c.FallbackURL = DefaultFallbackURL
	}
	// Ensure no trailing slash; lookup paths are appended with one.
	c.PrimaryURL = trimSlash(c.PrimaryURL)
	c.FallbackURL = trimSlash(c.FallbackURL)

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", domain.ErrInvalidConfig)
	}
	if c.BackoffBase <= 0 || c.BackoffMax < c.BackoffBase {
		return fmt.Errorf("%w: backoff bounds must satisfy 0 < base <= max", domain.ErrInvalidConfig)
	}
	if c.Pace < 0 || c.TierGap < 0 || c.Cooldown < 0 {
		return fmt.Errorf("%w: delays must not be negative", domain.ErrInvalidConfig)
	}
	if c.FlushEvery <= 0 {
		return fmt.Errorf("%w: flush-every must be positive", domain.ErrInvalidConfig)
	}

	return nil
}

func trimSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}

// Logger returns the process logger: console output on stderr with
// RFC3339 timestamps.
func Logger() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag
// precedence: values are applied only when the corresponding flag was
// not explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
