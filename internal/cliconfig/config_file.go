package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	SourcePath     string `toml:"source"`
	BackupPath     string `toml:"backup"`
	CheckpointPath string `toml:"checkpoint"`
	ReportPath     string `toml:"report"`

	PrimaryURL  string `toml:"primary_url"`
	FallbackURL string `toml:"fallback_url"`
	Contact     string `toml:"contact"`

	HTTPTimeout string `toml:"http_timeout"`
	Retries     int    `toml:"retries"`
	BackoffBase string `toml:"backoff_base"`
	BackoffMax  string `toml:"backoff_max"`
	Cooldown    string `toml:"cooldown"`

	Pace       string `toml:"pace"`
	TierGap    string `toml:"tier_gap"`
	FlushEvery int    `toml:"flush_every"`

	Watch *bool `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.wordvet/config.toml when the user home
// directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".wordvet", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config,
// respecting flags that have been explicitly set.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", fc.SourcePath, &cfg.SourcePath)
	s.setString("backup", fc.BackupPath, &cfg.BackupPath)
	s.setString("checkpoint", fc.CheckpointPath, &cfg.CheckpointPath)
	s.setString("report", fc.ReportPath, &cfg.ReportPath)
	s.setString("primary-url", fc.PrimaryURL, &cfg.PrimaryURL)
	s.setString("fallback-url", fc.FallbackURL, &cfg.FallbackURL)
	s.setString("contact", fc.Contact, &cfg.Contact)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("backoff-base", fc.BackoffBase, &cfg.BackoffBase); err != nil {
		return err
	}
	if err := s.setDuration("backoff-max", fc.BackoffMax, &cfg.BackoffMax); err != nil {
		return err
	}
	if err := s.setDuration("cooldown", fc.Cooldown, &cfg.Cooldown); err != nil {
		return err
	}
	if err := s.setDuration("pace", fc.Pace, &cfg.Pace); err != nil {
		return err
	}
	if err := s.setDuration("tier-gap", fc.TierGap, &cfg.TierGap); err != nil {
		return err
	}

	s.setInt("retries", fc.Retries, &cfg.Retries)
	s.setInt("flush-every", fc.FlushEvery, &cfg.FlushEvery)

	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
