package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (WORDVET_*). Env values override the config file but lose to flags
// that were explicitly set.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("source", os.Getenv("WORDVET_SOURCE"), &cfg.SourcePath)
	s.setString("backup", os.Getenv("WORDVET_BACKUP"), &cfg.BackupPath)
	s.setString("checkpoint", os.Getenv("WORDVET_CHECKPOINT"), &cfg.CheckpointPath)
	s.setString("report", os.Getenv("WORDVET_REPORT"), &cfg.ReportPath)
	s.setString("primary-url", os.Getenv("WORDVET_PRIMARY_URL"), &cfg.PrimaryURL)
	s.setString("fallback-url", os.Getenv("WORDVET_FALLBACK_URL"), &cfg.FallbackURL)
	s.setString("contact", os.Getenv("WORDVET_CONTACT"), &cfg.Contact)

	if err := s.setDuration("timeout", os.Getenv("WORDVET_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("backoff-base", os.Getenv("WORDVET_BACKOFF_BASE"), &cfg.BackoffBase); err != nil {
		return err
	}
	if err := s.setDuration("backoff-max", os.Getenv("WORDVET_BACKOFF_MAX"), &cfg.BackoffMax); err != nil {
		return err
	}
	if err := s.setDuration("cooldown", os.Getenv("WORDVET_COOLDOWN"), &cfg.Cooldown); err != nil {
		return err
	}
	if err := s.setDuration("pace", os.Getenv("WORDVET_PACE"), &cfg.Pace); err != nil {
		return err
	}
	if err := s.setDuration("tier-gap", os.Getenv("WORDVET_TIER_GAP"), &cfg.TierGap); err != nil {
		return err
	}

	if err := s.setIntFromString("retries", os.Getenv("WORDVET_RETRIES"), &cfg.Retries); err != nil {
		return err
	}
	if err := s.setIntFromString("flush-every", os.Getenv("WORDVET_FLUSH_EVERY"), &cfg.FlushEvery); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("WORDVET_WATCH"), &cfg.Watch)

	return nil
}
