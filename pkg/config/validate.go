package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration for values that would prevent the
// service from starting.
func Validate(cfg *Config) error {
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level %q (must be debug, info, warn or error)", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format %q (must be json or text)", cfg.Logging.Format)
	}

	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server listen address must not be empty")
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server idle timeout must be positive, got %s", cfg.Server.IdleTimeout)
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max body bytes must be positive, got %d", cfg.Server.MaxBodyBytes)
	}

	if cfg.Alerts.Timeout <= 0 {
		return fmt.Errorf("alerts timeout must be positive, got %s", cfg.Alerts.Timeout)
	}
	if !cfg.Alerts.DryRun && cfg.Alerts.Recipients != "" && cfg.Alerts.Token == "" {
		return fmt.Errorf("alerts token must be set when recipients are configured")
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.DBPath == "" {
			return fmt.Errorf("audit database path must not be empty when audit is enabled")
		}
		if cfg.Audit.RetentionDays < 0 {
			return fmt.Errorf("audit retention days must not be negative, got %d", cfg.Audit.RetentionDays)
		}
		if cfg.Audit.PruneSchedule != "" {
			if _, err := cron.ParseStandard(cfg.Audit.PruneSchedule); err != nil {
				return fmt.Errorf("invalid audit prune schedule %q: %w", cfg.Audit.PruneSchedule, err)
			}
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace must not be empty when metrics are enabled")
	}

	return nil
}
