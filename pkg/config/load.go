package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and TALLY_*
// environment overrides, and validates the result. A missing file is not an
// error: defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies TALLY_SECTION_FIELD environment variables on top
// of the file configuration.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Pricing.Path, "TALLY_PRICING_PATH")
	setBool(&cfg.Pricing.Watch, "TALLY_PRICING_WATCH")

	setBoolPtr(&cfg.Processing.SkipNonSuccess, "TALLY_PROCESSING_SKIP_NON_SUCCESS")
	setBoolPtr(&cfg.Processing.AlertUnknown, "TALLY_PROCESSING_ALERT_UNKNOWN")

	setString(&cfg.Alerts.Endpoint, "TALLY_ALERTS_ENDPOINT")
	setString(&cfg.Alerts.Token, "TALLY_ALERTS_TOKEN")
	setString(&cfg.Alerts.Recipients, "TALLY_ALERTS_RECIPIENTS")
	setBool(&cfg.Alerts.DryRun, "TALLY_ALERTS_DRY_RUN")
	setDuration(&cfg.Alerts.Timeout, "TALLY_ALERTS_TIMEOUT")

	setBool(&cfg.Audit.Enabled, "TALLY_AUDIT_ENABLED")
	setString(&cfg.Audit.DBPath, "TALLY_AUDIT_DB_PATH")
	setInt(&cfg.Audit.RetentionDays, "TALLY_AUDIT_RETENTION_DAYS")
	setString(&cfg.Audit.PruneSchedule, "TALLY_AUDIT_PRUNE_SCHEDULE")

	setString(&cfg.Server.ListenAddress, "TALLY_SERVER_LISTEN_ADDRESS")
	setDuration(&cfg.Server.ReadTimeout, "TALLY_SERVER_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, "TALLY_SERVER_WRITE_TIMEOUT")
	setDuration(&cfg.Server.IdleTimeout, "TALLY_SERVER_IDLE_TIMEOUT")
	setInt64(&cfg.Server.MaxBodyBytes, "TALLY_SERVER_MAX_BODY_BYTES")

	setBool(&cfg.Metrics.Enabled, "TALLY_METRICS_ENABLED")
	setString(&cfg.Metrics.Namespace, "TALLY_METRICS_NAMESPACE")

	setString(&cfg.Logging.Level, "TALLY_LOGGING_LEVEL")
	setString(&cfg.Logging.Format, "TALLY_LOGGING_FORMAT")
}

func setString(dst *string, name string) {
	if val := os.Getenv(name); val != "" {
		*dst = val
	}
}

func setBool(dst *bool, name string) {
	if val := os.Getenv(name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func setBoolPtr(dst **bool, name string) {
	if val := os.Getenv(name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = &b
		}
	}
}

func setInt(dst *int, name string) {
	if val := os.Getenv(name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func setInt64(dst *int64, name string) {
	if val := os.Getenv(name); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			*dst = i
		}
	}
}

func setDuration(dst *time.Duration, name string) {
	if val := os.Getenv(name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
