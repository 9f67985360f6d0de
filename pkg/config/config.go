package config

import "time"

// Config is the root application configuration.
type Config struct {
	Pricing    PricingConfig    `yaml:"pricing"`
	Processing ProcessingConfig `yaml:"processing"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Audit      AuditConfig      `yaml:"audit"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PricingConfig locates the pricing table.
type PricingConfig struct {
	// Path is the pricing JSON file. Empty means the bundled default table.
	Path string `yaml:"path"`

	// Watch enables fsnotify hot reload of the pricing file. Requires Path.
	Watch bool `yaml:"watch"`
}

// ProcessingConfig controls batch behavior.
type ProcessingConfig struct {
	// SkipNonSuccess leaves records whose status is not "success" untouched.
	SkipNonSuccess *bool `yaml:"skip_non_success"`

	// AlertUnknown sends the unknown-model notification after each batch.
	AlertUnknown *bool `yaml:"alert_unknown"`
}

// AlertsConfig configures the unknown-model email channel.
type AlertsConfig struct {
	// Endpoint is the internal email API URL. Empty uses the built-in
	// default endpoint.
	Endpoint string `yaml:"endpoint"`

	// Token is the internal API token. Prefer TALLY_ALERTS_TOKEN.
	Token string `yaml:"token"`

	// Recipients is a comma- or semicolon-separated address list. Empty
	// falls back to log-only notification.
	Recipients string `yaml:"recipients"`

	// DryRun renders and logs the digest without calling the API.
	DryRun bool `yaml:"dry_run"`

	// Timeout bounds each email API call.
	Timeout time.Duration `yaml:"timeout"`
}

// AuditConfig configures the optional cost audit trail.
type AuditConfig struct {
	// Enabled turns the audit trail on.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// RetentionDays prunes audit records older than this. Zero keeps all.
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for scheduled pruning. Empty
	// disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`

	// MaxBodyBytes caps the accepted payload size.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// MetricsConfig configures Prometheus exposition.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`
}
