package config

import "time"

// Default values applied when the file leaves a field unset.
const (
	DefaultListenAddress = "127.0.0.1:8480"
	DefaultReadTimeout   = 30 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultIdleTimeout   = 120 * time.Second
	DefaultMaxBodyBytes  = 10 << 20 // 10 MiB
	DefaultAlertTimeout  = 10 * time.Second
	DefaultAuditDBPath   = "tally-audit.db"
	DefaultNamespace     = "tally"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// ApplyDefaults fills unset fields with their default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Processing.SkipNonSuccess == nil {
		cfg.Processing.SkipNonSuccess = boolPtr(true)
	}
	if cfg.Processing.AlertUnknown == nil {
		cfg.Processing.AlertUnknown = boolPtr(true)
	}

	if cfg.Alerts.Timeout <= 0 {
		cfg.Alerts.Timeout = DefaultAlertTimeout
	}

	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = DefaultAuditDBPath
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}

func boolPtr(v bool) *bool { return &v }
