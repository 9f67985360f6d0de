// Package config provides application configuration for the cost engine.
//
// # Overview
//
// Configuration is loaded from a YAML file, filled in with defaults, then
// optionally overridden by TALLY_* environment variables, and finally
// validated. The loading sequence is:
//
//  1. Parse YAML from file (a missing file yields pure defaults)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// # Sections
//
//   - pricing: pricing table path and hot-reload switch
//   - processing: batch skip/alert switches
//   - alerts: unknown-model email channel
//   - audit: optional SQLite audit trail and retention
//   - server: HTTP listen address and timeouts
//   - metrics: Prometheus exposition
//   - logging: level and format
//
// # Environment Overrides
//
// Environment variables follow TALLY_SECTION_FIELD naming, e.g.
// TALLY_PRICING_PATH or TALLY_ALERTS_TOKEN, and always take precedence over
// file values. Secrets (the alert token) should arrive this way rather than
// through the file.
package config
