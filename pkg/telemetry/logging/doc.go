// Package logging builds the application's structured logger.
//
// Loggers are standard log/slog loggers configured from the logging
// section of the application configuration. Components receive derived
// loggers tagged with a "component" attribute so that log streams can
// be filtered per subsystem.
package logging
