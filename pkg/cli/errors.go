package cli

import "fmt"

// ConfigError reports a configuration file that could not be loaded or
// failed validation.
type ConfigError struct {
	// Path is the configuration file the failure came from.
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration file %s: %s", e.Path, e.Reason)
}

// PricingError reports a pricing table that could not be loaded or
// failed validation. An empty Path means the bundled table.
type PricingError struct {
	Path string
	Err  error
}

func (e *PricingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bundled pricing table: %v", e.Err)
	}
	return fmt.Sprintf("pricing table %s: %v", e.Path, e.Err)
}

func (e *PricingError) Unwrap() error {
	return e.Err
}

// CommandError wraps a runtime failure of a tally subcommand.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("tally %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(path, reason string) *ConfigError {
	return &ConfigError{
		Path:   path,
		Reason: reason,
	}
}

// NewPricingError creates a new PricingError.
func NewPricingError(path string, err error) *PricingError {
	return &PricingError{
		Path: path,
		Err:  err,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
