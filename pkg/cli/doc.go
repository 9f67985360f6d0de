/*
Package cli provides command-line interface utilities for the tally
command.

Error Types:

Commands wrap failures in typed errors so callers and tests can tell a
bad configuration file, a bad pricing table, and a runtime failure
apart:

	cfg, err := config.Load(path)
	if err != nil {
		return cli.NewConfigError(path, err.Error())
	}

	if err := pricing.Validate(table); err != nil {
		return cli.NewPricingError(pricingPath, err)
	}
*/
package cli
