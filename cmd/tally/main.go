// Tally is the Nooko AI usage cost engine.
//
// It prices AI model usage records exported by the analytics pipeline,
// writing an exact 8-decimal USD cost into every record it can match
// against the pricing table.
//
// Usage:
//
//	# Start the HTTP server with default configuration
//	tally run
//
//	# Start with a custom configuration file
//	tally run --config /etc/tally/tally.yaml
//
//	# Price a usage export from a file (or stdin with -)
//	tally price usage.json
//
//	# Validate a pricing table
//	tally validate --pricing pricing.json
//
//	# Show version information
//	tally version
package main

func main() {
	Execute()
}
