package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Tally - AI usage cost engine",
	Long: `Tally prices AI model usage records against a pricing table.

It reads usage exports from the analytics pipeline and writes an exact
8-decimal USD cost into every record it can match, providing:
  - Flat-rate pricing with cached-input discounts (OpenAI models)
  - Tiered pricing with context cache and storage billing (Google models)
  - Alias resolution for model name variants
  - Unknown-model alerting and an optional SQLite audit trail`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tally.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
