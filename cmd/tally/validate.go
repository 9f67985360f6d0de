package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nooko-hq/tally/pkg/cli"
	"nooko-hq/tally/pkg/pricing"
)

var validateFlags struct {
	pricingPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pricing table",
	Long: `Validate a pricing table file.

Checks JSON structure, price signs, billing units, and tier ladders
(ascending thresholds, catch-all tier last). Without --pricing the
bundled default table is checked.

Examples:
  # Validate the bundled table
  tally validate

  # Validate a custom table
  tally validate --pricing /etc/tally/pricing.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.pricingPath, "pricing", "p", "", "pricing table file (default: bundled table)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	table, err := pricing.NewLoader().Load(validateFlags.pricingPath)
	if err != nil {
		return cli.NewPricingError(validateFlags.pricingPath, err)
	}

	if err := pricing.Validate(table); err != nil {
		return cli.NewPricingError(validateFlags.pricingPath, err)
	}

	models := 0
	for _, provider := range table {
		models += len(provider.Models)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Pricing table valid (%d providers, %d models)\n", len(table), models)
	return nil
}
