package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nooko-hq/tally/pkg/alerts"
	"nooko-hq/tally/pkg/batch"
	"nooko-hq/tally/pkg/cli"
	"nooko-hq/tally/pkg/config"
	"nooko-hq/tally/pkg/pricing"
	"nooko-hq/tally/pkg/telemetry/logging"
)

var priceFlags struct {
	pricingPath string
}

var priceCmd = &cobra.Command{
	Use:   "price [file]",
	Short: "Price a usage export payload",
	Long: `Price a usage export payload from a file or stdin.

The payload is a JSON object with an ai_usage key. The processed
payload, with cost_usd written into every priced record, goes to
stdout.

Examples:
  # Price a file
  tally price usage.json

  # Price from stdin
  cat usage.json | tally price

  # Use a specific pricing table
  tally price --pricing pricing.json usage.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVarP(&priceFlags.pricingPath, "pricing", "p", "", "pricing table file (default: bundled table or config)")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}
	if priceFlags.pricingPath != "" {
		cfg.Pricing.Path = priceFlags.pricingPath
	}

	// Logs go to stderr so stdout stays a clean JSON stream.
	logCfg := cfg.Logging
	if !verbose {
		logCfg.Level = "warn"
	}
	logger, err := logging.New(logCfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	payload, err := readPayload(args)
	if err != nil {
		return err
	}

	table, err := pricing.NewLoader().Load(cfg.Pricing.Path)
	if err != nil {
		return cli.NewPricingError(cfg.Pricing.Path, err)
	}
	if err := pricing.Validate(table); err != nil {
		return cli.NewPricingError(cfg.Pricing.Path, err)
	}

	processor := batch.NewProcessor(batch.ProcessorConfig{
		Table: table,
		Options: batch.Options{
			SkipNonSuccess: *cfg.Processing.SkipNonSuccess,
			AlertUnknown:   *cfg.Processing.AlertUnknown,
		},
		Notifier: alerts.NewLogNotifier(logger),
		Logger:   logger,
	})

	out, err := processor.ProcessJSON(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("failed to process payload: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readPayload(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	return data, nil
}
