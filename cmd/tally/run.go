package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"nooko-hq/tally/pkg/alerts"
	"nooko-hq/tally/pkg/audit"
	"nooko-hq/tally/pkg/batch"
	"nooko-hq/tally/pkg/cli"
	"nooko-hq/tally/pkg/config"
	"nooko-hq/tally/pkg/costing"
	"nooko-hq/tally/pkg/pricing"
	"nooko-hq/tally/pkg/server"
	"nooko-hq/tally/pkg/telemetry/logging"
	"nooko-hq/tally/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Tally cost engine server",
	Long: `Start the Tally HTTP server with the specified configuration.

The server accepts usage export payloads on /v1/costs, prices every
record it can match against the pricing table, and returns the payload
with cost_usd filled in.

Examples:
  # Start with default config
  tally run

  # Start with custom config
  tally run --config /etc/tally/tally.yaml

  # Override listen address
  tally run --listen 0.0.0.0:8480

  # Validate config without starting the server
  tally run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Pricing table
	loader := pricing.NewLoader()
	table, err := loader.Load(cfg.Pricing.Path)
	if err != nil {
		return cli.NewPricingError(cfg.Pricing.Path, err)
	}
	if err := pricing.Validate(table); err != nil {
		return cli.NewPricingError(cfg.Pricing.Path, err)
	}
	logger.Info("pricing table loaded", "path", pricingPathLabel(cfg.Pricing.Path))

	// Unknown-model notifier
	var notifier batch.Notifier
	if recipients := alerts.ParseRecipients(cfg.Alerts.Recipients); len(recipients) > 0 {
		notifier = alerts.NewEmailNotifier(alerts.EmailConfig{
			Endpoint:   cfg.Alerts.Endpoint,
			Token:      cfg.Alerts.Token,
			Recipients: recipients,
			DryRun:     cfg.Alerts.DryRun,
			Timeout:    cfg.Alerts.Timeout,
		}, logger)
	} else {
		notifier = alerts.NewLogNotifier(logger)
	}

	// Metrics
	var (
		recorder       batch.Recorder
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(cfg.Metrics)
		recorder = collector
		metricsHandler = collector.Handler()
	}

	// Audit trail
	var onBreakdown func(costing.Fields, *costing.Breakdown)
	if cfg.Audit.Enabled {
		store, err := audit.NewStore(cfg.Audit.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer store.Close()

		auditLogger := logging.Component(logger, "audit")
		scheduler := audit.NewScheduler(store, cfg.Audit, auditLogger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start audit scheduler: %w", err)
		}
		defer scheduler.Stop()

		onBreakdown = func(usage costing.Fields, breakdown *costing.Breakdown) {
			if err := store.Save(ctx, usage, breakdown); err != nil {
				auditLogger.Warn("failed to persist audit record",
					"model", breakdown.Model, "error", err)
			}
		}
		auditLogger.Info("audit trail enabled", "db_path", cfg.Audit.DBPath)
	}

	processor := batch.NewProcessor(batch.ProcessorConfig{
		Table: table,
		Options: batch.Options{
			SkipNonSuccess: *cfg.Processing.SkipNonSuccess,
			AlertUnknown:   *cfg.Processing.AlertUnknown,
		},
		Notifier:    notifier,
		Recorder:    recorder,
		OnBreakdown: onBreakdown,
		Logger:      logger,
	})

	// Pricing hot reload
	if cfg.Pricing.Watch && cfg.Pricing.Path != "" {
		watchLogger := logging.Component(logger, "pricing.watcher")
		watcher, err := pricing.NewWatcher(loader, pricing.WatcherConfig{Path: cfg.Pricing.Path}, logger)
		if err != nil {
			return fmt.Errorf("failed to create pricing watcher: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx, func(t pricing.Table) {
				if err := pricing.Validate(t); err != nil {
					watchLogger.Error("reloaded pricing table is invalid, keeping previous", "error", err)
					return
				}
				processor.SetTable(t)
			}); err != nil {
				watchLogger.Error("pricing watcher stopped", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg.Server, processor, metricsHandler, logger)

	fmt.Printf("Tally v%s\n", Version)
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	if cfg.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Server.ListenAddress)
	}

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

func pricingPathLabel(path string) string {
	if path == "" {
		return "(bundled)"
	}
	return path
}
