package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockguard-io/stockguard/internal/config"
	"github.com/stockguard-io/stockguard/pkg/alerts"
	"github.com/stockguard-io/stockguard/pkg/inventory"
	"github.com/stockguard-io/stockguard/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stockguard",
	Short: "Stockguard - small-business inventory tracking with stock and expiry alerts",
	Long: `Stockguard tracks products, stock levels, prices and expiry dates for a
small business. It classifies every product against configurable low-stock
and expiry thresholds, serves the catalog over a REST API, and can push
alerts to Slack or a webhook.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.stockguard/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStorage creates a storage backend from config.
func initStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewSQLite(cfg.Storage.Path, cfg.SeedThresholds())
}

// initNotifiers creates notifiers from config.
func initNotifiers(cfg *config.Config) []alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alerts.NewSlackNotifier(
			cfg.Alerts.Slack.WebhookURL,
			cfg.Alerts.Slack.Channel,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}

// initService creates a fully wired inventory service.
func initService(cfg *config.Config) (*inventory.Service, storage.Storage, error) {
	logger := newLogger(cfg)

	store, err := initStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	var dispatcher *inventory.Dispatcher
	if notifiers := initNotifiers(cfg); len(notifiers) > 0 {
		dispatcher = inventory.NewDispatcher(notifiers, logger)
	}

	svc := inventory.NewService(store, dispatcher, logger)
	return svc, store, nil
}
