// Package cmd provides the CLI commands of the wallet dashboard.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wallet-dashboard/internal/config"
	"wallet-dashboard/internal/gateway"
	"wallet-dashboard/internal/logger"
	"wallet-dashboard/internal/usecase"
)

var (
	cfgFile      string
	dataDir      string
	settingsFile string
	logLevel     string
	logFormat    string
	noCache      bool

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Wallet and card metrics dashboard",
	Long: `dashboard reads the cardholder, card and transaction CSV snapshots
of a wallet platform and shows their metrics.

The six snapshot files are read from the data directory:
  cardholder_inception.csv  cardholder_yesterday.csv
  card_inception.csv        card_yesterday.csv
  transaction_inception.csv transaction_yesterday.csv

Example:
  dashboard serve --data-dir ./data
  dashboard summary
  dashboard export --type wcredit --from 2024-01-01 --format xlsx`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if settingsFile != "" {
			if cfg.Settings, err = config.LoadSettings(settingsFile); err != nil {
				return err
			}
			cfg.SettingsFile = settingsFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err = logger.New(logger.Config{
			Level:  cfg.LogLevel,
			Format: logger.Format(cfg.LogFormat),
			Out:    os.Stderr,
		})
		return err
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file (default is .env when present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the snapshot files (overrides DASHBOARD_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "YAML settings file (overrides DASHBOARD_SETTINGS)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides DASHBOARD_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "console or json (overrides DASHBOARD_LOG_FORMAT)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "re-read snapshot files on every request")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}

func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if noCache {
		cfg.Cache = false
	}
}

// newDashboard wires the repository, normalizer and aggregator from cfg.
func newDashboard() *usecase.DashboardUseCase {
	csvRepo := gateway.NewCSVRecordRepository(cfg.DataDir)

	var repo usecase.RecordRepository = csvRepo
	if cfg.Cache {
		repo = gateway.NewCachedRepository(csvRepo)
	}

	return usecase.NewDashboardUseCase(
		repo,
		usecase.NewNormalizer(cfg.Settings.CurrencyMap()),
		usecase.NewAggregator(cfg.Settings.RejectionRule(), cfg.Settings.DisplayCurrencies()),
		cfg.Settings.Dashboard(),
		log,
	)
}
