package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/internal/logger"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A personal trading journal and position sizer",
	Long: `Tradebook keeps an append-only ledger of your trades and sizes new ones
against a ring-fenced bankroll.

It provides tools for:
  - Recording trades in a CSV (or SQLite) ledger
  - Summarizing PnL, win rate and losses
  - Exporting the ledger as Org-mode trade notes
  - Risk-based position sizing with a printable trade card

Everything is offline and file based.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile     string
	backendFlag string
	logLevel    string

	cfg = config.Default()
	log = logrus.StandardLogger()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "ledger backend: csv or sqlite (default: from file extension)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	log = logger.New(cmd.ErrOrStderr(), level)
	return nil
}

// openLedger resolves the ledger location from --path, falling back to the
// config file, and opens it with the configured backend.
func openLedger(cmd *cobra.Command, path string) (journal.Ledger, *logrus.Entry, error) {
	if !cmd.Flags().Changed("path") && cfg.Ledger.Path != "" {
		path = cfg.Ledger.Path
	}
	if path == "" {
		return nil, nil, errors.New(`required flag(s) "path" not set`)
	}

	backend := cfg.Ledger.Backend
	if backendFlag != "" {
		backend = backendFlag
	}
	if backend == "" {
		backend = journal.BackendFor(path)
	}

	l, err := journal.Open(path, backend)
	if err != nil {
		return nil, nil, err
	}
	return l, log.WithFields(logrus.Fields{"path": path, "backend": backend}), nil
}
