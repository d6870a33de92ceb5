package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty ledger",
	Long: `Create the ledger file (and any missing directories) with just a header.
Running init on an existing ledger does nothing.

Example:
  tradebook init --path ./tmp/binance-ledger.csv`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append one trade to the ledger",
	Long: `Append a single trade record. The ledger is created first if needed.
Values are stored exactly as given; numeric fields are not checked here.

Example:
  tradebook add --path ./tmp/binance-ledger.csv --ts "2026-01-30 19:00" \
    --pair BTCUSDT --side BUY --size_usdt 10 --entry 42000 --stop 41500 \
    --target 43500 --result_usdt 0 --notes "opened"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the ledger",
	Long: `Print the trade count, total PnL and, when there are trades, the win
rate and number of losses. Rows whose result_usdt is not a number count as
zero.

Example:
  tradebook stats --path ./tmp/binance-ledger.csv`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ledger as Org-mode trade notes",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var ledgerPath string

var addValues = map[journal.Field]*string{}

var addUsage = map[journal.Field]string{
	journal.FieldTS:         "trade timestamp, free text (required)",
	journal.FieldPair:       "instrument, e.g. BTCUSDT (required)",
	journal.FieldSide:       "direction, e.g. BUY or SELL (required)",
	journal.FieldSetup:      "setup label",
	journal.FieldSizeUSDT:   "notional size in USDT",
	journal.FieldEntry:      "entry price",
	journal.FieldStop:       "stop price",
	journal.FieldTarget:     "target price",
	journal.FieldResultUSDT: "realized PnL in USDT (required)",
	journal.FieldNotes:      "free-form notes",
}

var addRequired = []journal.Field{
	journal.FieldTS,
	journal.FieldPair,
	journal.FieldSide,
	journal.FieldResultUSDT,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(showCmd)

	for _, c := range []*cobra.Command{initCmd, addCmd, statsCmd, showCmd} {
		c.Flags().StringVarP(&ledgerPath, "path", "p", "", "path to the ledger file")
	}

	for _, f := range journal.Fields() {
		v := new(string)
		addValues[f] = v
		addCmd.Flags().StringVar(v, f.String(), "", addUsage[f])
	}
	for _, f := range addRequired {
		addCmd.MarkFlagRequired(f.String())
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	l, lg, err := openLedger(cmd, ledgerPath)
	if err != nil {
		return err
	}
	if err := l.Init(); err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	lg.Info("ledger ready")
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	var rec journal.TradeRecord
	for f, v := range addValues {
		rec.Set(f, *v)
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	l, lg, err := openLedger(cmd, ledgerPath)
	if err != nil {
		return err
	}
	if err := l.Append(rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	lg.WithFields(logrus.Fields{
		"pair":   rec.Pair,
		"side":   rec.Side,
		"result": rec.ResultUSDT,
	}).Info("recorded trade")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	l, lg, err := openLedger(cmd, ledgerPath)
	if err != nil {
		return err
	}

	s, err := journal.Summarize(l)
	if err != nil {
		return err
	}
	if s.Malformed > 0 {
		lg.WithField("rows", s.Malformed).Debug("non-numeric result_usdt counted as zero")
	}

	return journal.WriteStats(cmd.OutOrStdout(), s)
}

func runShow(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger(cmd, ledgerPath)
	if err != nil {
		return err
	}

	recs, err := l.Records()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRecordsOrg(recs))
	return nil
}
