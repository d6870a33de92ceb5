package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradebook/risk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Size a trade and print a trade card",
	Long: `Compute a position size from a bankroll, a risk percentage and the
entry/stop/target levels, and print a trade card.

Size is notional in USDT (spot, 1:1 exposure): risk / (stop distance / entry),
capped at the bankroll. Nothing is fetched; all prices come from the flags.

Example:
  tradebook card --pair BTCUSDT --bankroll 100 --risk_pct 1 \
    --entry 42000 --stop 41500 --target 43500 \
    --setup "Breakout retest" --bias "Uptrend + retest" --levels 42000`,
	Args: cobra.NoArgs,
	RunE: runCard,
}

var cardReq risk.SizingRequest

func init() {
	rootCmd.AddCommand(cardCmd)

	f := cardCmd.Flags()
	f.StringVar(&cardReq.Pair, "pair", "", "instrument, e.g. BTCUSDT (required)")
	f.StringVar(&cardReq.Setup, "setup", "", "setup name (required)")
	f.StringVar(&cardReq.Bias, "bias", "", "why you want this trade (required)")
	f.StringVar(&cardReq.Levels, "levels", "", "key level(s)")
	f.Float64Var(&cardReq.Bankroll, "bankroll", 0, "ring-fenced bankroll in USDT (required unless set in config)")
	f.Float64Var(&cardReq.RiskPct, "risk_pct", risk.DefaultRiskPct, "percent of bankroll to risk")
	f.Float64Var(&cardReq.Entry, "entry", 0, "entry price (required)")
	f.Float64Var(&cardReq.Stop, "stop", 0, "stop (invalidation) price (required)")
	f.Float64Var(&cardReq.Target, "target", 0, "target price (required)")
	f.StringVar(&cardReq.Notes, "notes", "", "free-form notes")

	for _, name := range []string{"pair", "setup", "bias", "entry", "stop", "target"} {
		cardCmd.MarkFlagRequired(name)
	}
}

func runCard(cmd *cobra.Command, args []string) error {
	req := cardReq
	if !cmd.Flags().Changed("bankroll") {
		if cfg.Sizing.Bankroll <= 0 {
			return errors.New(`required flag(s) "bankroll" not set`)
		}
		req.Bankroll = cfg.Sizing.Bankroll
	}
	if !cmd.Flags().Changed("risk_pct") {
		req.RiskPct = cfg.Sizing.RiskPct
	}

	res, err := risk.Compute(req)
	if err != nil {
		return err
	}

	if res.Capped {
		log.WithFields(logrus.Fields{
			"pair":      req.Pair,
			"raw_size":  res.RawSize,
			"bankroll":  req.Bankroll,
			"max_loss":  res.MaxLoss,
			"risk_usdt": res.RiskAmount,
		}).Debug("size capped to bankroll")
	}

	fmt.Fprintln(cmd.OutOrStdout(), risk.FormatCard(req, res))
	return nil
}
