package risk

import (
	"fmt"
	"strings"
)

// FormatCard renders the trade card for a sized request. Lines appear in a
// fixed order; Level(s) and Notes are left out when empty.
func FormatCard(req SizingRequest, res SizingResult) string {
	lines := []string{
		"TRADE CARD",
		"- Pair: " + req.Pair,
		"- Setup: " + req.Setup,
		"- Bias (why): " + req.Bias,
	}
	if req.Levels != "" {
		lines = append(lines, "- Level(s): "+req.Levels)
	}
	lines = append(lines,
		"- Entry: "+FormatNumber(req.Entry),
		"- Stop (invalidation): "+FormatNumber(req.Stop),
		"- Target(s): "+FormatNumber(req.Target),
		fmt.Sprintf("- Bankroll (ring-fenced): %s USDT", FormatNumber(req.Bankroll)),
		fmt.Sprintf("- Risk: %s%% = %s USDT", FormatNumber(req.RiskPct), FormatNumber(res.RiskAmount)),
		fmt.Sprintf("- Size (suggested): %s USDT", FormatNumber(res.Size)),
		fmt.Sprintf("- Max loss if stopped (approx): %s USDT", FormatNumber(res.MaxLoss)),
		"- R:R (approx): "+FormatNumber(res.RewardRatio),
	)
	if req.Notes != "" {
		lines = append(lines, "- Notes: "+req.Notes)
	}
	return strings.Join(lines, "\n")
}
