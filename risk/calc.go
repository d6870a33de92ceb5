package risk

import "math"

// RR is the reward-to-risk ratio |target-entry| / |entry-stop|, or 0 when
// there is no risk distance.
func RR(entry, stop, target float64) float64 {
	risk := math.Abs(entry - stop)
	reward := math.Abs(target - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// RiskAmount is the quote-currency amount put at risk: bankroll * pct/100.
func RiskAmount(bankroll, riskPct float64) float64 {
	return bankroll * riskPct / 100
}
