package risk

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned by Compute for requests it cannot size.
var ErrInvalidInput = errors.New("invalid sizing input")

// DefaultRiskPct is the risk per trade, in percent of bankroll, used when
// none is given.
const DefaultRiskPct = 1.0

// SizingRequest describes a planned spot trade. Prices and amounts are in
// the quote currency (USDT); RiskPct is a percentage, 1.0 meaning 1%.
type SizingRequest struct {
	Pair   string
	Setup  string
	Bias   string
	Levels string
	Notes  string

	Bankroll float64
	RiskPct  float64
	Entry    float64
	Stop     float64
	Target   float64
}

// SizingResult is the suggested position for a SizingRequest. Size is
// notional, treating 1 USDT of size as 1 USDT of exposure.
type SizingResult struct {
	RiskAmount   float64
	StopDistance float64
	RiskPerUnit  float64 // loss per 1 USDT of notional if stopped
	RawSize      float64
	Size         float64
	MaxLoss      float64
	RewardRatio  float64

	// Capped is set when RawSize exceeded the bankroll and Size was
	// clamped to it. MaxLoss is then below RiskAmount.
	Capped bool
}

// Compute sizes req. Size never exceeds the bankroll: a stop very close to
// entry can ask for more notional than is available, in which case the
// size is silently clamped and MaxLoss reflects the clamped size.
func Compute(req SizingRequest) (SizingResult, error) {
	if err := validate(req); err != nil {
		return SizingResult{}, err
	}

	var res SizingResult
	res.RiskAmount = RiskAmount(req.Bankroll, req.RiskPct)
	res.StopDistance = math.Abs(req.Entry - req.Stop)
	res.RiskPerUnit = res.StopDistance / req.Entry
	res.RawSize = res.RiskAmount / res.RiskPerUnit

	res.Size = res.RawSize
	if res.Size > req.Bankroll {
		res.Size = req.Bankroll
		res.Capped = true
	}

	res.MaxLoss = res.Size * res.RiskPerUnit
	res.RewardRatio = RR(req.Entry, req.Stop, req.Target)
	return res, nil
}

func validate(req SizingRequest) error {
	for _, v := range []struct {
		name string
		x    float64
	}{
		{"bankroll", req.Bankroll},
		{"risk_pct", req.RiskPct},
		{"entry", req.Entry},
		{"stop", req.Stop},
		{"target", req.Target},
	} {
		if math.IsNaN(v.x) || math.IsInf(v.x, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, v.name)
		}
	}

	if req.Entry <= 0 || req.Entry == req.Stop {
		return fmt.Errorf("%w: entry and stop must be >0 and different", ErrInvalidInput)
	}
	if req.Bankroll <= 0 {
		return fmt.Errorf("%w: bankroll must be positive", ErrInvalidInput)
	}
	return nil
}
