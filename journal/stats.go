package journal

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Stats summarizes a ledger.
type Stats struct {
	Trades   int
	Wins     int
	Losses   int
	TotalPnL decimal.Decimal

	// Malformed counts non-empty result_usdt values that did not parse.
	// They are counted as zero everywhere else.
	Malformed int
}

// WinRate returns Wins/Trades, or 0 for an empty ledger.
func (s Stats) WinRate() float64 {
	if s.Trades == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Trades)
}

// Summarize reads every record from l and aggregates them. A ledger that
// does not exist yields ErrNotFound.
func Summarize(l Ledger) (Stats, error) {
	recs, err := l.Records()
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(recs), nil
}

// Aggregate computes Stats over recs. A result_usdt that is not a number
// contributes zero rather than failing the whole report.
func Aggregate(recs []TradeRecord) Stats {
	s := Stats{Trades: len(recs)}
	for _, rec := range recs {
		pnl, ok := ParseOrZero(rec.ResultUSDT)
		if !ok && strings.TrimSpace(rec.ResultUSDT) != "" {
			s.Malformed++
		}

		s.TotalPnL = s.TotalPnL.Add(pnl)
		switch pnl.Sign() {
		case 1:
			s.Wins++
		case -1:
			s.Losses++
		}
	}
	return s
}

// Bounds on a stored amount. Values outside them are treated as malformed
// so a stray "1e100000000" cannot make the report build a huge number.
const (
	maxExponent = 32
	maxDigits   = 64
)

// ParseOrZero parses a stored numeric field. Anything that is not a number
// (including "") or is out of range comes back as zero with ok == false.
func ParseOrZero(v string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	if d.NumDigits() > maxDigits {
		return decimal.Zero, false
	}
	return d, true
}

// WriteStats prints s in the report layout used by the stats command. The
// win rate and loss lines only appear when there is at least one trade.
// PnL is the exact decimal sum rounded half away from zero, so 0.125
// prints as 0.13 (a binary float sum would print 0.12).
func WriteStats(w io.Writer, s Stats) error {
	if _, err := fmt.Fprintf(w, "Trades: %d\n", s.Trades); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "PnL (USDT): %s\n", s.TotalPnL.StringFixed(2)); err != nil {
		return err
	}
	if s.Trades == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Win rate: %d/%d (%.1f%%)\n", s.Wins, s.Trades, s.WinRate()*100); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Losses: %d\n", s.Losses)
	return err
}
