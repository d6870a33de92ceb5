package risk

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders n for a trade card:
//
//	|n| >= 1000      1,234.50     grouped, two decimals
//	1 <= |n| < 1000  3.1416       up to four decimals
//	|n| < 1          0.00012346   up to eight decimals
//
// Trailing zeros (and a bare trailing point) are dropped in the two lower
// tiers.
func FormatNumber(n float64) string {
	a := math.Abs(n)
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return strconv.FormatFloat(n, 'f', -1, 64)
	case a >= 1000:
		return groupThousands(strconv.FormatFloat(n, 'f', 2, 64))
	case a >= 1:
		return trimZeros(strconv.FormatFloat(n, 'f', 4, 64))
	default:
		return trimZeros(strconv.FormatFloat(n, 'f', 8, 64))
	}
}

func trimZeros(s string) string {
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}

// groupThousands inserts commas into the integer part of a plain decimal
// string such as "-1234567.89".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
