package journal

import (
	"fmt"
	"strings"
)

// FormatRecordOrg renders a ledger record as an Org-mode block suitable for
// pasting into a journal. Every ledger field goes in the PROPERTIES drawer
// in schema order, followed by empty Thesis/Execution/Review sections.
func FormatRecordOrg(n int, r TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade %d: %s %s", n, orDash(r.Pair), orDash(r.Side))
	if r.TS != "" {
		fmt.Fprintf(&b, " (%s)", r.TS)
	}
	b.WriteString("\n")

	b.WriteString(":PROPERTIES:\n")
	for _, f := range Fields() {
		fmt.Fprintf(&b, ":%s: %s\n", strings.ToUpper(f.String()), r.Get(f))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- ")
	b.WriteString(r.Setup)
	b.WriteString("\n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- ")
	b.WriteString(r.Notes)
	b.WriteString("\n")

	return b.String()
}

// FormatRecordsOrg renders records in ledger order, numbered from 1 and
// separated by blank lines.
func FormatRecordsOrg(recs []TradeRecord) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatRecordOrg(i+1, r))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
