package cli

import (
	"fmt"
	"io"
	"strings"

	"stockmaster/internal/app"
	"stockmaster/internal/core"
)

func printSummary(w io.Writer, result *app.FinancialSummaryResult) {
	s := result.Summary
	title := "FINANCIAL SUMMARY"
	if result.Period != "" {
		title += " (" + result.Period + ")"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %-24s %14s  %-12s %-12s\n", "WAREHOUSE", "TOTAL", "BEST DAY", "WORST DAY")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, ws := range s.WarehouseSummaries {
		fmt.Fprintf(w, "  %-24s %14s  %-12s %-12s\n",
			ws.WarehouseName, core.FormatCurrency(ws.TotalProfit), ws.BestDay.Label, ws.WorstDay.Label)
	}
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "  %-24s %14s\n", "TOTAL", core.FormatCurrency(s.TotalProfit))
	fmt.Fprintf(w, "  Best performing : %s\n", s.BestPerformingWarehouse)
	fmt.Fprintf(w, "  Lowest          : %s\n", s.LowestPerformingWarehouse)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "  %s\n", s.OverallNarrative)
	for _, ws := range s.WarehouseSummaries {
		fmt.Fprintf(w, "  - %s\n", ws.Narrative)
	}
	fmt.Fprintf(w, "  (narrative: %s)\n", s.NarrativeSource)
}
