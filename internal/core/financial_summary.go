package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NarrativeTemplates builds the local narrative text used when no narrative
// provider is configured or when the provider fails.
type NarrativeTemplates struct {
	Warehouse func(s WarehouseSummary) string
	Overall   func(p PortfolioSummary) string
}

// DefaultNarrativeTemplates returns the built-in sentences.
func DefaultNarrativeTemplates() NarrativeTemplates {
	return NarrativeTemplates{
		Warehouse: warehouseNarrative,
		Overall:   overallNarrative,
	}
}

func warehouseNarrative(s WarehouseSummary) string {
	return fmt.Sprintf("Weekly profit of %s. Best day was %s (%s) and worst day was %s (%s).",
		FormatCurrency(s.TotalProfit),
		s.BestDay.Label, FormatCurrency(s.BestDay.Profit),
		s.WorstDay.Label, FormatCurrency(s.WorstDay.Profit),
	)
}

// overallNarrative picks its opening by the sign of the total so that a
// losing week is not described as a good one.
func overallNarrative(p PortfolioSummary) string {
	var opening string
	switch p.TotalProfit.Sign() {
	case 1:
		opening = "The business performed well this week, achieving a total profit of %s."
	case 0:
		opening = "The business broke even this week, with a total profit of %s."
	default:
		opening = "The business recorded a loss this week, with a total profit of %s."
	}
	return fmt.Sprintf(opening+" %s was the top performer, while %s had the lowest profit.",
		FormatCurrency(p.TotalProfit), p.BestPerformingWarehouse, p.LowestPerformingWarehouse)
}

// SummarizeSeries reduces one warehouse series to its total, best day and
// worst day, with the local template narrative.
func SummarizeSeries(series WarehouseSeries) (WarehouseSummary, error) {
	return summarize(series, DefaultNarrativeTemplates())
}

// AggregateSeries summarizes every warehouse and combines the results into a
// portfolio summary with the local template narratives. The first invalid
// series aborts the whole aggregation.
func AggregateSeries(seriesList []WarehouseSeries) (*PortfolioSummary, error) {
	return aggregate(seriesList, DefaultNarrativeTemplates())
}

// ValidateSeries checks the invariants of a single warehouse series.
func ValidateSeries(series WarehouseSeries) error {
	if len(series.Entries) == 0 {
		return fmt.Errorf("warehouse %q: %w", series.WarehouseName, ErrEmptySeries)
	}
	if strings.TrimSpace(series.WarehouseName) == "" {
		return fmt.Errorf("%w: warehouse name is required", ErrInvalidSeries)
	}

	seen := make(map[string]struct{}, len(series.Entries))
	for i, e := range series.Entries {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return fmt.Errorf("%w: warehouse %q entry %d has no label", ErrInvalidSeries, series.WarehouseName, i+1)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: warehouse %q repeats label %q", ErrInvalidSeries, series.WarehouseName, label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// ValidatePortfolio checks a whole portfolio, failing on the first bad series.
func ValidatePortfolio(seriesList []WarehouseSeries) error {
	if len(seriesList) == 0 {
		return ErrEmptyPortfolio
	}
	names := make(map[string]struct{}, len(seriesList))
	for _, s := range seriesList {
		if err := ValidateSeries(s); err != nil {
			return err
		}
		if _, dup := names[s.WarehouseName]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateWarehouse, s.WarehouseName)
		}
		names[s.WarehouseName] = struct{}{}
	}
	return nil
}

func summarize(series WarehouseSeries, tmpl NarrativeTemplates) (WarehouseSummary, error) {
	if err := ValidateSeries(series); err != nil {
		return WarehouseSummary{}, err
	}

	// Strict comparisons keep the first maximal/minimal entry on ties.
	total := decimal.Zero
	best, worst := series.Entries[0], series.Entries[0]
	for _, e := range series.Entries {
		total = total.Add(e.Profit)
		if e.Profit.GreaterThan(best.Profit) {
			best = e
		}
		if e.Profit.LessThan(worst.Profit) {
			worst = e
		}
	}

	s := WarehouseSummary{
		WarehouseName:   series.WarehouseName,
		TotalProfit:     total,
		BestDay:         best,
		WorstDay:        worst,
		NarrativeSource: NarrativeLocal,
	}
	s.Narrative = tmpl.Warehouse(s)
	return s, nil
}

func aggregate(seriesList []WarehouseSeries, tmpl NarrativeTemplates) (*PortfolioSummary, error) {
	if err := ValidatePortfolio(seriesList); err != nil {
		return nil, err
	}

	summaries := make([]WarehouseSummary, 0, len(seriesList))
	total := decimal.Zero
	bestIdx, lowestIdx := 0, 0
	for i, series := range seriesList {
		s, err := summarize(series, tmpl)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
		total = total.Add(s.TotalProfit)

		if s.TotalProfit.GreaterThan(summaries[bestIdx].TotalProfit) {
			bestIdx = i
		}
		if s.TotalProfit.LessThan(summaries[lowestIdx].TotalProfit) {
			lowestIdx = i
		}
	}

	p := &PortfolioSummary{
		TotalProfit:               total,
		BestPerformingWarehouse:   summaries[bestIdx].WarehouseName,
		LowestPerformingWarehouse: summaries[lowestIdx].WarehouseName,
		WarehouseSummaries:        summaries,
		NarrativeSource:           NarrativeLocal,
	}
	p.OverallNarrative = tmpl.Overall(*p)
	return p, nil
}
