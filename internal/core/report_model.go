package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ── Errors ────────────────────────────────────────────────────────────────────

var (
	// ErrEmptySeries is returned when a warehouse series has no entries.
	ErrEmptySeries = errors.New("warehouse series has no entries")

	// ErrEmptyPortfolio is returned when no warehouse series are supplied.
	ErrEmptyPortfolio = errors.New("portfolio has no warehouses")

	// ErrInvalidSeries covers blank warehouse names and blank or repeated day labels.
	ErrInvalidSeries = errors.New("invalid warehouse series")

	// ErrDuplicateWarehouse is returned when a portfolio names the same warehouse twice.
	ErrDuplicateWarehouse = errors.New("duplicate warehouse in portfolio")

	// ErrInvalidProviderResponse marks narrative provider output that is malformed
	// or disagrees with the locally computed figures. It never reaches the caller
	// of FinancialReporter: the reporter falls back to the local templates.
	ErrInvalidProviderResponse = errors.New("invalid narrative provider response")

	// ErrPeriodNotFound is returned by a SeriesSource with no data for a period.
	ErrPeriodNotFound = errors.New("no profit series for reporting period")
)

// ── Report types ──────────────────────────────────────────────────────────────

// NarrativeSource records where the narrative text of a summary came from.
type NarrativeSource string

const (
	NarrativeLocal    NarrativeSource = "local"
	NarrativeProvided NarrativeSource = "provider"
)

// DailyEntry is one labelled profit/loss observation. Label is a weekday name,
// "Day N", a month abbreviation or similar, and is unique within its series.
type DailyEntry struct {
	Label  string          `json:"day"`
	Profit decimal.Decimal `json:"profit"`
}

// MarshalJSON renders Profit as a JSON number instead of decimal's quoted string.
func (e DailyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label  string      `json:"day"`
		Profit json.Number `json:"profit"`
	}{Label: e.Label, Profit: jsonAmount(e.Profit)})
}

// UnmarshalJSON requires both keys. A missing or null profit is an error,
// never a zero.
func (e *DailyEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label  *string         `json:"day"`
		Profit json.RawMessage `json:"profit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSeries, err)
	}
	if raw.Label == nil {
		return fmt.Errorf("%w: entry has no day", ErrInvalidSeries)
	}
	if len(raw.Profit) == 0 || string(raw.Profit) == "null" {
		return fmt.Errorf("%w: day %q has no profit", ErrInvalidSeries, *raw.Label)
	}

	var profit decimal.Decimal
	if err := profit.UnmarshalJSON(raw.Profit); err != nil {
		return fmt.Errorf("%w: day %q: %v", ErrInvalidSeries, *raw.Label, err)
	}
	e.Label = *raw.Label
	e.Profit = profit
	return nil
}

// WarehouseSeries is the chronological profit series of one warehouse for a
// reporting period.
type WarehouseSeries struct {
	WarehouseName string       `json:"warehouseName"`
	Entries       []DailyEntry `json:"entries"`
}

// WarehouseSummary is derived from one WarehouseSeries.
// TotalProfit is the exact sum of the entries; BestDay and WorstDay are the
// first maximal and first minimal entries in series order.
type WarehouseSummary struct {
	WarehouseName   string
	TotalProfit     decimal.Decimal
	BestDay         DailyEntry
	WorstDay        DailyEntry
	Narrative       string
	NarrativeSource NarrativeSource
}

func (s WarehouseSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WarehouseName   string          `json:"warehouseName"`
		TotalProfit     json.Number     `json:"totalProfit"`
		Summary         string          `json:"summary"`
		BestDay         DailyEntry      `json:"bestDay"`
		WorstDay        DailyEntry      `json:"worstDay"`
		NarrativeSource NarrativeSource `json:"narrativeSource"`
	}{
		WarehouseName:   s.WarehouseName,
		TotalProfit:     jsonAmount(s.TotalProfit),
		Summary:         s.Narrative,
		BestDay:         s.BestDay,
		WorstDay:        s.WorstDay,
		NarrativeSource: s.NarrativeSource,
	})
}

// PortfolioSummary combines the summaries of every warehouse in a report.
// WarehouseSummaries keeps the input order.
type PortfolioSummary struct {
	OverallNarrative          string
	TotalProfit               decimal.Decimal
	BestPerformingWarehouse   string
	LowestPerformingWarehouse string
	WarehouseSummaries        []WarehouseSummary
	NarrativeSource           NarrativeSource
}

func (p PortfolioSummary) MarshalJSON() ([]byte, error) {
	summaries := p.WarehouseSummaries
	if summaries == nil {
		summaries = []WarehouseSummary{}
	}
	return json.Marshal(struct {
		OverallSummary            string             `json:"overallSummary"`
		TotalProfit               json.Number        `json:"totalProfit"`
		BestPerformingWarehouse   string             `json:"bestPerformingWarehouse"`
		LowestPerformingWarehouse string             `json:"lowestPerformingWarehouse"`
		WarehouseSummaries        []WarehouseSummary `json:"warehouseSummaries"`
		NarrativeSource           NarrativeSource    `json:"narrativeSource"`
	}{
		OverallSummary:            p.OverallNarrative,
		TotalProfit:               jsonAmount(p.TotalProfit),
		BestPerformingWarehouse:   p.BestPerformingWarehouse,
		LowestPerformingWarehouse: p.LowestPerformingWarehouse,
		WarehouseSummaries:        summaries,
		NarrativeSource:           p.NarrativeSource,
	})
}

// Warehouse returns the summary for the named warehouse.
func (p *PortfolioSummary) Warehouse(name string) (WarehouseSummary, bool) {
	for _, s := range p.WarehouseSummaries {
		if s.WarehouseName == name {
			return s, true
		}
	}
	return WarehouseSummary{}, false
}

// jsonAmount renders an exact decimal as a JSON number literal.
func jsonAmount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
