package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NarrativeProvider generates summary text for a set of warehouse series.
// Implementations are opaque structured calls to a text-generation service;
// their figures are only used to cross-check the local aggregation.
type NarrativeProvider interface {
	GenerateSummary(ctx context.Context, req NarrativeRequest) (*NarrativeResponse, error)
}

// NarrativeRequest is the input handed to a NarrativeProvider. Its Series
// marshals to the {"<warehouse>": [{"day": ..., "profit": ...}]} object with
// warehouses in input order.
type NarrativeRequest struct {
	Series SeriesPayload
}

// WarehouseNarrative is the provider's text for one warehouse.
type WarehouseNarrative struct {
	WarehouseName string  `json:"warehouseName" jsonschema_description:"Name of the warehouse exactly as given in the input"`
	TotalProfit   float64 `json:"totalProfit" jsonschema_description:"Sum of the warehouse's daily profit values"`
	Summary       string  `json:"summary" jsonschema_description:"One or two sentences on the warehouse's week, naming its best and worst day"`
}

// NarrativeResponse is the structured output expected from a provider.
type NarrativeResponse struct {
	OverallSummary            string               `json:"overallSummary" jsonschema_description:"Two or three sentences on the whole business for the period"`
	TotalProfit               float64              `json:"totalProfit" jsonschema_description:"Sum of all warehouse totals"`
	BestPerformingWarehouse   string               `json:"bestPerformingWarehouse" jsonschema_description:"Warehouse with the highest total profit"`
	LowestPerformingWarehouse string               `json:"lowestPerformingWarehouse" jsonschema_description:"Warehouse with the lowest total profit"`
	WarehouseSummaries        []WarehouseNarrative `json:"warehouseSummaries" jsonschema_description:"One entry per input warehouse"`
}

// Normalize trims surrounding whitespace from every text field.
func (r *NarrativeResponse) Normalize() {
	r.OverallSummary = strings.TrimSpace(r.OverallSummary)
	r.BestPerformingWarehouse = strings.TrimSpace(r.BestPerformingWarehouse)
	r.LowestPerformingWarehouse = strings.TrimSpace(r.LowestPerformingWarehouse)
	for i := range r.WarehouseSummaries {
		r.WarehouseSummaries[i].WarehouseName = strings.TrimSpace(r.WarehouseSummaries[i].WarehouseName)
		r.WarehouseSummaries[i].Summary = strings.TrimSpace(r.WarehouseSummaries[i].Summary)
	}
}

// Validate checks the response against the locally computed summary. Every
// failure wraps ErrInvalidProviderResponse.
func (r *NarrativeResponse) Validate(local *PortfolioSummary) error {
	if r.OverallSummary == "" {
		return fmt.Errorf("%w: overall summary is empty", ErrInvalidProviderResponse)
	}
	if _, ok := local.Warehouse(r.BestPerformingWarehouse); !ok {
		return fmt.Errorf("%w: unknown best performing warehouse %q", ErrInvalidProviderResponse, r.BestPerformingWarehouse)
	}
	if _, ok := local.Warehouse(r.LowestPerformingWarehouse); !ok {
		return fmt.Errorf("%w: unknown lowest performing warehouse %q", ErrInvalidProviderResponse, r.LowestPerformingWarehouse)
	}
	if !sameAmount(r.TotalProfit, local.TotalProfit) {
		return fmt.Errorf("%w: total profit %.2f does not match %s",
			ErrInvalidProviderResponse, r.TotalProfit, local.TotalProfit.StringFixed(2))
	}

	if len(r.WarehouseSummaries) != len(local.WarehouseSummaries) {
		return fmt.Errorf("%w: expected %d warehouse summaries, got %d",
			ErrInvalidProviderResponse, len(local.WarehouseSummaries), len(r.WarehouseSummaries))
	}
	seen := make(map[string]struct{}, len(r.WarehouseSummaries))
	for _, w := range r.WarehouseSummaries {
		ws, ok := local.Warehouse(w.WarehouseName)
		if !ok {
			return fmt.Errorf("%w: unknown warehouse %q", ErrInvalidProviderResponse, w.WarehouseName)
		}
		if _, dup := seen[w.WarehouseName]; dup {
			return fmt.Errorf("%w: warehouse %q summarized twice", ErrInvalidProviderResponse, w.WarehouseName)
		}
		seen[w.WarehouseName] = struct{}{}
		if w.Summary == "" {
			return fmt.Errorf("%w: warehouse %q has an empty summary", ErrInvalidProviderResponse, w.WarehouseName)
		}
		if !sameAmount(w.TotalProfit, ws.TotalProfit) {
			return fmt.Errorf("%w: warehouse %q total %.2f does not match %s",
				ErrInvalidProviderResponse, w.WarehouseName, w.TotalProfit, ws.TotalProfit.StringFixed(2))
		}
	}
	return nil
}

// narrativeFor returns the provider text for the named warehouse.
func (r *NarrativeResponse) narrativeFor(name string) string {
	for _, w := range r.WarehouseSummaries {
		if w.WarehouseName == name {
			return w.Summary
		}
	}
	return ""
}

func sameAmount(reported float64, exact decimal.Decimal) bool {
	return decimal.NewFromFloat(reported).Round(2).Equal(exact.Round(2))
}
