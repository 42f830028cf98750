package app

import (
	"context"

	"stockmaster/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// Implementations contain no display logic.
type ApplicationService interface {
	// GetFinancialSummary loads the series for period from the configured
	// source and aggregates them. An empty period means the default week.
	GetFinancialSummary(ctx context.Context, period string) (*FinancialSummaryResult, error)

	// SummarizePortfolio aggregates caller-supplied series.
	SummarizePortfolio(ctx context.Context, series []core.WarehouseSeries) (*FinancialSummaryResult, error)

	// SummarizeWarehouse summarizes a single warehouse.
	SummarizeWarehouse(ctx context.Context, req WarehouseSummaryRequest) (*core.WarehouseSummary, error)

	// RenderSummaryChart renders the warehouse totals for period as a PNG.
	RenderSummaryChart(ctx context.Context, period string) ([]byte, error)

	// Inventory exposes the CRUD collections behind the inventory pages.
	Inventory() *core.InventoryService

	// Preferences exposes the user preferences store.
	Preferences() core.PreferencesStore
}
