package app

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/chart"
	"stockmaster/internal/core"

	"github.com/rs/zerolog"
)

type appService struct {
	source    core.SeriesSource
	reporter  *core.FinancialReporter
	inventory *core.InventoryService
	prefs     core.PreferencesStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	source core.SeriesSource,
	reporter *core.FinancialReporter,
	inventory *core.InventoryService,
	prefs core.PreferencesStore,
	logger zerolog.Logger,
) ApplicationService {
	return &appService{
		source:    source,
		reporter:  reporter,
		inventory: inventory,
		prefs:     prefs,
		logger:    logger,
		now:       time.Now,
	}
}

// GetFinancialSummary loads and aggregates the series for period.
func (s *appService) GetFinancialSummary(ctx context.Context, period string) (*FinancialSummaryResult, error) {
	if period == "" {
		period = core.DefaultPeriod
	}
	series, err := s.source.LoadSeries(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("load series for %q: %w", period, err)
	}

	result, err := s.aggregate(ctx, series)
	if err != nil {
		return nil, err
	}
	result.Period = period
	return result, nil
}

// SummarizePortfolio aggregates caller-supplied series.
func (s *appService) SummarizePortfolio(ctx context.Context, series []core.WarehouseSeries) (*FinancialSummaryResult, error) {
	return s.aggregate(ctx, series)
}

func (s *appService) aggregate(ctx context.Context, series []core.WarehouseSeries) (*FinancialSummaryResult, error) {
	summary, err := s.reporter.Aggregate(ctx, series)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("warehouses", len(summary.WarehouseSummaries)).
		Str("total", summary.TotalProfit.StringFixed(2)).
		Str("narrative_source", string(summary.NarrativeSource)).
		Msg("financial summary generated")
	return &FinancialSummaryResult{Summary: summary, GeneratedAt: s.now().UTC()}, nil
}

// SummarizeWarehouse summarizes a single warehouse.
func (s *appService) SummarizeWarehouse(ctx context.Context, req WarehouseSummaryRequest) (*core.WarehouseSummary, error) {
	summary, err := s.reporter.Summarize(ctx, req.series())
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// RenderSummaryChart renders the warehouse totals for period. The chart only
// needs totals, so the narrative provider is skipped.
func (s *appService) RenderSummaryChart(ctx context.Context, period string) ([]byte, error) {
	if period == "" {
		period = core.DefaultPeriod
	}
	series, err := s.source.LoadSeries(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("load series for %q: %w", period, err)
	}
	summary, err := core.AggregateSeries(series)
	if err != nil {
		return nil, err
	}
	return chart.RenderWarehouseTotals(summary)
}

func (s *appService) Inventory() *core.InventoryService { return s.inventory }

func (s *appService) Preferences() core.PreferencesStore { return s.prefs }
