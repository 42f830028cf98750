package app

import (
	"context"
	"errors"
	"testing"

	"stockmaster/internal/config"
	"stockmaster/internal/core"
	"stockmaster/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) GenerateSummary(context.Context, core.NarrativeRequest) (*core.NarrativeResponse, error) {
	return nil, errors.New("provider offline")
}

func newTestService(t *testing.T, opts ...core.ReporterOption) ApplicationService {
	t.Helper()
	inventory := core.NewInventoryService(store.NewInventoryRepositories())
	require.NoError(t, inventory.Seed(context.Background()))
	return NewAppService(
		core.NewSampleSeriesSource(),
		core.NewFinancialReporter(opts...),
		inventory,
		store.NewMemoryPreferences(),
		zerolog.Nop(),
	)
}

func TestGetFinancialSummary_DefaultPeriod(t *testing.T) {
	svc := newTestService(t, core.WithNarrativeProvider(failingProvider{}))

	result, err := svc.GetFinancialSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultPeriod, result.Period)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Len(t, result.Summary.WarehouseSummaries, 3)
	assert.Equal(t, core.NarrativeLocal, result.Summary.NarrativeSource)
}

func TestGetFinancialSummary_UnknownPeriod(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetFinancialSummary(context.Background(), "last-year")
	assert.ErrorIs(t, err, core.ErrPeriodNotFound)
}

func TestSummarizePortfolio(t *testing.T) {
	svc := newTestService(t)
	series := []core.WarehouseSeries{
		{WarehouseName: "A", Entries: []core.DailyEntry{{Label: "Mon", Profit: decimal.NewFromInt(10)}}},
		{WarehouseName: "B", Entries: []core.DailyEntry{{Label: "Mon", Profit: decimal.NewFromInt(-4)}}},
	}
	result, err := svc.SummarizePortfolio(context.Background(), series)
	require.NoError(t, err)
	assert.True(t, result.Summary.TotalProfit.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "A", result.Summary.BestPerformingWarehouse)
	assert.Empty(t, result.Period)

	_, err = svc.SummarizePortfolio(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrEmptyPortfolio)
}

func TestSummarizeWarehouse(t *testing.T) {
	svc := newTestService(t)
	ws, err := svc.SummarizeWarehouse(context.Background(), WarehouseSummaryRequest{
		WarehouseName: "Solo",
		Entries: []core.DailyEntry{
			{Label: "Mon", Profit: decimal.NewFromInt(5)},
			{Label: "Tue", Profit: decimal.NewFromInt(-2)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Solo", ws.WarehouseName)
	assert.Equal(t, "Mon", ws.BestDay.Label)

	_, err = svc.SummarizeWarehouse(context.Background(), WarehouseSummaryRequest{WarehouseName: "Empty"})
	assert.ErrorIs(t, err, core.ErrEmptySeries)
}

func TestRenderSummaryChart(t *testing.T) {
	svc := newTestService(t)
	png, err := svc.RenderSummaryChart(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestBuild_StaticSource(t *testing.T) {
	cfg := &config.Config{
		Narrative: config.NarrativeConfig{Provider: config.ProviderNone},
		Source:    config.SourceConfig{Kind: config.SourceStatic},
	}
	svc, cleanup, err := Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer cleanup()

	stock, err := svc.Inventory().Stock.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, stock)

	_, err = svc.Preferences().Get(context.Background(), core.PrefUserName)
	assert.ErrorIs(t, err, core.ErrPreferenceNotSet)
}

func TestBuild_UnknownProvider(t *testing.T) {
	cfg := &config.Config{
		Narrative: config.NarrativeConfig{Provider: "llama"},
		Source:    config.SourceConfig{Kind: config.SourceStatic},
	}
	_, cleanup, err := Build(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	cleanup()
}
