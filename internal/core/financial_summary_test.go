package core_test

import (
	"encoding/json"
	"testing"

	"stockmaster/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(name string, entries ...core.DailyEntry) core.WarehouseSeries {
	return core.WarehouseSeries{WarehouseName: name, Entries: entries}
}

func day(label, profit string) core.DailyEntry {
	return core.DailyEntry{Label: label, Profit: decimal.RequireFromString(profit)}
}

func mainWarehouse() core.WarehouseSeries {
	return series("Main Warehouse",
		day("Monday", "1860"), day("Tuesday", "-305"), day("Wednesday", "2370"),
		day("Thursday", "730"), day("Friday", "-500"), day("Saturday", "2480"),
		day("Sunday", "3200"),
	)
}

// scenarioPortfolio has warehouse totals 9835, 5550 and 11500.
func scenarioPortfolio() []core.WarehouseSeries {
	return []core.WarehouseSeries{
		mainWarehouse(),
		series("Secondary Warehouse",
			day("Monday", "1200"), day("Tuesday", "250"), day("Wednesday", "-100"),
			day("Thursday", "800"), day("Friday", "1500"), day("Saturday", "-200"),
			day("Sunday", "2100"),
		),
		series("West Coast Hub",
			day("Monday", "-500"), day("Tuesday", "1800"), day("Wednesday", "2800"),
			day("Thursday", "-300"), day("Friday", "3200"), day("Saturday", "3000"),
			day("Sunday", "1500"),
		),
	}
}

func TestSummarizeSeries_MainWarehouse(t *testing.T) {
	s, err := core.SummarizeSeries(mainWarehouse())
	require.NoError(t, err)

	assert.Equal(t, "Main Warehouse", s.WarehouseName)
	assert.True(t, s.TotalProfit.Equal(decimal.NewFromInt(9835)), "total = %s", s.TotalProfit)
	assert.Equal(t, "Sunday", s.BestDay.Label)
	assert.True(t, s.BestDay.Profit.Equal(decimal.NewFromInt(3200)))
	assert.Equal(t, "Friday", s.WorstDay.Label)
	assert.True(t, s.WorstDay.Profit.Equal(decimal.NewFromInt(-500)))
	assert.Equal(t, core.NarrativeLocal, s.NarrativeSource)
	assert.Equal(t,
		"Weekly profit of $9835.00. Best day was Sunday ($3200.00) and worst day was Friday (-$500.00).",
		s.Narrative)
}

func TestSummarizeSeries_Properties(t *testing.T) {
	tests := []struct {
		name      string
		series    core.WarehouseSeries
		wantTotal string
		wantBest  string
		wantWorst string
	}{
		{
			name:      "single entry is both best and worst",
			series:    series("Solo", day("Day 1", "42.5")),
			wantTotal: "42.5",
			wantBest:  "Day 1",
			wantWorst: "Day 1",
		},
		{
			name:      "ties keep the first occurrence",
			series:    series("Flat", day("Mon", "100"), day("Tue", "100"), day("Wed", "-5"), day("Thu", "-5")),
			wantTotal: "190",
			wantBest:  "Mon",
			wantWorst: "Wed",
		},
		{
			name:      "all zero",
			series:    series("Idle", day("Jan", "0"), day("Feb", "0"), day("Mar", "0")),
			wantTotal: "0",
			wantBest:  "Jan",
			wantWorst: "Jan",
		},
		{
			name:      "fractional amounts sum exactly",
			series:    series("Cents", day("a", "0.1"), day("b", "0.2"), day("c", "0.3")),
			wantTotal: "0.6",
			wantBest:  "c",
			wantWorst: "a",
		},
		{
			name:      "all losses",
			series:    series("Red", day("Mon", "-10"), day("Tue", "-30"), day("Wed", "-20")),
			wantTotal: "-60",
			wantBest:  "Mon",
			wantWorst: "Tue",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := core.SummarizeSeries(tc.series)
			require.NoError(t, err)
			assert.True(t, s.TotalProfit.Equal(decimal.RequireFromString(tc.wantTotal)),
				"total: want %s, got %s", tc.wantTotal, s.TotalProfit)
			assert.Equal(t, tc.wantBest, s.BestDay.Label)
			assert.Equal(t, tc.wantWorst, s.WorstDay.Label)
			for _, e := range tc.series.Entries {
				assert.True(t, s.BestDay.Profit.GreaterThanOrEqual(e.Profit))
				assert.True(t, s.WorstDay.Profit.LessThanOrEqual(e.Profit))
			}
		})
	}
}

func TestSummarizeSeries_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		series  core.WarehouseSeries
		wantErr error
	}{
		{"no entries", series("Empty"), core.ErrEmptySeries},
		{"nil entries and no name", core.WarehouseSeries{}, core.ErrEmptySeries},
		{"blank name", series("  ", day("Mon", "1")), core.ErrInvalidSeries},
		{"blank label", series("W", day("Mon", "1"), day(" ", "2")), core.ErrInvalidSeries},
		{"duplicate label", series("W", day("Mon", "1"), day("Mon", "2")), core.ErrInvalidSeries},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.SummarizeSeries(tc.series)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAggregateSeries_Scenario(t *testing.T) {
	p, err := core.AggregateSeries(scenarioPortfolio())
	require.NoError(t, err)

	assert.True(t, p.TotalProfit.Equal(decimal.NewFromInt(26885)), "total = %s", p.TotalProfit)
	assert.Equal(t, "West Coast Hub", p.BestPerformingWarehouse)
	assert.Equal(t, "Secondary Warehouse", p.LowestPerformingWarehouse)
	assert.Equal(t, core.NarrativeLocal, p.NarrativeSource)
	assert.Equal(t,
		"The business performed well this week, achieving a total profit of $26885.00. "+
			"West Coast Hub was the top performer, while Secondary Warehouse had the lowest profit.",
		p.OverallNarrative)

	require.Len(t, p.WarehouseSummaries, 3)
	names := []string{p.WarehouseSummaries[0].WarehouseName, p.WarehouseSummaries[1].WarehouseName, p.WarehouseSummaries[2].WarehouseName}
	assert.Equal(t, []string{"Main Warehouse", "Secondary Warehouse", "West Coast Hub"}, names)

	sum := decimal.Zero
	for _, s := range p.WarehouseSummaries {
		sum = sum.Add(s.TotalProfit)
	}
	assert.True(t, sum.Equal(p.TotalProfit))
}

func TestAggregateSeries_SampleWeek(t *testing.T) {
	p, err := core.AggregateSeries(core.SampleWeek())
	require.NoError(t, err)

	ws, ok := p.Warehouse("West Coast Hub")
	require.True(t, ok)
	assert.True(t, ws.TotalProfit.Equal(decimal.NewFromInt(12500)))
	assert.True(t, p.TotalProfit.Equal(decimal.NewFromInt(27885)))
	assert.Equal(t, "West Coast Hub", p.BestPerformingWarehouse)
	assert.Equal(t, "Secondary Warehouse", p.LowestPerformingWarehouse)
}

func TestAggregateSeries_TiesAndSigns(t *testing.T) {
	t.Run("equal totals pick the first warehouse both ways", func(t *testing.T) {
		p, err := core.AggregateSeries([]core.WarehouseSeries{
			series("A", day("Mon", "10")),
			series("B", day("Mon", "10")),
		})
		require.NoError(t, err)
		assert.Equal(t, "A", p.BestPerformingWarehouse)
		assert.Equal(t, "A", p.LowestPerformingWarehouse)
	})

	t.Run("single warehouse is best and lowest", func(t *testing.T) {
		p, err := core.AggregateSeries([]core.WarehouseSeries{mainWarehouse()})
		require.NoError(t, err)
		assert.Equal(t, "Main Warehouse", p.BestPerformingWarehouse)
		assert.Equal(t, "Main Warehouse", p.LowestPerformingWarehouse)
	})

	t.Run("negative total is reported as a loss", func(t *testing.T) {
		p, err := core.AggregateSeries([]core.WarehouseSeries{
			series("A", day("Mon", "-300")),
			series("B", day("Mon", "100")),
		})
		require.NoError(t, err)
		assert.Contains(t, p.OverallNarrative, "recorded a loss this week, with a total profit of -$200.00")
		assert.NotContains(t, p.OverallNarrative, "performed well")
	})

	t.Run("zero total breaks even", func(t *testing.T) {
		p, err := core.AggregateSeries([]core.WarehouseSeries{
			series("A", day("Mon", "-100")),
			series("B", day("Mon", "100")),
		})
		require.NoError(t, err)
		assert.Contains(t, p.OverallNarrative, "broke even this week, with a total profit of $0.00")
	})
}

func TestAggregateSeries_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		list    []core.WarehouseSeries
		wantErr error
	}{
		{"nil list", nil, core.ErrEmptyPortfolio},
		{"empty list", []core.WarehouseSeries{}, core.ErrEmptyPortfolio},
		{"one empty warehouse fails the whole report", []core.WarehouseSeries{mainWarehouse(), series("Empty")}, core.ErrEmptySeries},
		{"duplicate warehouse", []core.WarehouseSeries{mainWarehouse(), mainWarehouse()}, core.ErrDuplicateWarehouse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := core.AggregateSeries(tc.list)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, p)
		})
	}
}

func TestAggregateSeries_Idempotent(t *testing.T) {
	first, err := core.AggregateSeries(scenarioPortfolio())
	require.NoError(t, err)
	second, err := core.AggregateSeries(scenarioPortfolio())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestPortfolioSummary_JSON(t *testing.T) {
	p, err := core.AggregateSeries([]core.WarehouseSeries{mainWarehouse()})
	require.NoError(t, err)

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, float64(9835), got["totalProfit"])
	assert.Equal(t, "Main Warehouse", got["bestPerformingWarehouse"])
	assert.Equal(t, "local", got["narrativeSource"])

	summaries, ok := got["warehouseSummaries"].([]any)
	require.True(t, ok)
	require.Len(t, summaries, 1)
	first := summaries[0].(map[string]any)
	assert.Equal(t, float64(9835), first["totalProfit"])
	assert.Equal(t, map[string]any{"day": "Sunday", "profit": float64(3200)}, first["bestDay"])
	assert.NotEmpty(t, first["summary"])
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9835", "$9835.00"},
		{"-500", "-$500.00"},
		{"0", "$0.00"},
		{"1234567.891", "$1234567.89"},
		{"-0.004", "$0.00"},
		{"0.005", "$0.01"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, core.FormatCurrency(decimal.RequireFromString(tc.in)), tc.in)
	}
}
