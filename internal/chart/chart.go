// Package chart renders report summaries as PNG images.
package chart

import (
	"bytes"
	"fmt"
	"math"

	"stockmaster/internal/core"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	barWidth   = 60
	barSpacing = 40
	minWidth   = 600
	height     = 400
)

var (
	profitColor = drawing.ColorFromHex("16a34a") // green-600
	lossColor   = drawing.ColorFromHex("dc2626") // red-600
)

// RenderWarehouseTotals draws one bar per warehouse, in report order, with
// losses below the zero line. Returns raw PNG bytes.
func RenderWarehouseTotals(summary *core.PortfolioSummary) ([]byte, error) {
	if summary == nil || len(summary.WarehouseSummaries) == 0 {
		return nil, core.ErrEmptyPortfolio
	}

	bars := make([]chart.Value, 0, len(summary.WarehouseSummaries))
	lo, hi := 0.0, 0.0
	for _, ws := range summary.WarehouseSummaries {
		v := ws.TotalProfit.InexactFloat64()
		color := profitColor
		if v < 0 {
			color = lossColor
		}
		bars = append(bars, chart.Value{
			Label: ws.WarehouseName,
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		})
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		hi = 1
	}

	width := len(bars)*(barWidth+barSpacing) + 200
	if width < minWidth {
		width = minWidth
	}

	graph := chart.BarChart{
		Title:  "Weekly Profit by Warehouse",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
