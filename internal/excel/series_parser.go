// Package excel imports warehouse profit series from spreadsheets.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"stockmaster/internal/core"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var headerAliases = map[string]string{
	"day":          "day",
	"label":        "day",
	"date":         "day",
	"period":       "day",
	"weekday":      "day",
	"profit":       "profit",
	"profit loss":  "profit",
	"profit/loss":  "profit",
	"p&l":          "profit",
	"pnl":          "profit",
	"net":          "profit",
	"amount":       "profit",
	"daily profit": "profit",
}

// ParseSeries reads one warehouse per sheet. The sheet name is the warehouse
// name; the first row is a header with a day column and a profit column.
// Sheets without any rows are skipped so a workbook can carry notes tabs.
func ParseSeries(reader io.Reader) ([]core.WarehouseSeries, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	var out []core.WarehouseSeries
	for _, sheet := range sheets {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		series, err := parseSheet(strings.TrimSpace(sheet), rows)
		if err != nil {
			return nil, err
		}
		out = append(out, series)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("excel file has no data: %w", core.ErrEmptyPortfolio)
	}
	return out, nil
}

func parseSheet(name string, rows [][]string) (core.WarehouseSeries, error) {
	colMap := mapColumns(rows[0])
	for _, required := range []string{"day", "profit"} {
		if _, ok := colMap[required]; !ok {
			return core.WarehouseSeries{}, fmt.Errorf("sheet %q: missing required column: %s", name, required)
		}
	}

	series := core.WarehouseSeries{WarehouseName: name}
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		label := strings.TrimSpace(readCell(cells, colMap["day"]))
		rawProfit := strings.TrimSpace(readCell(cells, colMap["profit"]))
		if label == "" && rawProfit == "" {
			continue
		}
		if label == "" {
			return core.WarehouseSeries{}, fmt.Errorf("sheet %q row %d: %w: missing day", name, index+1, core.ErrInvalidSeries)
		}

		profit, err := parseAmount(rawProfit)
		if err != nil {
			return core.WarehouseSeries{}, fmt.Errorf("sheet %q row %d invalid profit: %w", name, index+1, err)
		}
		series.Entries = append(series.Entries, core.DailyEntry{Label: label, Profit: profit})
	}
	return series, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\uFEFF")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseAmount accepts plain numbers and the usual accounting renderings:
// "$1,860.00", "-$305", "(305.00)".
func parseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Zero, errors.New("value is empty")
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = strings.TrimSuffix(strings.TrimPrefix(value, "("), ")")
	}
	value = strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", raw)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
