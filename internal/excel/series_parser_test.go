package excel

import (
	"bytes"
	"testing"

	"stockmaster/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an xlsx with one sheet per entry of sheets, in order.
func workbook(t *testing.T, sheets []string, rows map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseSeries(t *testing.T) {
	buf := workbook(t, []string{"Main Warehouse", "Notes", "West Coast Hub"}, map[string][][]any{
		"Main Warehouse": {
			{"Day", "Profit"},
			{"Monday", 1860},
			{"Tuesday", -305},
			{"", ""},
			{"Wednesday", "$2,370.50"},
		},
		"West Coast Hub": {
			{"Notes", "Weekday", "Profit_Loss"},
			{"opening week", "Monday", "(500)"},
			{"", "Tuesday", 1800},
		},
	})

	got, err := ParseSeries(buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Main Warehouse", got[0].WarehouseName)
	require.Len(t, got[0].Entries, 3)
	assert.Equal(t, "Tuesday", got[0].Entries[1].Label)
	assert.True(t, got[0].Entries[1].Profit.Equal(decimal.NewFromInt(-305)))
	assert.True(t, got[0].Entries[2].Profit.Equal(decimal.RequireFromString("2370.50")))

	assert.Equal(t, "West Coast Hub", got[1].WarehouseName)
	assert.True(t, got[1].Entries[0].Profit.Equal(decimal.NewFromInt(-500)))

	p, err := core.AggregateSeries(got)
	require.NoError(t, err)
	assert.Equal(t, "Main Warehouse", p.BestPerformingWarehouse)
}

func TestParseSeries_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"missing profit column", [][]any{{"Day", "Revenue"}, {"Monday", 1}}},
		{"bad amount", [][]any{{"Day", "Profit"}, {"Monday", "lots"}}},
		{"profit without day", [][]any{{"Day", "Profit"}, {"", 10}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := workbook(t, []string{"Main"}, map[string][][]any{"Main": tc.rows})
			_, err := ParseSeries(buf)
			assert.Error(t, err)
		})
	}

	_, err := ParseSeries(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)

	empty := workbook(t, []string{"Blank"}, nil)
	_, err = ParseSeries(empty)
	assert.ErrorIs(t, err, core.ErrEmptyPortfolio)
}

func TestParseSeries_HeaderOnlySheetIsEmptySeries(t *testing.T) {
	buf := workbook(t, []string{"Main"}, map[string][][]any{"Main": {{"Day", "Profit"}}})
	got, err := ParseSeries(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = core.AggregateSeries(got)
	assert.ErrorIs(t, err, core.ErrEmptySeries)
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"1860":      "1860",
		"-305":      "-305",
		"$1,234.56": "1234.56",
		"-$500.00":  "-500",
		"(42.10)":   "-42.1",
	}
	for in, want := range tests {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}
}
