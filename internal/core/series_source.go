package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultPeriod is the reporting period used when a caller names none.
const DefaultPeriod = "this-week"

// SeriesSource supplies the warehouse series of a reporting period.
type SeriesSource interface {
	LoadSeries(ctx context.Context, period string) ([]WarehouseSeries, error)
}

// SeriesPayload is the wire form of a portfolio:
//
//	{"Main Warehouse": [{"day": "Monday", "profit": 1860}, ...], ...}
//
// Decoding keeps the object's key order, which becomes the report order.
type SeriesPayload []WarehouseSeries

func (p *SeriesPayload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: series payload must be a JSON object", ErrInvalidSeries)
	}

	var out SeriesPayload
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var entries []DailyEntry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("%w: warehouse %q: %v", ErrInvalidSeries, name, err)
		}
		out = append(out, WarehouseSeries{WarehouseName: name, Entries: entries})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

func (p SeriesPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.WarehouseName)
		if err != nil {
			return nil, err
		}
		entries := s.Entries
		if entries == nil {
			entries = []DailyEntry{}
		}
		val, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StaticSeriesSource serves fixed series keyed by period. Callers receive
// copies, so mutating a result never changes later reports.
type StaticSeriesSource struct {
	periods map[string][]WarehouseSeries
}

// NewStaticSeriesSource returns a source holding the given periods.
func NewStaticSeriesSource(periods map[string][]WarehouseSeries) *StaticSeriesSource {
	return &StaticSeriesSource{periods: periods}
}

// NewSampleSeriesSource returns a source with the dashboard's sample week
// under DefaultPeriod.
func NewSampleSeriesSource() *StaticSeriesSource {
	return NewStaticSeriesSource(map[string][]WarehouseSeries{
		DefaultPeriod: SampleWeek(),
	})
}

func (s *StaticSeriesSource) LoadSeries(ctx context.Context, period string) ([]WarehouseSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if period == "" {
		period = DefaultPeriod
	}
	series, ok := s.periods[period]
	if !ok {
		return nil, fmt.Errorf("period %q: %w", period, ErrPeriodNotFound)
	}

	out := make([]WarehouseSeries, len(series))
	for i, ws := range series {
		out[i] = WarehouseSeries{
			WarehouseName: ws.WarehouseName,
			Entries:       append([]DailyEntry(nil), ws.Entries...),
		}
	}
	return out, nil
}

// SampleWeek returns the sample profit week shown on the dashboard.
func SampleWeek() []WarehouseSeries {
	return []WarehouseSeries{
		week("Main Warehouse", 1860, -305, 2370, 730, -500, 2480, 3200),
		week("Secondary Warehouse", 1200, 250, -100, 800, 1500, -200, 2100),
		week("West Coast Hub", -500, 1800, 2800, -300, 3200, 4000, 1500),
	}
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func week(name string, profits ...int64) WarehouseSeries {
	entries := make([]DailyEntry, len(profits))
	for i, p := range profits {
		entries[i] = DailyEntry{Label: weekdays[i%len(weekdays)], Profit: decimal.NewFromInt(p)}
	}
	return WarehouseSeries{WarehouseName: name, Entries: entries}
}
