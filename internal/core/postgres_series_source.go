package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresSeriesSource reads warehouse series from the daily_profit table.
// Rows are written by the inventory system or by db.SeedSeries.
type PostgresSeriesSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSeriesSource constructs a PostgresSeriesSource backed by the given pool.
func NewPostgresSeriesSource(pool *pgxpool.Pool) *PostgresSeriesSource {
	return &PostgresSeriesSource{pool: pool}
}

func (s *PostgresSeriesSource) LoadSeries(ctx context.Context, period string) ([]WarehouseSeries, error) {
	if period == "" {
		period = DefaultPeriod
	}

	const q = `
		SELECT warehouse_name, day_label, profit
		FROM daily_profit
		WHERE period = $1
		ORDER BY warehouse_position, warehouse_name, entry_position`

	rows, err := s.pool.Query(ctx, q, period)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily profit: %w", err)
	}
	defer rows.Close()

	var out []WarehouseSeries
	for rows.Next() {
		var name, label string
		var profit decimal.Decimal
		if err := rows.Scan(&name, &label, &profit); err != nil {
			return nil, fmt.Errorf("failed to scan daily profit row: %w", err)
		}
		// Rows arrive grouped by warehouse.
		if n := len(out); n == 0 || out[n-1].WarehouseName != name {
			out = append(out, WarehouseSeries{WarehouseName: name})
		}
		last := &out[len(out)-1]
		last.Entries = append(last.Entries, DailyEntry{Label: label, Profit: profit})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily profit row iteration error: %w", err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("period %q: %w", period, ErrPeriodNotFound)
	}
	return out, nil
}
