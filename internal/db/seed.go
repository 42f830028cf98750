package db

import (
	"context"
	"fmt"

	"stockmaster/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedSeries replaces the daily_profit rows of period with series, keeping
// warehouse and entry order. The series are validated first; nothing is
// written when they would not aggregate.
func SeedSeries(ctx context.Context, pool *pgxpool.Pool, period string, series []core.WarehouseSeries) error {
	if period == "" {
		period = core.DefaultPeriod
	}
	if err := core.ValidatePortfolio(series); err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM daily_profit WHERE period = $1", period); err != nil {
		return fmt.Errorf("clear period %q: %w", period, err)
	}

	for wi, ws := range series {
		for ei, e := range ws.Entries {
			if _, err := tx.Exec(ctx, `
				INSERT INTO daily_profit (period, warehouse_name, warehouse_position, entry_position, day_label, profit)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				period, ws.WarehouseName, wi+1, ei+1, e.Label, e.Profit,
			); err != nil {
				return fmt.Errorf("insert %s/%s: %w", ws.WarehouseName, e.Label, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
