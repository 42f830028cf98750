package db_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"stockmaster/internal/core"
	"stockmaster/internal/db"
	"stockmaster/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = db.Migrate(ctx, pool, migrations.FS, zerolog.Nop())
	require.NoError(t, err)
	return pool
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := setupTestDB(t)

	applied, err := db.Migrate(context.Background(), pool, migrations.FS, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrate_ChecksumMismatch(t *testing.T) {
	pool := setupTestDB(t)

	changed := fstest.MapFS{
		"001_daily_profit.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := db.Migrate(context.Background(), pool, changed, zerolog.Nop())
	assert.ErrorIs(t, err, db.ErrChecksumMismatch)
}

func TestSeedSeries_RoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SeedSeries(ctx, pool, "seed-test", core.SampleWeek()))
	// Seeding twice replaces rather than duplicates.
	require.NoError(t, db.SeedSeries(ctx, pool, "seed-test", core.SampleWeek()))

	got, err := core.NewPostgresSeriesSource(pool).LoadSeries(ctx, "seed-test")
	require.NoError(t, err)
	want := core.SampleWeek()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].WarehouseName, got[i].WarehouseName)
		require.Len(t, got[i].Entries, len(want[i].Entries))
		for j := range want[i].Entries {
			assert.Equal(t, want[i].Entries[j].Label, got[i].Entries[j].Label)
			assert.True(t, want[i].Entries[j].Profit.Equal(got[i].Entries[j].Profit))
		}
	}

	err = db.SeedSeries(ctx, pool, "seed-test", nil)
	assert.ErrorIs(t, err, core.ErrEmptyPortfolio)
}
