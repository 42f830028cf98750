package cli

import (
	"errors"
	"fmt"

	"stockmaster/internal/core"
	"stockmaster/internal/db"
	"stockmaster/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newDBCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the daily_profit database",
	}

	connect := func(cmd *cobra.Command) (*pgxpool.Pool, error) {
		cfg, _, err := root.load(cmd)
		if err != nil {
			return nil, err
		}
		if cfg.Database.URL == "" {
			return nil, errors.New("database.url (or DATABASE_URL) is not set")
		}
		return db.NewPool(cmd.Context(), cfg.Database.URL)
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			pool, err := connect(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := db.Migrate(cmd.Context(), pool, migrations.FS, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", len(applied))
			return nil
		},
	}

	seed := &seedCmd{}
	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Replace one period of daily_profit with the sample week or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			series, err := seed.series()
			if err != nil {
				return err
			}
			pool, err := connect(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.SeedSeries(cmd.Context(), pool, seed.period, series); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d warehouse(s)\n", len(series))
			return nil
		},
	}
	seedCommand.Flags().StringVar(&seed.period, "period", core.DefaultPeriod, "Period to replace")
	seedCommand.Flags().StringVar(&seed.input, "input", "", "JSON file of {warehouse: [{day, profit}]} (default: sample week)")
	seedCommand.Flags().StringVar(&seed.xlsx, "xlsx", "", "Excel workbook with one sheet per warehouse")
	seedCommand.MarkFlagsMutuallyExclusive("input", "xlsx")

	cmd.AddCommand(migrate, seedCommand)
	return cmd
}

type seedCmd struct {
	period string
	input  string
	xlsx   string
}

func (s *seedCmd) series() ([]core.WarehouseSeries, error) {
	if s.input == "" && s.xlsx == "" {
		return core.SampleWeek(), nil
	}
	return readSeriesFile(s.input, s.xlsx)
}
