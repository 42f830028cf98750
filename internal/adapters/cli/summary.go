package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"stockmaster/internal/app"
	"stockmaster/internal/chart"
	"stockmaster/internal/core"
	"stockmaster/internal/excel"

	"github.com/spf13/cobra"
)

type summaryCmd struct {
	root   *rootOptions
	input  string
	xlsx   string
	period string
	format string
	chart  string
}

func newSummaryCmd(root *rootOptions) *cobra.Command {
	sc := &summaryCmd{root: root}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate warehouse profits into a financial summary",
		RunE:  sc.run,
	}
	cmd.Flags().StringVar(&sc.input, "input", "", "JSON file of {warehouse: [{day, profit}]}")
	cmd.Flags().StringVar(&sc.xlsx, "xlsx", "", "Excel workbook with one sheet per warehouse")
	cmd.Flags().StringVar(&sc.period, "period", "", "Period to load from the configured source (default this-week)")
	cmd.Flags().StringVar(&sc.format, "format", "table", "Output format: table or json")
	cmd.Flags().StringVar(&sc.chart, "chart", "", "Also write a PNG bar chart of warehouse totals to this path")
	cmd.MarkFlagsMutuallyExclusive("input", "xlsx", "period")
	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	if sc.format != "table" && sc.format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", sc.format)
	}

	cfg, logger, err := sc.root.load(cmd)
	if err != nil {
		return err
	}
	svc, cleanup, err := sc.root.build(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := sc.summarize(cmd, svc)
	if err != nil {
		return err
	}

	if sc.chart != "" {
		png, err := chart.RenderWarehouseTotals(result.Summary)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		if err := os.WriteFile(sc.chart, png, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if sc.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Summary)
	}
	printSummary(out, result)
	return nil
}

func (sc *summaryCmd) summarize(cmd *cobra.Command, svc app.ApplicationService) (*app.FinancialSummaryResult, error) {
	ctx := cmd.Context()
	if sc.input != "" || sc.xlsx != "" {
		series, err := readSeriesFile(sc.input, sc.xlsx)
		if err != nil {
			return nil, err
		}
		return svc.SummarizePortfolio(ctx, series)
	}

	result, err := svc.GetFinancialSummary(ctx, sc.period)
	if errors.Is(err, core.ErrPeriodNotFound) {
		return nil, fmt.Errorf("no data for period %q", sc.period)
	}
	return result, err
}

// readSeriesFile reads series from a JSON file or, when jsonPath is empty,
// an Excel workbook.
func readSeriesFile(jsonPath, xlsxPath string) ([]core.WarehouseSeries, error) {
	if jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		var payload core.SeriesPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s: %w", jsonPath, err)
		}
		return payload, nil
	}

	f, err := os.Open(xlsxPath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return excel.ParseSeries(f)
}
