package app

import (
	"time"

	"stockmaster/internal/core"
)

// FinancialSummaryResult is returned by GetFinancialSummary and SummarizePortfolio.
type FinancialSummaryResult struct {
	Period      string
	Summary     *core.PortfolioSummary
	GeneratedAt time.Time
}
