package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultProviderTimeout bounds a single narrative provider call.
const DefaultProviderTimeout = 15 * time.Second

// FinancialReporter aggregates warehouse series and, when a NarrativeProvider
// is configured, replaces the template narratives with provider text.
// Figures always come from local aggregation.
type FinancialReporter struct {
	provider  NarrativeProvider
	timeout   time.Duration
	templates NarrativeTemplates
	logger    zerolog.Logger
}

// ReporterOption configures a FinancialReporter.
type ReporterOption func(*FinancialReporter)

// WithNarrativeProvider sets the provider consulted for narrative text.
// A nil provider keeps the reporter on local templates.
func WithNarrativeProvider(p NarrativeProvider) ReporterOption {
	return func(r *FinancialReporter) { r.provider = p }
}

// WithProviderTimeout overrides DefaultProviderTimeout. Non-positive values are ignored.
func WithProviderTimeout(d time.Duration) ReporterOption {
	return func(r *FinancialReporter) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithNarrativeTemplates replaces the local templates. Nil functions keep the defaults.
func WithNarrativeTemplates(t NarrativeTemplates) ReporterOption {
	return func(r *FinancialReporter) {
		if t.Warehouse != nil {
			r.templates.Warehouse = t.Warehouse
		}
		if t.Overall != nil {
			r.templates.Overall = t.Overall
		}
	}
}

// WithLogger sets the logger used for provider fallbacks.
func WithLogger(l zerolog.Logger) ReporterOption {
	return func(r *FinancialReporter) { r.logger = l }
}

func NewFinancialReporter(opts ...ReporterOption) *FinancialReporter {
	r := &FinancialReporter{
		timeout:   DefaultProviderTimeout,
		templates: DefaultNarrativeTemplates(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasProvider reports whether narratives may come from a provider.
func (r *FinancialReporter) HasProvider() bool {
	return r.provider != nil
}

// Aggregate builds the portfolio summary for seriesList. Validation errors are
// returned unchanged. Provider failures never are: the local narratives are
// kept and the failure is logged. The only other error is the caller's own
// context error when ctx ends before the report is complete.
func (r *FinancialReporter) Aggregate(ctx context.Context, seriesList []WarehouseSeries) (*PortfolioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, err := aggregate(seriesList, r.templates)
	if err != nil {
		return nil, err
	}
	if r.provider == nil {
		return summary, nil
	}

	resp, err := r.generate(ctx, NarrativeRequest{Series: SeriesPayload(seriesList)})
	if err == nil {
		resp.Normalize()
		err = resp.Validate(summary)
	}
	if err != nil {
		// The caller went away; there is nobody to fall back for.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Warn().Err(err).
			Int("warehouses", len(seriesList)).
			Msg("narrative provider failed, using local summary")
		return summary, nil
	}

	applyNarrative(summary, resp)
	return summary, nil
}

// Summarize builds the summary of a single warehouse, consulting the provider
// the same way Aggregate does.
func (r *FinancialReporter) Summarize(ctx context.Context, series WarehouseSeries) (WarehouseSummary, error) {
	if err := ValidateSeries(series); err != nil {
		return WarehouseSummary{}, err
	}
	p, err := r.Aggregate(ctx, []WarehouseSeries{series})
	if err != nil {
		return WarehouseSummary{}, err
	}
	return p.WarehouseSummaries[0], nil
}

// generate runs one provider call under the provider timeout. The call runs
// in its own goroutine so a provider that ignores its context still cannot
// hold the report past the deadline.
func (r *FinancialReporter) generate(ctx context.Context, req NarrativeRequest) (*NarrativeResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		resp *NarrativeResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := r.provider.GenerateSummary(callCtx, req)
		done <- result{resp: resp, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && res.resp == nil {
			return nil, ErrInvalidProviderResponse
		}
		return res.resp, res.err
	case <-callCtx.Done():
		return nil, callCtx.Err()
	}
}

func applyNarrative(summary *PortfolioSummary, resp *NarrativeResponse) {
	summary.OverallNarrative = resp.OverallSummary
	summary.NarrativeSource = NarrativeProvided
	for i := range summary.WarehouseSummaries {
		ws := &summary.WarehouseSummaries[i]
		ws.Narrative = resp.narrativeFor(ws.WarehouseName)
		ws.NarrativeSource = NarrativeProvided
	}
}
