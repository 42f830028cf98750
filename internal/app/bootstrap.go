package app

import (
	"context"
	"fmt"

	"stockmaster/internal/ai"
	"stockmaster/internal/config"
	"stockmaster/internal/core"
	"stockmaster/internal/db"
	"stockmaster/internal/store"

	"github.com/rs/zerolog"
)

// Build wires an ApplicationService from cfg. The returned cleanup releases
// the database pool, if one was opened, and must be called once.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ApplicationService, func(), error) {
	cleanup := func() {}

	var source core.SeriesSource
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("database: %w", err)
		}
		cleanup = pool.Close
		source = core.NewPostgresSeriesSource(pool)
	default:
		source = core.NewSampleSeriesSource()
	}

	provider, err := ai.NewNarrator(ctx, cfg.Narrative, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("narrative provider: %w", err)
	}

	reporter := core.NewFinancialReporter(
		core.WithNarrativeProvider(provider),
		core.WithProviderTimeout(cfg.Narrative.Timeout),
		core.WithLogger(logger),
	)
	if reporter.HasProvider() {
		logger.Info().Str("provider", cfg.Narrative.Provider).Dur("timeout", cfg.Narrative.Timeout).Msg("narrative provider enabled")
	} else {
		logger.Info().Msg("no narrative provider configured, using local narratives")
	}

	prefs, err := openPreferences(cfg.Preferences.Path)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	inventory := core.NewInventoryService(store.NewInventoryRepositories())
	if err := inventory.Seed(ctx); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("seed inventory: %w", err)
	}

	return NewAppService(source, reporter, inventory, prefs, logger), cleanup, nil
}

func openPreferences(path string) (*store.Preferences, error) {
	if path == "" {
		return store.NewMemoryPreferences(), nil
	}
	prefs, err := store.OpenFilePreferences(path)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return prefs, nil
}
