// Package ai implements core.NarrativeProvider on top of hosted language
// models.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stockmaster/internal/config"
	"stockmaster/internal/core"

	"github.com/rs/zerolog"
)

// NewNarrator builds the provider selected by cfg.Provider, wrapped in a rate
// limiter when cfg.RatePerMinute is positive. It returns nil for "none".
func NewNarrator(ctx context.Context, cfg config.NarrativeConfig, logger zerolog.Logger) (core.NarrativeProvider, error) {
	var p core.NarrativeProvider
	switch cfg.Provider {
	case "", config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI:
		p = NewOpenAINarrator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	case config.ProviderGemini:
		g, err := NewGeminiNarrator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			return nil, err
		}
		p = g
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", cfg.Provider)
	}

	if cfg.RatePerMinute > 0 {
		p = NewRateLimitedNarrator(p, cfg.RatePerMinute)
	}
	return p, nil
}

func buildNarrativePrompt(req core.NarrativeRequest) (string, error) {
	data, err := json.MarshalIndent(req.Series, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode series: %w", err)
	}

	return fmt.Sprintf(`You are a financial analyst.
Summarize the weekly profit and loss of a multi-warehouse business.
The data is a JSON object: keys are warehouse names, values are the daily profit/loss entries in order.

Data:
%s

Rules:
1. Write an overall summary of the business's performance (3-4 sentences).
2. Report the total combined profit across all warehouses, exactly.
3. Name the best and the lowest performing warehouse by total profit, spelled exactly as in the data.
4. For every warehouse give its exact total profit and a 2-3 sentence summary noting its best and worst days.
5. Do not invent warehouses and do not skip any.`, data), nil
}

// decodeNarrative parses a model's JSON output. Code fences around the JSON
// are tolerated; unknown fields are not.
func decodeNarrative(content string) (*core.NarrativeResponse, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response content", core.ErrInvalidProviderResponse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.DisallowUnknownFields()

	var resp core.NarrativeResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidProviderResponse, err)
	}
	return &resp, nil
}
