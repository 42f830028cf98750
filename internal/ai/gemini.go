package ai

import (
	"context"
	"fmt"
	"strings"

	"stockmaster/internal/core"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiNarrator asks Gemini for a JSON financial summary.
type GeminiNarrator struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiNarrator creates a narrator using the Gemini API backend.
func NewGeminiNarrator(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiNarrator{client: client, model: model, logger: logger}, nil
}

func (n *GeminiNarrator) GenerateSummary(ctx context.Context, req core.NarrativeRequest) (*core.NarrativeResponse, error) {
	prompt, err := buildNarrativePrompt(req)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiNarrativeSchema(),
	}

	n.logger.Debug().Str("model", n.model).Int("warehouses", len(req.Series)).Msg("requesting narrative")
	result, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractText(result)
	if err != nil {
		return nil, err
	}
	return decodeNarrative(text)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated", core.ErrInvalidProviderResponse)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func geminiNarrativeSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	num := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Description: desc}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overallSummary":            str("Summary of the whole business for the period"),
			"totalProfit":               num("Sum of all warehouse totals"),
			"bestPerformingWarehouse":   str("Warehouse with the highest total profit"),
			"lowestPerformingWarehouse": str("Warehouse with the lowest total profit"),
			"warehouseSummaries": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"warehouseName": str("Name of the warehouse exactly as given"),
						"totalProfit":   num("Sum of the warehouse's daily profit values"),
						"summary":       str("Summary of the warehouse's week"),
					},
					Required:         []string{"warehouseName", "totalProfit", "summary"},
					PropertyOrdering: []string{"warehouseName", "totalProfit", "summary"},
				},
			},
		},
		Required: []string{"overallSummary", "totalProfit", "bestPerformingWarehouse", "lowestPerformingWarehouse", "warehouseSummaries"},
		PropertyOrdering: []string{
			"overallSummary", "totalProfit", "bestPerformingWarehouse", "lowestPerformingWarehouse", "warehouseSummaries",
		},
	}
}
