package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"stockmaster/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/rs/zerolog"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o"

// OpenAINarrator asks the OpenAI Responses API for a structured financial summary.
type OpenAINarrator struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAINarrator creates a narrator for apiKey. Extra request options are
// passed to the client (base URL, HTTP client, retries).
func NewOpenAINarrator(apiKey, model string, logger zerolog.Logger, opts ...option.RequestOption) *OpenAINarrator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAINarrator{client: &client, model: model, logger: logger}
}

func (n *OpenAINarrator) GenerateSummary(ctx context.Context, req core.NarrativeRequest) (*core.NarrativeResponse, error) {
	prompt, err := buildNarrativePrompt(req)
	if err != nil {
		return nil, err
	}

	schemaMap, err := narrativeSchema()
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(n.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "financial_summary",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Weekly profit and loss summary for a multi-warehouse business"),
				},
			},
		},
	}

	n.logger.Debug().Str("model", n.model).Int("warehouses", len(req.Series)).Msg("requesting narrative")
	resp, err := n.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	return decodeNarrative(resp.OutputText())
}

// narrativeSchema reflects core.NarrativeResponse into the map form the
// Responses API expects.
func narrativeSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(&core.NarrativeResponse{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
