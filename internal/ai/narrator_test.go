package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockmaster/internal/config"
	"stockmaster/internal/core"

	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func sampleRequest() core.NarrativeRequest {
	return core.NarrativeRequest{Series: core.SeriesPayload{
		{WarehouseName: "Main Warehouse", Entries: []core.DailyEntry{
			{Label: "Monday", Profit: decimal.NewFromInt(1860)},
			{Label: "Tuesday", Profit: decimal.NewFromInt(-305)},
		}},
		{WarehouseName: "Annex", Entries: []core.DailyEntry{
			{Label: "Monday", Profit: decimal.NewFromInt(10)},
		}},
	}}
}

const validNarrative = `{
	"overallSummary": "Solid week.",
	"totalProfit": 1565,
	"bestPerformingWarehouse": "Main Warehouse",
	"lowestPerformingWarehouse": "Annex",
	"warehouseSummaries": [
		{"warehouseName": "Main Warehouse", "totalProfit": 1555, "summary": "Monday led."},
		{"warehouseName": "Annex", "totalProfit": 10, "summary": "Quiet."}
	]
}`

func TestBuildNarrativePrompt(t *testing.T) {
	prompt, err := buildNarrativePrompt(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, prompt, `"Main Warehouse": [`)
	assert.Contains(t, prompt, `"profit": -305`)
	assert.Less(t, strings.Index(prompt, "Main Warehouse"), strings.Index(prompt, "Annex"))
}

func TestDecodeNarrative(t *testing.T) {
	resp, err := decodeNarrative(validNarrative)
	require.NoError(t, err)
	assert.Equal(t, "Main Warehouse", resp.BestPerformingWarehouse)
	require.Len(t, resp.WarehouseSummaries, 2)

	fenced, err := decodeNarrative("```json\n" + validNarrative + "\n```")
	require.NoError(t, err)
	assert.Equal(t, resp, fenced)

	for _, bad := range []string{"", "   ", "not json", `{"overallSummary": "x", "mood": "happy"}`} {
		_, err := decodeNarrative(bad)
		assert.ErrorIs(t, err, core.ErrInvalidProviderResponse, bad)
	}
}

func TestNarrativeSchema(t *testing.T) {
	schema, err := narrativeSchema()
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"overallSummary", "totalProfit", "bestPerformingWarehouse", "lowestPerformingWarehouse", "warehouseSummaries"} {
		assert.Contains(t, props, key)
	}
	assert.ElementsMatch(t,
		[]any{"overallSummary", "totalProfit", "bestPerformingWarehouse", "lowestPerformingWarehouse", "warehouseSummaries"},
		schema["required"])
}

func TestOpenAINarrator_GenerateSummary(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/responses"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "resp_1",
			"object": "response",
			"status": "completed",
			"model":  "gpt-4o",
			"output": []any{map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"role":   "assistant",
				"status": "completed",
				"content": []any{map[string]any{
					"type":        "output_text",
					"text":        validNarrative,
					"annotations": []any{},
				}},
			}},
		})
	}))
	defer srv.Close()

	n := NewOpenAINarrator("test-key", "", zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	resp, err := n.GenerateSummary(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Solid week.", resp.OverallSummary)

	assert.Equal(t, "gpt-4o", gotBody["model"])
	format := gotBody["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "financial_summary", format["name"])
	assert.Equal(t, true, format["strict"])
}

func TestOpenAINarrator_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewOpenAINarrator("test-key", "gpt-4o-mini", zerolog.Nop(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := n.GenerateSummary(context.Background(), sampleRequest())
	assert.Error(t, err)
}

func TestExtractText(t *testing.T) {
	_, err := extractText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, core.ErrInvalidProviderResponse)

	text, err := extractText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: `{"a":`}, {Text: `1}`}}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestGeminiNarrativeSchema(t *testing.T) {
	s := geminiNarrativeSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Len(t, s.Required, 5)
	assert.Equal(t, genai.TypeArray, s.Properties["warehouseSummaries"].Type)
}

type stubProvider struct {
	calls int
}

func (s *stubProvider) GenerateSummary(context.Context, core.NarrativeRequest) (*core.NarrativeResponse, error) {
	s.calls++
	return &core.NarrativeResponse{OverallSummary: "ok"}, nil
}

func TestRateLimitedNarrator(t *testing.T) {
	stub := &stubProvider{}
	n := NewRateLimitedNarrator(stub, 1)

	_, err := n.GenerateSummary(context.Background(), sampleRequest())
	require.NoError(t, err)

	// The second token is a minute away; a short deadline cannot wait for it.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = n.GenerateSummary(ctx, sampleRequest())
	assert.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestNewNarrator(t *testing.T) {
	ctx := context.Background()

	p, err := NewNarrator(ctx, config.NarrativeConfig{Provider: config.ProviderNone}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewNarrator(ctx, config.NarrativeConfig{
		Provider: config.ProviderOpenAI,
		OpenAI:   config.ModelConfig{APIKey: "k"},
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &OpenAINarrator{}, p)

	p, err = NewNarrator(ctx, config.NarrativeConfig{
		Provider:      config.ProviderOpenAI,
		RatePerMinute: 10,
		OpenAI:        config.ModelConfig{APIKey: "k"},
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &RateLimitedNarrator{}, p)

	_, err = NewNarrator(ctx, config.NarrativeConfig{Provider: "llama"}, zerolog.Nop())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrInvalidProviderResponse))
}
