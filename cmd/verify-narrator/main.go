// verify-narrator sends the sample week to the configured narrative provider
// once and checks the reply against the local aggregation.
//
// Usage: go run ./cmd/verify-narrator [-config stockmaster.toml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"stockmaster/internal/ai"
	"stockmaster/internal/config"
	"stockmaster/internal/core"
	"stockmaster/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to stockmaster.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Narrative.Timeout)
	defer cancel()

	provider, err := ai.NewNarrator(ctx, cfg.Narrative, logger)
	if err != nil {
		log.Fatalf("narrator: %v", err)
	}
	if provider == nil {
		log.Fatal("narrative.provider is none; nothing to verify")
	}

	series := core.SampleWeek()
	local, err := core.AggregateSeries(series)
	if err != nil {
		log.Fatalf("aggregate: %v", err)
	}

	fmt.Printf("PROVIDER: %s\n", cfg.Narrative.Provider)
	resp, err := provider.GenerateSummary(ctx, core.NarrativeRequest{Series: series})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	resp.Normalize()
	if err := resp.Validate(local); err != nil {
		log.Fatalf("reply rejected: %v", err)
	}

	fmt.Printf("\n--- NARRATIVE ---\n")
	fmt.Printf("Overall: %s\n", resp.OverallSummary)
	for _, ws := range resp.WarehouseSummaries {
		fmt.Printf("- %s: %s\n", ws.WarehouseName, ws.Summary)
	}
}
