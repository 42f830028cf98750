package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	webAdapter "stockmaster/internal/adapters/web"
	"stockmaster/internal/app"
	"stockmaster/internal/config"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer cleanup()

	handler := webAdapter.NewHandler(svc, logger, cfg.Server.Origins())
	if err := webAdapter.NewServer(cfg.Server.Addr(), handler, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped")
	}
}
