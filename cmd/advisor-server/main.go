package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cloudsaver/billing-advisor/pkg/analyzer"
	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/server"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	cfg := config.NewConfig()
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set; findings will use fallback explanations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(analyzer.New(cfg), cfg)
	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
