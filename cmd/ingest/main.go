// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package main is the catalog ingest job. It walks the TMDB discover
// endpoints for movies and series, enriches each title with runtimes,
// streaming providers and cast, normalizes the result into the catalog
// schema and writes the dataset file the server reads at startup.
//
// The job is designed to run from cron or CI. It exits non-zero only
// when nothing at all could be collected; partial upstream failures are
// logged and skipped so one flaky title does not lose a whole run.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashlight2510/pick/internal/config"
	"github.com/ashlight2510/pick/internal/ingest"
	"github.com/ashlight2510/pick/internal/logging"
	"github.com/ashlight2510/pick/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if cfg.TMDB.APIKey == "" {
		logging.Fatal().Msg("TMDB_API_KEY is required for ingest")
	}

	client, err := tmdb.NewClient(&cfg.TMDB)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid TMDB configuration")
	}

	builder, err := ingest.NewBuilder(tmdb.NewCircuitBreakerClient(client), &cfg.Ingest)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid ingest configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logging.Info().
		Int("pages_per_type", cfg.Ingest.PagesPerType).
		Strs("output_paths", cfg.Ingest.OutputPaths).
		Msg("Starting catalog ingest")

	dataset, err := builder.Build(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Catalog ingest failed")
		os.Exit(1)
	}

	if err := ingest.WriteDataset(dataset, cfg.Ingest.OutputPaths); err != nil {
		logging.Error().Err(err).Msg("Failed to write dataset")
		os.Exit(1)
	}

	logging.Info().
		Int("titles", len(dataset.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog ingest complete")
}
