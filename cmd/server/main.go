// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package main is the entry point for the Pick recommendation server.
//
// # Application Architecture
//
// The server wires its components together in a fixed order:
//
//  1. Configuration loading (koanf: defaults, YAML file, environment)
//  2. Logging initialization (zerolog, JSON or console format)
//  3. Catalog store creation and initial dataset load
//  4. Recommendation picker construction
//  5. HTTP router assembly (chi with CORS, rate limiting, metrics)
//  6. HTTP server startup with periodic dataset reloads
//
// # Configuration
//
// Configuration follows a layered model where each layer overrides the
// previous one: struct defaults, then an optional YAML file (CONFIG_PATH
// or one of the well-known locations), then environment variables such
// as HTTP_PORT, LOG_LEVEL and DATASET_PATH.
//
// # Dataset Handling
//
// The catalog is a flat JSON file produced by the ingest binary. A
// missing or unreadable file at startup is not fatal: the server comes
// up degraded and keeps retrying on the reload interval, so a fresh
// ingest run is picked up without a restart.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM. In-flight
// requests get Server.ShutdownTimeout to complete before the listener
// is torn down.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashlight2510/pick/internal/api"
	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/config"
	"github.com/ashlight2510/pick/internal/logging"
	"github.com/ashlight2510/pick/internal/metrics"
	"github.com/ashlight2510/pick/internal/recommend"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("dataset_path", cfg.Dataset.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Pick recommendation server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := catalog.NewStore(&catalog.FileSource{
		Path:     cfg.Dataset.Path,
		Fallback: cfg.Dataset.FallbackPath,
	})

	// Initial load is tolerated failing: the server starts degraded and
	// the reload loop keeps retrying until a dataset appears.
	result := store.Load(ctx)
	metrics.RecordDatasetLoad(string(result.Status), result.Count, store.GeneratedAt())
	switch result.Status {
	case catalog.StatusLoaded:
		logging.Info().
			Int("titles", result.Count).
			Time("generated_at", store.GeneratedAt()).
			Msg("Catalog loaded")
	case catalog.StatusEmpty:
		logging.Warn().Msg("Catalog file contains no titles")
	default:
		logging.Warn().Err(result.Err).Msg("Catalog unavailable, serving degraded until next reload")
	}

	picker, err := recommend.NewPicker(&cfg.Recommend, logging.Logger(), nil)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation configuration")
	}

	handlers := api.NewHandlers(store, picker, &api.HandlerConfig{
		PageSize:    cfg.API.PageSize,
		MaxPageSize: cfg.API.MaxPageSize,
	})
	router := api.NewRouter(handlers, &api.RouterConfig{
		Middleware: &api.MiddlewareConfig{
			CORSAllowedOrigins: cfg.API.CORSOrigins,
			CORSMaxAge:         86400,
			RateLimitRequests:  cfg.API.RateLimit,
			RateLimitWindow:    cfg.API.RateLimitWindow,
		},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.Dataset.ReloadInterval > 0 {
		go reloadLoop(ctx, store, cfg.Dataset.ReloadInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, closing listener")
		_ = server.Close()
	}

	logging.Info().Msg("Server stopped gracefully")
}

// reloadLoop re-reads the dataset file on a fixed interval so freshly
// ingested catalogs are picked up without restarting the server.
func reloadLoop(ctx context.Context, store *catalog.Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := store.Load(ctx)
			metrics.RecordDatasetLoad(string(result.Status), result.Count, store.GeneratedAt())
			if result.Status == catalog.StatusUnavailable {
				logging.Warn().Err(result.Err).Msg("Periodic catalog reload failed")
				continue
			}
			logging.Debug().
				Int("titles", result.Count).
				Str("status", string(result.Status)).
				Msg("Catalog reloaded")
		}
	}
}
