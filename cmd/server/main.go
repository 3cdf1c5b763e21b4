// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/churnscope/churnscope/internal/api"
	"github.com/churnscope/churnscope/internal/batch"
	"github.com/churnscope/churnscope/internal/churn/pipeline"
	"github.com/churnscope/churnscope/internal/config"
	"github.com/churnscope/churnscope/internal/history"
	"github.com/churnscope/churnscope/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config errors surface through the default logger since the
		// configured one is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Churnscope")

	// Model artifacts. A missing bundle is fatal only when the deployment
	// marks the model as required; otherwise the service starts unloaded
	// and reports not-ready until artifacts appear on a restart.
	pipe := pipeline.New(nil)
	artifacts, err := pipeline.LoadArtifacts(cfg.Model.ArtifactPath)
	switch {
	case err == nil:
		pipe = pipeline.New(artifacts)
		logging.Info().
			Str("path", cfg.Model.ArtifactPath).
			Str("explain_strategy", pipe.ExplainStrategy()).
			Int("features", len(artifacts.FeatureOrder)).
			Msg("Model artifacts loaded")
	case cfg.Model.Required:
		logging.Fatal().Err(err).Str("path", cfg.Model.ArtifactPath).Msg("Failed to load required model artifacts")
	default:
		logging.Warn().Err(err).Str("path", cfg.Model.ArtifactPath).Msg("Model artifacts unavailable, starting unloaded")
	}

	// Prediction history, optional.
	var store *history.Store
	if cfg.History.Enabled {
		opts := badger.DefaultOptions(cfg.History.Path)
		opts.Logger = nil
		db, err := badger.Open(opts)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.History.Path).Msg("Failed to open history database")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing history database")
			}
		}()
		store = history.NewStore(db)
		logging.Info().Str("path", cfg.History.Path).Msg("Prediction history enabled")
	} else {
		logging.Info().Msg("Prediction history disabled")
	}

	processor := batch.NewProcessor(pipe,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithRateLimit(cfg.Batch.RatePerSecond, cfg.Batch.RateBurst),
	)

	handler := api.NewHandler(api.HandlerConfig{
		Pipeline:        pipe,
		Store:           store,
		Processor:       processor,
		HistoryLimit:    cfg.History.ListLimit,
		MaxBatchRecords: cfg.Batch.MaxRecords,
	})

	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		RateLimitRequests:  cfg.API.RateLimitReqs,
		RateLimitWindow:    cfg.API.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Churnscope stopped")
}
