// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

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

	_ "github.com/tomtom215/toolrank/docs" // Import generated swagger docs
	"github.com/tomtom215/toolrank/internal/api"
	"github.com/tomtom215/toolrank/internal/config"
	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/metrics"
	"github.com/tomtom215/toolrank/internal/middleware"
	"github.com/tomtom215/toolrank/internal/supervisor"
	"github.com/tomtom215/toolrank/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout = 10 * time.Second

	perfMaxSamples    = 1000
	perfSlowThreshold = time.Second
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Async:     cfg.Logging.Async,
		OnDropped: metrics.RecordLogDrops,
	})

	err = run(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Toolrank stopped with error")
	}
	// Flush the async writer before exiting.
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Bool("async_logging", cfg.Logging.Async).
		Msg("Starting Toolrank with supervisor tree")
	metrics.SetAppInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := initStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize behavior store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("driver", store.DB.Driver()).Msg("Behavior store initialized")

	logger := logging.WithComponent("recommend")
	rec, err := initRecommend(cfg, store.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize recommendation engine: %w", err)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()

	perf := middleware.NewPerformanceMonitor(perfMaxSamples, perfSlowThreshold)
	health := api.NewHealthHandler(store.DB, rec.Engine, version).
		WithSnapshot(rec.Set.Popularity).
		WithPerformance(perf)
	if store.Breaker != nil {
		health.WithBreaker(store.Breaker)
	}
	router := api.NewRouter(
		api.NewRecommendHandler(rec.Engine),
		health,
		api.NewChiMiddlewareFromConfig(&cfg.Security),
		perf,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	addWarmup(cfg, rec, tree, logging.WithComponent("warmup"))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
