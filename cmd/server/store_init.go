// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/toolrank/internal/config"
	"github.com/tomtom215/toolrank/internal/database"
	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/recommend"
)

// StoreComponents holds the behavior store chain.
type StoreComponents struct {
	DB *database.DB

	// Breaker is nil when the circuit breaker is disabled.
	Breaker *database.BreakerStore

	// Store is what recommenders read: SQL store, breaker, then per-call timeout.
	Store recommend.BehaviorStore
}

// Close closes the database.
func (c *StoreComponents) Close() error {
	return c.DB.Close()
}

// initStore opens the database, seeds it if configured and builds the
// store chain the engine reads through.
func initStore(ctx context.Context, cfg *config.Config) (*StoreComponents, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := seedStore(ctx, db, &cfg.Database); err != nil {
		closeDB(db)
		return nil, err
	}

	sqlStore, err := database.NewStore(db)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	components := &StoreComponents{DB: db}
	var store recommend.BehaviorStore = sqlStore
	if cfg.Breaker.Enabled {
		components.Breaker = database.NewBreakerStore(sqlStore, &cfg.Breaker, database.BehaviorStoreBreakerName)
		store = components.Breaker
		logging.Info().
			Str("breaker", components.Breaker.Name()).
			Float64("failure_ratio", cfg.Breaker.FailureRatio).
			Dur("open_timeout", cfg.Breaker.Timeout).
			Msg("Behavior store circuit breaker enabled")
	}

	// The timeout wraps the breaker so a slow call counts as a breaker failure.
	components.Store = recommend.Bounded(store, cfg.Recommend.StoreTimeout)
	return components, nil
}

// seedStore loads the fixture file, then the demo catalog, as configured.
func seedStore(ctx context.Context, db *database.DB, cfg *config.DatabaseConfig) error {
	if cfg.SeedFile != "" {
		logging.Info().Str("path", cfg.SeedFile).Msg("Seeding behavior store from fixture")
		if err := db.SeedFromFile(ctx, cfg.SeedFile); err != nil {
			return fmt.Errorf("failed to seed from %s: %w", cfg.SeedFile, err)
		}
	}
	if cfg.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(ctx); err != nil {
			return fmt.Errorf("failed to seed mock data: %w", err)
		}
	}
	return nil
}

func closeDB(db *database.DB) {
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
