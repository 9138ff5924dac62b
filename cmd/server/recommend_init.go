// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/cache"
	"github.com/tomtom215/toolrank/internal/config"
	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/recommend/algorithms"
	"github.com/tomtom215/toolrank/internal/supervisor"
	"github.com/tomtom215/toolrank/internal/supervisor/services"
)

// RecommendComponents holds all recommendation-related components.
type RecommendComponents struct {
	Engine *recommend.Engine
	Set    *algorithms.Set

	// Cache is nil when result caching is disabled.
	Cache *cache.ResponseCache
}

// Close releases the result cache backend.
func (c *RecommendComponents) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}

// initRecommend builds the engine over store and installs the result cache.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, store recommend.BehaviorStore, logger zerolog.Logger) (*RecommendComponents, error) {
	engineCfg := cfg.EngineConfig()

	logger.Info().
		Int("default_limit", engineCfg.Limits.DefaultLimit).
		Int("max_limit", engineCfg.Limits.MaxLimit).
		Dur("request_timeout", engineCfg.Limits.RequestTimeout).
		Dur("store_timeout", engineCfg.Limits.StoreTimeout).
		Msg("initializing recommendation engine")

	engine, set, err := algorithms.NewEngine(store, engineCfg, logger)
	if err != nil {
		return nil, err
	}
	components := &RecommendComponents{Engine: engine, Set: set}

	if !cfg.Cache.Enabled {
		logger.Info().Msg("Result cache disabled")
		return components, nil
	}

	backend, err := cache.New(&cfg.Cache)
	if err != nil {
		return nil, err
	}
	components.Cache = cache.NewResponseCache(backend)
	engine.SetCache(components.Cache)

	logger.Info().
		Str("backend", backend.Name()).
		Dur("ttl", cfg.Cache.TTL).
		Msg("Result cache enabled")
	return components, nil
}

// addWarmup schedules popularity snapshot refreshes on the data layer.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func addWarmup(cfg *config.Config, components *RecommendComponents, tree *supervisor.SupervisorTree, logger zerolog.Logger) {
	if !cfg.Warmup.Enabled {
		logger.Info().Msg("Popularity warmup disabled (WARMUP_ENABLED=false)")
		return
	}

	tree.AddDataService(services.NewWarmupService(components.Set.Popularity, services.WarmupServiceConfig{
		Interval: cfg.Warmup.Interval,
		Limit:    cfg.Warmup.Limit,
	}, logger))
	logger.Info().
		Dur("interval", cfg.Warmup.Interval).
		Int("limit", cfg.Warmup.Limit).
		Msg("Popularity warmup added to supervisor tree")
}
