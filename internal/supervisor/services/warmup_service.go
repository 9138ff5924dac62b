// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/metrics"
)

// SnapshotRefresher keeps a last-known-good popularity list.
// *algorithms.Popularity satisfies it.
type SnapshotRefresher interface {
	Refresh(ctx context.Context, n int) error
	SnapshotAge() (time.Duration, bool)
}

// WarmupServiceConfig holds configuration for the warmup service.
type WarmupServiceConfig struct {
	// Interval is how often the snapshot is refreshed.
	// Default: 5m
	Interval time.Duration

	// Limit is how many popular items the snapshot holds.
	// Default: 100
	Limit int

	// RefreshTimeout bounds a single refresh.
	// Default: 30s
	RefreshTimeout time.Duration
}

// WarmupService periodically refreshes the popularity snapshot so the
// popularity recommender can keep serving while the store is unavailable.
type WarmupService struct {
	refresher SnapshotRefresher
	config    WarmupServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewWarmupService creates a new warmup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmupService(refresher SnapshotRefresher, cfg WarmupServiceConfig, logger zerolog.Logger) *WarmupService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 30 * time.Second
	}
	return &WarmupService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "warmup").Logger(),
		name:      "warmup-service",
	}
}

// Serve implements suture.Service. It refreshes once on start and then on
// every tick. Refresh failures are logged and counted; the previous
// snapshot stays in place until a refresh succeeds.
func (s *WarmupService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Int("limit", s.config.Limit).
		Msg("warmup service starting")

	s.refresh(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("warmup service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *WarmupService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	start := time.Now()
	err := s.refresher.Refresh(refreshCtx, s.config.Limit)
	if err != nil && ctx.Err() != nil {
		// Shutdown, not a failed refresh.
		return
	}
	metrics.RecordWarmup(err)

	if age, ok := s.refresher.SnapshotAge(); ok {
		metrics.PopularitySnapshotAge.Set(age.Seconds())
	}

	if err != nil {
		s.logger.Warn().Err(err).Msg("popularity snapshot refresh failed, keeping previous snapshot")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("popularity snapshot refreshed")
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *WarmupService) String() string {
	return s.name
}
