// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// BaseAlgorithm provides what every recommender shares: its name, the
// store it reads from and a component logger.
type BaseAlgorithm struct {
	name   string
	store  recommend.BehaviorStore
	logger zerolog.Logger
}

// NewBaseAlgorithm creates a base for the recommender called name.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBaseAlgorithm(name string, store recommend.BehaviorStore, logger zerolog.Logger) BaseAlgorithm {
	return BaseAlgorithm{
		name:   name,
		store:  store,
		logger: logger.With().Str("component", "recommend").Str("recommender", name).Logger(),
	}
}

// Name returns the recommender identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// delegate serves the popularity list in place of the recommender's own.
// A non-nil seen set is excluded directly; a nil one makes popularity look
// up the user's history itself.
func (b *BaseAlgorithm) delegate(ctx context.Context, p *Popularity, userID string, limit int,
	reason recommend.FallbackReason, seen map[string]struct{}, cause error,
) (recommend.Result, error) {
	// Cancellation is not an outage.
	if cause != nil && !recommend.IsDataUnavailable(cause) {
		return recommend.Result{}, cause
	}
	if err := ctx.Err(); err != nil {
		return recommend.Result{}, err
	}

	event := b.logger.Debug()
	if cause != nil {
		event = b.logger.Warn().Err(cause)
	}
	event.Str("user_id", userID).Str("reason", string(reason)).Msg("falling back to popularity")

	var (
		res recommend.Result
		err error
	)
	if seen != nil {
		res, err = p.RecommendExcluding(ctx, limit, seen)
	} else {
		res, err = p.Recommend(ctx, userID, limit)
	}
	if err != nil {
		return recommend.Result{}, err
	}
	return recommend.Fallback(reason, res.Scores), nil
}

// positiveSet collects the item ids of events.
func positiveSet(events []recommend.EventWithItem) map[string]struct{} {
	seen := make(map[string]struct{}, len(events))
	for i := range events {
		seen[events[i].ItemID] = struct{}{}
	}
	return seen
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
