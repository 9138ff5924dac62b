// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// ReasonPopular is attached to every popularity score.
const ReasonPopular = "popular"

// Popularity ranks items by their global popularity counter. It is the
// fallback for every other recommender, so it never depends on the
// user's own signal:
//
//	score(item) = item.Popularity
//
// Items the user recently liked or bookmarked are skipped when their
// history can be read. Refresh keeps a last-known-good list that is served
// during store outages.
type Popularity struct {
	BaseAlgorithm

	history        int
	snapshotMaxAge time.Duration
	now            func() time.Time

	mu         sync.RWMutex
	snapshot   []recommend.Item
	snapshotAt time.Time
}

// NewPopularity creates a popularity recommender.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPopularity(store recommend.BehaviorStore, cfg recommend.PopularityConfig, logger zerolog.Logger) *Popularity {
	return &Popularity{
		BaseAlgorithm:  NewBaseAlgorithm(string(recommend.KindPopular), store, logger),
		history:        cfg.History,
		snapshotMaxAge: cfg.SnapshotMaxAge,
		now:            time.Now,
	}
}

// Recommend returns the top limit items the user has not recently acted on.
func (p *Popularity) Recommend(ctx context.Context, userID string, limit int) (recommend.Result, error) {
	exclude := map[string]struct{}{}
	if userID != "" && p.history > 0 {
		events, err := p.store.RecentPositiveActions(ctx, userID, p.history)
		switch {
		case err == nil:
			exclude = positiveSet(events)
		case recommend.IsDataUnavailable(err):
			// The ranking does not depend on history, so carry on without it.
			p.logger.Debug().Err(err).Str("user_id", userID).Msg("history unavailable, not excluding")
		default:
			return recommend.Result{}, err
		}
	}
	return p.RecommendExcluding(ctx, limit, exclude)
}

// RecommendExcluding returns the top limit items not in exclude.
func (p *Popularity) RecommendExcluding(ctx context.Context, limit int, exclude map[string]struct{}) (recommend.Result, error) {
	if limit <= 0 {
		return recommend.Success([]recommend.Score{}), nil
	}

	items, err := p.store.TopPopularItems(ctx, limit+len(exclude))
	if err != nil {
		if recommend.IsDataUnavailable(err) {
			if stale, ok := p.fromSnapshot(limit, exclude); ok {
				p.logger.Warn().Err(err).Int("items", len(stale)).Msg("serving popularity snapshot")
				return recommend.Fallback(recommend.ReasonStaleSnapshot, stale), nil
			}
		}
		return recommend.Result{}, fmt.Errorf("popularity: %w", err)
	}

	return recommend.Success(scoreItems(items, limit, exclude)), nil
}

// Refresh replaces the last-known-good snapshot with the current top n items.
func (p *Popularity) Refresh(ctx context.Context, n int) error {
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	items, err := p.store.TopPopularItems(ctx, n)
	if err != nil {
		return fmt.Errorf("refresh popularity snapshot: %w", err)
	}

	p.mu.Lock()
	p.snapshot = items
	p.snapshotAt = p.now()
	p.mu.Unlock()

	p.logger.Debug().Int("items", len(items)).Msg("popularity snapshot refreshed")
	return nil
}

// SnapshotAge returns how old the snapshot is, or false if none was taken.
func (p *Popularity) SnapshotAge() (time.Duration, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snapshotAt.IsZero() {
		return 0, false
	}
	return p.now().Sub(p.snapshotAt), true
}

func (p *Popularity) fromSnapshot(limit int, exclude map[string]struct{}) ([]recommend.Score, bool) {
	if p.snapshotMaxAge <= 0 {
		return nil, false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.snapshotAt.IsZero() || p.now().Sub(p.snapshotAt) > p.snapshotMaxAge {
		return nil, false
	}
	return scoreItems(p.snapshot, limit, exclude), true
}

func scoreItems(items []recommend.Item, limit int, exclude map[string]struct{}) []recommend.Score {
	scores := make([]recommend.Score, 0, min(len(items), limit))
	for i := range items {
		if _, skip := exclude[items[i].ID]; skip {
			continue
		}
		scores = append(scores, recommend.Score{
			ItemID:  items[i].ID,
			Score:   float64(items[i].Popularity),
			Reasons: recommend.NewReasons(ReasonPopular),
		})
	}
	recommend.SortScores(scores)
	return recommend.Truncate(scores, limit)
}
