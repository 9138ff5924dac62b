// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// ReasonSimilarUsers is attached to every collaborative score.
const ReasonSimilarUsers = "similar users liked"

// Collaborative recommends what similar users liked or bookmarked. A
// neighbor is any other user with a positive action on an item in the
// user's recent positive history; no distance metric is computed. Every
// positive neighbor event on an item the user has not seen adds one to
// that item's score.
type Collaborative struct {
	BaseAlgorithm

	popular        *Popularity
	history        int
	neighborEvents int
}

// NewCollaborative creates a collaborative recommender that falls back to popular.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborative(store recommend.BehaviorStore, popular *Popularity, cfg recommend.CollaborativeConfig, logger zerolog.Logger) *Collaborative {
	if cfg.History <= 0 {
		cfg.History = 100
	}
	if cfg.NeighborEvents <= 0 {
		cfg.NeighborEvents = 1000
	}
	return &Collaborative{
		BaseAlgorithm:  NewBaseAlgorithm(string(recommend.KindCollaborative), store, logger),
		popular:        popular,
		history:        cfg.History,
		neighborEvents: cfg.NeighborEvents,
	}
}

// Recommend implements recommend.Recommender.
func (c *Collaborative) Recommend(ctx context.Context, userID string, limit int) (recommend.Result, error) {
	if limit <= 0 {
		return recommend.Success([]recommend.Score{}), nil
	}

	events, err := c.store.RecentPositiveActions(ctx, userID, c.history)
	if err != nil {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonDataUnavailable, nil, err)
	}
	if len(events) == 0 {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonEmptySignal, map[string]struct{}{}, nil)
	}

	seen := positiveSet(events)
	overlap, err := c.store.UsersWhoActedOn(ctx, sortedKeys(seen), recommend.PositiveActions, userID)
	if err != nil {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonDataUnavailable, seen, err)
	}

	neighbors := make(map[string]struct{})
	for i := range overlap {
		if overlap[i].UserID != userID {
			neighbors[overlap[i].UserID] = struct{}{}
		}
	}
	if len(neighbors) == 0 {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonNoCandidates, seen, nil)
	}

	neighborEvents, err := c.store.ActionsByUsers(ctx, sortedKeys(neighbors), recommend.PositiveActions, c.neighborEvents)
	if err != nil {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonDataUnavailable, seen, err)
	}

	scored := make(map[string]*recommend.Score)
	for i := range neighborEvents {
		ev := &neighborEvents[i]
		if ev.UserID == userID || !ev.Action.IsPositive() {
			continue
		}
		if _, ok := seen[ev.ItemID]; ok {
			continue
		}
		s, ok := scored[ev.ItemID]
		if !ok {
			s = &recommend.Score{ItemID: ev.ItemID, Reasons: recommend.NewReasons(ReasonSimilarUsers)}
			scored[ev.ItemID] = s
		}
		s.Score++
	}

	if len(scored) == 0 {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonNoCandidates, seen, nil)
	}
	return recommend.Success(recommend.Rank(scored, limit)), nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
