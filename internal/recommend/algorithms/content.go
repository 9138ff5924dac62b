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

// Content recommends items that share categories and tags with the user's
// recent likes and bookmarks.
//
// The affinity profile counts, over the recent positive events, how often
// each category and each tag occurred. Candidates come from the user's
// strongest categories and are scored as:
//
//	score = CategoryWeight * catAff[item.category]
//	      + TagWeight * sum(tagAff[t] for t in item.tags)
//	      + PopularityBlend * item.popularity
//
// Items with neither category nor tag overlap are dropped.
type Content struct {
	BaseAlgorithm

	popular *Popularity
	cfg     recommend.ContentConfig
}

// NewContent creates a content-based recommender that falls back to popular.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContent(store recommend.BehaviorStore, popular *Popularity, cfg recommend.ContentConfig, logger zerolog.Logger) *Content {
	if cfg.History <= 0 {
		cfg.History = 50
	}
	if cfg.TopCategories <= 0 {
		cfg.TopCategories = 3
	}
	if cfg.CandidateMultiplier <= 0 {
		cfg.CandidateMultiplier = 2
	}
	return &Content{
		BaseAlgorithm: NewBaseAlgorithm(string(recommend.KindContent), store, logger),
		popular:       popular,
		cfg:           cfg,
	}
}

// profile is a user's category and tag affinity.
type profile struct {
	categories map[string]int
	tags       map[string]int
	seen       map[string]struct{}
}

func buildProfile(events []recommend.EventWithItem) profile {
	p := profile{
		categories: make(map[string]int),
		tags:       make(map[string]int),
		seen:       positiveSet(events),
	}
	for i := range events {
		item := &events[i].Item
		if item.Category != "" {
			p.categories[item.Category]++
		}
		counted := make(map[string]struct{}, len(item.Tags))
		for _, tag := range item.Tags {
			if _, dup := counted[tag]; dup || tag == "" {
				continue
			}
			counted[tag] = struct{}{}
			p.tags[tag]++
		}
	}
	return p
}

// topCategories returns the n strongest categories, ties by name ascending.
func (p profile) topCategories(n int) []string {
	cats := make([]string, 0, len(p.categories))
	for c := range p.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if p.categories[cats[i]] != p.categories[cats[j]] {
			return p.categories[cats[i]] > p.categories[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}

// Recommend implements recommend.Recommender.
func (c *Content) Recommend(ctx context.Context, userID string, limit int) (recommend.Result, error) {
	if limit <= 0 {
		return recommend.Success([]recommend.Score{}), nil
	}

	events, err := c.store.RecentPositiveActions(ctx, userID, c.cfg.History)
	if err != nil {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonDataUnavailable, nil, err)
	}
	if len(events) == 0 {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonEmptySignal, map[string]struct{}{}, nil)
	}

	prof := buildProfile(events)
	top := prof.topCategories(c.cfg.TopCategories)

	candidates, err := c.store.ItemsByCategory(ctx, top, limit*c.cfg.CandidateMultiplier)
	if err != nil {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonDataUnavailable, prof.seen, err)
	}

	scored := make(map[string]*recommend.Score, len(candidates))
	for i := range candidates {
		if s, ok := c.score(&candidates[i], prof); ok {
			scored[s.ItemID] = s
		}
	}
	if len(scored) == 0 {
		return c.delegate(ctx, c.popular, userID, limit, recommend.ReasonNoCandidates, prof.seen, nil)
	}

	return recommend.Success(recommend.Rank(scored, limit)), nil
}

// score rates one candidate against the profile. It reports false for
// items already acted on and for items with no overlap at all.
func (c *Content) score(item *recommend.Item, prof profile) (*recommend.Score, bool) {
	if _, seen := prof.seen[item.ID]; seen {
		return nil, false
	}

	var reasons recommend.Reasons
	catAff := prof.categories[item.Category]
	if catAff > 0 {
		reasons = reasons.Add(item.Category + " match")
	}

	// A tag may share its name with the category; it still counts.
	tagSum := 0
	summed := make(map[string]struct{}, len(item.Tags))
	for _, tag := range item.Tags {
		aff := prof.tags[tag]
		if _, dup := summed[tag]; dup || aff <= 0 {
			continue
		}
		summed[tag] = struct{}{}
		tagSum += aff
		reasons = reasons.Add(tag + " match")
	}

	if catAff == 0 && tagSum == 0 {
		return nil, false
	}

	return &recommend.Score{
		ItemID: item.ID,
		Score: c.cfg.CategoryWeight*float64(catAff) +
			c.cfg.TagWeight*float64(tagSum) +
			c.cfg.PopularityBlend*float64(item.Popularity),
		Reasons: reasons,
	}, true
}
