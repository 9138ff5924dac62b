// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// Set holds the recommenders registered on an engine.
type Set struct {
	Popularity    *Popularity
	Content       *Content
	Collaborative *Collaborative
	Hybrid        *recommend.Hybrid
}

// NewEngine builds the three recommenders and the hybrid over store and
// registers each under its kind. store should already be bounded by
// recommend.Bounded so each read honors the store timeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store recommend.BehaviorStore, cfg *recommend.Config, logger zerolog.Logger) (*recommend.Engine, *Set, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}

	engine, err := recommend.NewEngine(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	popular := NewPopularity(store, cfg.Popularity, logger)
	set := &Set{
		Popularity:    popular,
		Content:       NewContent(store, popular, cfg.Content, logger),
		Collaborative: NewCollaborative(store, popular, cfg.Collaborative, logger),
	}
	set.Hybrid = recommend.NewHybrid(set.Collaborative, set.Content, popular, cfg.Hybrid, logger)

	engine.Register(recommend.KindPopular, set.Popularity)
	engine.Register(recommend.KindContent, set.Content)
	engine.Register(recommend.KindCollaborative, set.Collaborative)
	engine.Register(recommend.KindHybrid, set.Hybrid)

	return engine, set, nil
}
