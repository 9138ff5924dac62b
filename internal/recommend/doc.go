// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package recommend ranks AI tool listings for a user by combining three
// signal sources.
//
// # Architecture
//
// Three recommenders read from a BehaviorStore:
//
//   - Collaborative: items liked or bookmarked by users who share the
//     user's positive history
//   - Content: items in the user's strongest categories, scored by
//     category and tag affinity
//   - Popularity: the global popularity ranking, which is also the
//     fallback for the other two
//
// Hybrid runs the three concurrently, each sized as a share of the
// requested limit, and merges them in fixed order. The Engine selects the
// recommender for a request kind and optionally caches finished responses.
//
// # Failure Handling
//
// Store reads go through Bounded, which gives every call its own timeout
// and turns any failure into ErrDataUnavailable. Recommenders recover from
// that locally by delegating to popularity and report it as a fallback
// Outcome. A user with no history is not an error either; it is a fallback
// with reason empty_signal. Only when nothing can be served does the
// engine return ErrTotalFailure.
//
// Cancelling the request context aborts all channels and returns the
// context error. No partial list is returned.
//
// # Usage
//
//	store := recommend.Bounded(dbStore, cfg.Limits.StoreTimeout)
//	popular := algorithms.NewPopularity(store, cfg.Popularity, logger)
//	content := algorithms.NewContent(store, popular, cfg.Content, logger)
//	collab := algorithms.NewCollaborative(store, popular, cfg.Collaborative, logger)
//
//	engine, _ := recommend.NewEngine(cfg, logger)
//	engine.Register(recommend.KindHybrid, recommend.NewHybrid(collab, content, popular, cfg.Hybrid, logger))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{UserID: "u1", Limit: 10})
package recommend
