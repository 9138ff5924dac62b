// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package algorithms implements the popularity, content-based and
// collaborative recommenders used by the hybrid engine.
//
// Each recommender reads through a recommend.BehaviorStore and satisfies
// recommend.Recommender. Content and Collaborative hold a *Popularity and
// delegate to it when they have no signal, no candidates or the store is
// unavailable; the delegation is reported as a fallback outcome rather
// than an error.
//
// # Thread Safety
//
// Recommenders hold no per-request state and are safe for concurrent use.
// Popularity guards its snapshot with a mutex.
package algorithms
