// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package cache provides the recommendation result cache.

Responses are stored as JSON under the key produced by recommend.CacheKey in
one of three backends selected by cache.backend:

  - memory: an in-process LRU (LRUCache) with per-entry TTL and a background
    sweep of expired entries
  - redis: a shared Redis instance, useful when several replicas serve the
    same catalog
  - badger: an embedded BadgerDB, on disk when cache.badger_path is set and
    in memory otherwise

ResponseCache adapts a Backend to recommend.ResultCache. Backend errors never
reach the caller: they are logged, counted in cache_errors_total and treated
as misses, so a failing cache only costs a recomputation.

Usage:

	backend, err := cache.New(&cfg.Cache)
	if err != nil {
	    return err
	}
	defer backend.Close()

	engine.SetCache(cache.NewResponseCache(backend))

Thread Safety:

All backends and ResponseCache are safe for concurrent use.
*/
package cache
