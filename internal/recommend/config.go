// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits bounds request sizes and latencies.
	Limits LimitsConfig `json:"limits"`

	// Content contains parameters for the category/tag affinity recommender.
	Content ContentConfig `json:"content"`

	// Collaborative contains parameters for the similar-users recommender.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// Popularity contains parameters for the popularity recommender.
	Popularity PopularityConfig `json:"popularity"`

	// Hybrid controls how the three channels are combined.
	Hybrid HybridConfig `json:"hybrid"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig bounds request sizes and latencies.
type LimitsConfig struct {
	// DefaultLimit is used when a request does not specify a limit.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit clamps larger requested limits.
	// Default: 100.
	MaxLimit int `json:"max_limit"`

	// RequestTimeout bounds a whole recommendation request.
	// Default: 5s.
	RequestTimeout time.Duration `json:"request_timeout"`

	// StoreTimeout bounds each individual store read.
	// Default: 2s.
	StoreTimeout time.Duration `json:"store_timeout"`
}

// ContentConfig contains parameters for content-based recommendations.
type ContentConfig struct {
	// History is how many recent positive events build the affinity profile.
	// Default: 50.
	History int `json:"history"`

	// TopCategories is how many of the user's strongest categories are searched.
	// Default: 3.
	TopCategories int `json:"top_categories"`

	// CandidateMultiplier scales the limit to size the candidate fetch.
	// Default: 2.
	CandidateMultiplier int `json:"candidate_multiplier"`

	// CategoryWeight multiplies the category affinity.
	// Default: 2.0.
	CategoryWeight float64 `json:"category_weight"`

	// TagWeight multiplies the summed tag affinity.
	// Default: 1.0.
	TagWeight float64 `json:"tag_weight"`

	// PopularityBlend multiplies the item's raw popularity.
	// Default: 0.1.
	PopularityBlend float64 `json:"popularity_blend"`
}

// CollaborativeConfig contains parameters for collaborative recommendations.
type CollaborativeConfig struct {
	// History is how many recent positive events form the seen set.
	// Default: 100.
	History int `json:"history"`

	// NeighborEvents bounds how many of the neighbors' own recent positive
	// events are scored.
	// Default: 1000.
	NeighborEvents int `json:"neighbor_events"`
}

// PopularityConfig contains parameters for popularity recommendations.
type PopularityConfig struct {
	// History is how many recent positive events are excluded from the
	// list when a user id is known. Zero disables exclusion.
	// Default: 100.
	History int `json:"history"`

	// SnapshotMaxAge is how old the last-known-good list may be before it
	// is no longer served during a store outage. Zero disables the snapshot.
	// Default: 15m.
	SnapshotMaxAge time.Duration `json:"snapshot_max_age"`
}

// HybridConfig controls how channels are sized and merged.
type HybridConfig struct {
	// CollaborativeShare, ContentShare and PopularShare size each channel
	// as ceil(limit * share).
	// Defaults: 0.4, 0.4, 0.2.
	CollaborativeShare float64 `json:"collaborative_share"`
	ContentShare       float64 `json:"content_share"`
	PopularShare       float64 `json:"popular_share"`

	// RepeatWeight scales the score an item adds when it appears in a
	// later channel.
	// Default: 0.5.
	RepeatWeight float64 `json:"repeat_weight"`
}

// SubLimits returns the collaborative, content and popular channel sizes.
func (h HybridConfig) SubLimits(limit int) (collaborative, content, popular int) {
	return shareOf(limit, h.CollaborativeShare), shareOf(limit, h.ContentShare), shareOf(limit, h.PopularShare)
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled serves repeated requests from the installed ResultCache
	// for TTL. A cached list does not see behavior recorded meanwhile.
	// Default: false.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached response is served.
	// Default: 1m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit:   10,
			MaxLimit:       100,
			RequestTimeout: 5 * time.Second,
			StoreTimeout:   2 * time.Second,
		},
		Content: ContentConfig{
			History:             50,
			TopCategories:       3,
			CandidateMultiplier: 2,
			CategoryWeight:      2.0,
			TagWeight:           1.0,
			PopularityBlend:     0.1,
		},
		Collaborative: CollaborativeConfig{
			History:        100,
			NeighborEvents: 1000,
		},
		Popularity: PopularityConfig{
			History:        100,
			SnapshotMaxAge: 15 * time.Minute,
		},
		Hybrid: HybridConfig{
			CollaborativeShare: 0.4,
			ContentShare:       0.4,
			PopularShare:       0.2,
			RepeatWeight:       0.5,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= default_limit (%d)", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.RequestTimeout < 0 || c.Limits.StoreTimeout < 0 {
		return fmt.Errorf("limits timeouts must be non-negative")
	}

	if c.Content.History <= 0 {
		return fmt.Errorf("content.history must be positive, got %d", c.Content.History)
	}
	if c.Content.TopCategories <= 0 {
		return fmt.Errorf("content.top_categories must be positive, got %d", c.Content.TopCategories)
	}
	if c.Content.CandidateMultiplier <= 0 {
		return fmt.Errorf("content.candidate_multiplier must be positive, got %d", c.Content.CandidateMultiplier)
	}
	if c.Content.CategoryWeight < 0 || c.Content.TagWeight < 0 || c.Content.PopularityBlend < 0 {
		return fmt.Errorf("content weights must be non-negative")
	}

	if c.Collaborative.History <= 0 {
		return fmt.Errorf("collaborative.history must be positive, got %d", c.Collaborative.History)
	}
	if c.Collaborative.NeighborEvents <= 0 {
		return fmt.Errorf("collaborative.neighbor_events must be positive, got %d", c.Collaborative.NeighborEvents)
	}
	if c.Popularity.History < 0 {
		return fmt.Errorf("popularity.history must be non-negative, got %d", c.Popularity.History)
	}
	if c.Popularity.SnapshotMaxAge < 0 {
		return fmt.Errorf("popularity.snapshot_max_age must be non-negative")
	}

	h := c.Hybrid
	for name, share := range map[string]float64{
		"collaborative_share": h.CollaborativeShare,
		"content_share":       h.ContentShare,
		"popular_share":       h.PopularShare,
	} {
		if share < 0 || share > 1 {
			return fmt.Errorf("hybrid.%s must be in [0, 1], got %f", name, share)
		}
	}
	if h.CollaborativeShare+h.ContentShare+h.PopularShare == 0 {
		return fmt.Errorf("hybrid shares must not all be zero")
	}
	if h.RepeatWeight < 0 {
		return fmt.Errorf("hybrid.repeat_weight must be non-negative, got %f", h.RepeatWeight)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
