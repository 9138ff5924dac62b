// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// mapCache is an in-memory ResultCache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*recommend.Response
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*recommend.Response)}
}

func (c *mapCache) Get(_ context.Context, key string) (*recommend.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.entries[key]
	return resp, ok
}

func (c *mapCache) Set(_ context.Context, key string, resp *recommend.Response, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = resp
	c.sets++
}

// cachedConfig turns on the result cache, which is off by default.
func cachedConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Cache.Enabled = true
	return cfg
}

func newTestEngine(t *testing.T, cfg *recommend.Config) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *recommend.Config
		wantErr bool
	}{
		{name: "nil config uses defaults", cfg: nil},
		{name: "valid config", cfg: recommend.DefaultConfig()},
		{name: "invalid config", cfg: func() *recommend.Config {
			c := recommend.DefaultConfig()
			c.Limits.DefaultLimit = -1
			return c
		}(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := recommend.NewEngine(tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && engine.Config() == nil {
				t.Error("Config() = nil")
			}
		})
	}
}

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	popularScores := []recommend.Score{sc("P1", 9, "popular"), sc("P2", 8, "popular")}

	tests := []struct {
		name   string
		req    recommend.Request
		setup  func(e *recommend.Engine) map[recommend.Kind]*stubRecommender
		verify func(t *testing.T, resp *recommend.Response, err error, stubs map[recommend.Kind]*stubRecommender)
	}{
		{
			name: "unknown type dispatches to hybrid",
			req:  recommend.Request{UserID: "u1", Kind: "trending", Limit: 5},
			verify: func(t *testing.T, resp *recommend.Response, err error, stubs map[recommend.Kind]*stubRecommender) {
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				if resp.Kind != recommend.KindHybrid {
					t.Errorf("Kind = %s, want hybrid", resp.Kind)
				}
				if stubs[recommend.KindHybrid].calls.Load() != 1 {
					t.Error("hybrid recommender not called")
				}
			},
		},
		{
			name: "zero limit uses default",
			req:  recommend.Request{UserID: "u1", Kind: recommend.KindPopular},
			verify: func(t *testing.T, resp *recommend.Response, err error, stubs map[recommend.Kind]*stubRecommender) {
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				if got := stubs[recommend.KindPopular].gotLimit.Load(); got != 10 {
					t.Errorf("limit passed = %d, want 10", got)
				}
				if resp.Metadata.Limit != 10 {
					t.Errorf("Metadata.Limit = %d, want 10", resp.Metadata.Limit)
				}
			},
		},
		{
			name: "large limit is clamped",
			req:  recommend.Request{UserID: "u1", Kind: recommend.KindPopular, Limit: 5000},
			verify: func(t *testing.T, _ *recommend.Response, err error, stubs map[recommend.Kind]*stubRecommender) {
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				if got := stubs[recommend.KindPopular].gotLimit.Load(); got != 100 {
					t.Errorf("limit passed = %d, want 100", got)
				}
			},
		},
		{
			name: "single recommender reports its own outcome",
			req:  recommend.Request{UserID: "u1", Kind: recommend.KindContent, Limit: 2},
			verify: func(t *testing.T, resp *recommend.Response, err error, _ map[recommend.Kind]*stubRecommender) {
				if err != nil {
					t.Fatalf("Recommend() error = %v", err)
				}
				if len(resp.Outcomes) != 1 || resp.Outcomes[0].Recommender != "content" {
					t.Fatalf("Outcomes = %+v, want one content outcome", resp.Outcomes)
				}
				if resp.Outcomes[0].Reason != recommend.ReasonEmptySignal {
					t.Errorf("Reason = %s, want empty_signal", resp.Outcomes[0].Reason)
				}
				if len(resp.Items) != 2 {
					t.Errorf("Items = %d, want 2", len(resp.Items))
				}
			},
		},
		{
			name: "recommender error becomes total failure",
			req:  recommend.Request{UserID: "u1", Kind: recommend.KindCollaborative},
			verify: func(t *testing.T, resp *recommend.Response, err error, _ map[recommend.Kind]*stubRecommender) {
				if !errors.Is(err, recommend.ErrTotalFailure) {
					t.Fatalf("error = %v, want ErrTotalFailure", err)
				}
				if resp != nil {
					t.Errorf("resp = %+v, want nil", resp)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := newTestEngine(t, nil)
			stubs := map[recommend.Kind]*stubRecommender{
				recommend.KindHybrid:        {name: "hybrid", scores: popularScores},
				recommend.KindPopular:       {name: "popular", scores: popularScores},
				recommend.KindContent:       {name: "content", scores: popularScores, reason: recommend.ReasonEmptySignal},
				recommend.KindCollaborative: {name: "collaborative", err: errChannel},
			}
			for kind, stub := range stubs {
				engine.Register(kind, stub)
			}

			resp, err := engine.Recommend(context.Background(), tt.req)
			tt.verify(t, resp, err, stubs)
		})
	}
}

func TestEngine_UnregisteredKind(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	_, err := engine.Recommend(context.Background(), recommend.Request{UserID: "u1", Kind: recommend.KindPopular})
	if !errors.Is(err, recommend.ErrTotalFailure) {
		t.Fatalf("error = %v, want ErrTotalFailure", err)
	}
	if got := engine.Stats().TotalFailures; got != 1 {
		t.Errorf("TotalFailures = %d, want 1", got)
	}
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, cachedConfig())
	popular := &stubRecommender{name: "popular", scores: []recommend.Score{sc("P1", 9, "popular")}}
	engine.Register(recommend.KindPopular, popular)
	cache := newMapCache()
	engine.SetCache(cache)

	req := recommend.Request{UserID: "u1", Kind: recommend.KindPopular, Limit: 5}
	first, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first response marked as cache hit")
	}

	second, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second response not served from cache")
	}
	if popular.calls.Load() != 1 {
		t.Errorf("recommender calls = %d, want 1", popular.calls.Load())
	}
	if _, ok := cache.entries["rec:popular:u1:5"]; !ok {
		t.Errorf("cache keys = %v, want rec:popular:u1:5", cache.entries)
	}

	stats := engine.Stats()
	if stats.Requests != 2 || stats.CacheHits != 1 || stats.CacheMisses != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestEngine_DegradedResultsAreNotCached(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, cachedConfig())
	engine.Register(recommend.KindContent, &stubRecommender{
		name:   "content",
		scores: []recommend.Score{sc("P1", 9, "popular")},
		reason: recommend.ReasonDataUnavailable,
	})
	cache := newMapCache()
	engine.SetCache(cache)

	resp, err := engine.Recommend(context.Background(), recommend.Request{UserID: "u1", Kind: recommend.KindContent})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 1 {
		t.Errorf("Items = %+v, want the fallback list", resp.Items)
	}
	if cache.sets != 0 {
		t.Errorf("cache sets = %d, want 0 for a degraded result", cache.sets)
	}
	if engine.Stats().Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, want 1", engine.Stats().Fallbacks)
	}
}

func TestEngine_CacheOffByDefault(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, recommend.DefaultConfig())
	engine.Register(recommend.KindPopular, &stubRecommender{name: "popular"})
	cache := newMapCache()
	engine.SetCache(cache)

	for i := 0; i < 2; i++ {
		if _, err := engine.Recommend(context.Background(), recommend.Request{UserID: "u1", Kind: recommend.KindPopular}); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	if cache.sets != 0 || engine.Stats().CacheMisses != 0 {
		t.Errorf("cache used while disabled: sets=%d stats=%+v", cache.sets, engine.Stats())
	}
}

func TestEngine_CancellationIsNotTotalFailure(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	engine.Register(recommend.KindHybrid, &stubRecommender{name: "hybrid", block: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Recommend(ctx, recommend.Request{UserID: "u1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if errors.Is(err, recommend.ErrTotalFailure) {
		t.Error("cancellation reported as total failure")
	}
	if engine.Stats().TotalFailures != 0 {
		t.Errorf("TotalFailures = %d, want 0", engine.Stats().TotalFailures)
	}
}

func TestEngine_EmptyListIsNotNil(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	engine.Register(recommend.KindPopular, &stubRecommender{name: "popular"})

	resp, err := engine.Recommend(context.Background(), recommend.Request{UserID: "u1", Kind: recommend.KindPopular})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Items == nil {
		t.Error("Items = nil, want empty slice")
	}
	if resp.Metadata.RequestID == "" {
		t.Error("RequestID not assigned")
	}
}
