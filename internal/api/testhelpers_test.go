// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/recommend/algorithms"
	"github.com/tomtom215/toolrank/internal/recommend/storetest"
)

// envelope mirrors APIResponse with a raw data payload for typed decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// testCatalog is a small AI tool catalog with one active user.
func testCatalog() *storetest.Store {
	s := storetest.New().AddItems(
		storetest.Item("chatgpt", "chat", 90, "free", "api"),
		storetest.Item("claude", "chat", 80, "free", "api"),
		storetest.Item("midjourney", "image-gen", 70, "paid"),
		storetest.Item("stable-diffusion", "image-gen", 50, "free", "open-source"),
		storetest.Item("copilot", "code", 60, "paid"),
		storetest.Item("whisper", "audio", 30, "open-source"),
	)
	s.Like("u1", "midjourney").Like("u2", "midjourney").Like("u2", "stable-diffusion")
	return s
}

func newTestEngine(t *testing.T, store recommend.BehaviorStore) (*recommend.Engine, *algorithms.Set) {
	t.Helper()
	return newTestEngineWithConfig(t, store, recommend.DefaultConfig())
}

func newTestEngineWithConfig(t *testing.T, store recommend.BehaviorStore, cfg *recommend.Config) (*recommend.Engine, *algorithms.Set) {
	t.Helper()
	engine, set, err := algorithms.NewEngine(recommend.Bounded(store, cfg.Limits.StoreTimeout), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, set
}

// fakePinger reports a fixed ping result.
type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// fakeBreaker reports a fixed breaker state.
type fakeBreaker struct{ state string }

func (b fakeBreaker) Name() string      { return "behavior-store" }
func (b fakeBreaker) StateName() string { return b.state }

func newTestRouter(t *testing.T, store *storetest.Store, security *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	engine, set := newTestEngine(t, store)
	health := NewHealthHandler(fakePinger{}, engine, "test").WithSnapshot(set.Popularity)
	return NewRouter(NewRecommendHandler(engine), health, NewChiMiddleware(security), nil).SetupChi()
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// mapCache is an in-memory recommend.ResultCache.
type mapCache struct {
	mu    sync.Mutex
	items map[string]*recommend.Response
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]*recommend.Response{}}
}

func (c *mapCache) Get(_ context.Context, key string) (*recommend.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.items[key]
	return resp, ok
}

func (c *mapCache) Set(_ context.Context, key string, resp *recommend.Response, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = resp
}
