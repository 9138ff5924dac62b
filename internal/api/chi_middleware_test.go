// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/toolrank/internal/config"
)

func TestNewChiMiddlewareFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    *config.SecurityConfig
		verify func(t *testing.T, c *ChiMiddlewareConfig)
	}{
		{
			name: "nil uses defaults",
			cfg:  nil,
			verify: func(t *testing.T, c *ChiMiddlewareConfig) {
				if c.RateLimitRequests != 100 || c.RateLimitWindow != time.Minute {
					t.Errorf("rate limit = %d/%v, want 100/1m", c.RateLimitRequests, c.RateLimitWindow)
				}
				if len(c.CORSAllowedOrigins) != 0 {
					t.Errorf("origins = %v, want none", c.CORSAllowedOrigins)
				}
			},
		},
		{
			name: "values copied",
			cfg: &config.SecurityConfig{
				CORSOrigins:       []string{"https://tools.example.com"},
				RateLimitReqs:     5,
				RateLimitWindow:   10 * time.Second,
				RateLimitDisabled: true,
			},
			verify: func(t *testing.T, c *ChiMiddlewareConfig) {
				if c.RateLimitRequests != 5 || c.RateLimitWindow != 10*time.Second || !c.RateLimitDisabled {
					t.Errorf("rate limit config = %+v", c)
				}
				if len(c.CORSAllowedOrigins) != 1 || c.CORSAllowedOrigins[0] != "https://tools.example.com" {
					t.Errorf("origins = %v", c.CORSAllowedOrigins)
				}
			},
		},
		{
			name: "zero rate values keep defaults",
			cfg:  &config.SecurityConfig{},
			verify: func(t *testing.T, c *ChiMiddlewareConfig) {
				if c.RateLimitRequests != 100 || c.RateLimitWindow != time.Minute {
					t.Errorf("rate limit = %d/%v, want defaults", c.RateLimitRequests, c.RateLimitWindow)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.verify(t, NewChiMiddlewareFromConfig(tt.cfg).config)
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	h := newTestRouter(t, testCatalog(), cfg)

	for i := 0; i < 2; i++ {
		if rec := serve(h, http.MethodGet, "/api/v1/recommendations/u1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := serve(h, http.MethodGet, "/api/v1/recommendations/u1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v, want TOO_MANY_REQUESTS", env.Error)
	}

	// Health endpoints have their own, more permissive limit.
	if rec := serve(h, http.MethodGet, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	h := newTestRouter(t, testCatalog(), cfg)

	for i := 0; i < 5; i++ {
		if rec := serve(h, http.MethodGet, "/api/v1/recommendations/u1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://tools.example.com"}
	h := newTestRouter(t, testCatalog(), cfg)

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origin: "https://tools.example.com", wantAllow: "https://tools.example.com"},
		{name: "other origin", origin: "https://evil.example.com", wantAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations/u1", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if rec.Code >= http.StatusBadRequest {
				t.Errorf("preflight status = %d", rec.Code)
			}
		})
	}
}
