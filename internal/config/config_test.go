// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(c *Config)
		errContains string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{
			name:        "port zero",
			mutate:      func(c *Config) { c.Server.Port = 0 },
			errContains: "HTTP_PORT",
		},
		{
			name:        "non-positive server timeout",
			mutate:      func(c *Config) { c.Server.Timeout = 0 },
			errContains: "HTTP_TIMEOUT",
		},
		{
			name:        "duckdb without path",
			mutate:      func(c *Config) { c.Database.Path = "" },
			errContains: "DUCKDB_PATH",
		},
		{
			name: "mysql with dsn",
			mutate: func(c *Config) {
				c.Database.Driver = "mysql"
				c.Database.DSN = "u:p@tcp(localhost:3306)/toolrank"
			},
		},
		{
			name:        "pool size zero",
			mutate:      func(c *Config) { c.Database.MaxOpenConns = 0 },
			errContains: "DB_MAX_OPEN_CONNS",
		},
		{
			name:        "query timeout zero",
			mutate:      func(c *Config) { c.Database.QueryTimeout = 0 },
			errContains: "DB_QUERY_TIMEOUT",
		},
		{
			name:        "breaker failure ratio too high",
			mutate:      func(c *Config) { c.Breaker.FailureRatio = 1.5 },
			errContains: "BREAKER_FAILURE_RATIO",
		},
		{
			name: "disabled breaker skips validation",
			mutate: func(c *Config) {
				c.Breaker.Enabled = false
				c.Breaker.FailureRatio = 0
			},
		},
		{
			name:        "max limit below default",
			mutate:      func(c *Config) { c.Recommend.MaxLimit = 5 },
			errContains: "max_limit",
		},
		{
			name: "all shares zero",
			mutate: func(c *Config) {
				c.Recommend.CollaborativeShare = 0
				c.Recommend.ContentShare = 0
				c.Recommend.PopularShare = 0
			},
			errContains: "shares must not all be zero",
		},
		{
			name:        "redis without address",
			mutate:      func(c *Config) { c.Cache.Enabled, c.Cache.Backend, c.Cache.RedisAddr = true, "redis", "" },
			errContains: "REDIS_ADDR",
		},
		{
			name:        "memory cache without capacity",
			mutate:      func(c *Config) { c.Cache.Enabled, c.Cache.MaxEntries = true, 0 },
			errContains: "CACHE_MAX_ENTRIES",
		},
		{
			name: "default disabled cache skips backend validation",
			mutate: func(c *Config) {
				c.Cache.Backend = "unknown"
			},
		},
		{
			name:        "warmup without interval",
			mutate:      func(c *Config) { c.Warmup.Interval = 0 },
			errContains: "WARMUP_INTERVAL",
		},
		{
			name:        "warmup without limit",
			mutate:      func(c *Config) { c.Warmup.Limit = 0 },
			errContains: "WARMUP_LIMIT",
		},
		{
			name:   "wildcard cors in development",
			mutate: func(c *Config) { c.Security.CORSOrigins = []string{"*"} },
		},
		{
			name: "wildcard cors in production",
			mutate: func(c *Config) {
				c.Server.Environment = "prod"
				c.Security.CORSOrigins = []string{"https://ui.example", "*"}
			},
			errContains: "CORS_ORIGINS",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			errContains: "LOG_FORMAT",
		},
		{
			name:   "log level is case-insensitive",
			mutate: func(c *Config) { c.Logging.Level = "DEBUG" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestValidateRateLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		requests    int
		window      time.Duration
		disabled    bool
		errContains string
	}{
		{name: "valid defaults", requests: 100, window: time.Minute},
		{name: "valid minimum requests", requests: 1, window: time.Minute},
		{name: "valid maximum requests", requests: 100000, window: time.Minute},
		{name: "valid minimum window", requests: 100, window: time.Second},
		{name: "valid maximum window", requests: 100, window: time.Hour},
		{name: "invalid zero requests", requests: 0, window: time.Minute, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "invalid too many requests", requests: 100001, window: time.Minute, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "invalid window too small", requests: 100, window: 500 * time.Millisecond, errContains: "RATE_LIMIT_WINDOW"},
		{name: "invalid window too large", requests: 100, window: 2 * time.Hour, errContains: "RATE_LIMIT_WINDOW"},
		{name: "disabled skips validation", requests: 0, window: 0, disabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{
				Security: SecurityConfig{
					RateLimitReqs:     tt.requests,
					RateLimitWindow:   tt.window,
					RateLimitDisabled: tt.disabled,
				},
			}

			err := cfg.validateRateLimits()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("validateRateLimits() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("validateRateLimits() error = %v, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.TopCategories = 5
	cfg.Recommend.NeighborEvents = 250
	cfg.Recommend.PopularityHistory = 0
	cfg.Recommend.RepeatWeight = 0.75
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 3 * time.Minute

	ec := cfg.EngineConfig()

	if ec.Limits.DefaultLimit != 10 || ec.Limits.MaxLimit != 100 {
		t.Errorf("Limits = %+v", ec.Limits)
	}
	if ec.Limits.StoreTimeout != 2*time.Second || ec.Limits.RequestTimeout != 5*time.Second {
		t.Errorf("timeouts = %v/%v", ec.Limits.StoreTimeout, ec.Limits.RequestTimeout)
	}
	if ec.Content.TopCategories != 5 || ec.Content.History != 50 || ec.Content.CategoryWeight != 2 {
		t.Errorf("Content = %+v", ec.Content)
	}
	if ec.Collaborative.NeighborEvents != 250 || ec.Collaborative.History != 100 {
		t.Errorf("Collaborative = %+v", ec.Collaborative)
	}
	if ec.Popularity.History != 0 || ec.Popularity.SnapshotMaxAge != 15*time.Minute {
		t.Errorf("Popularity = %+v", ec.Popularity)
	}
	if ec.Hybrid.RepeatWeight != 0.75 || ec.Hybrid.PopularShare != 0.2 {
		t.Errorf("Hybrid = %+v", ec.Hybrid)
	}
	if ec.Cache.Enabled || ec.Cache.TTL != 3*time.Minute {
		t.Errorf("Cache = %+v", ec.Cache)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("mapped engine config must validate: %v", err)
	}
}

func TestEnvironmentMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		prod bool
		dev  bool
	}{
		{"", false, true},
		{"development", false, true},
		{"dev", false, true},
		{"production", true, false},
		{"PROD", true, false},
		{"staging", false, false},
	}
	for _, tt := range tests {
		cfg := &Config{Server: ServerConfig{Environment: tt.env}}
		if cfg.IsProduction() != tt.prod || cfg.IsDevelopment() != tt.dev {
			t.Errorf("environment %q: prod=%v dev=%v, want %v/%v", tt.env, cfg.IsProduction(), cfg.IsDevelopment(), tt.prod, tt.dev)
		}
	}
}
