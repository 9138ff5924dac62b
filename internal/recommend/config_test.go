// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.Limits.DefaultLimit != 10 || cfg.Limits.MaxLimit != 100 {
		t.Errorf("limits = %+v, want default 10 max 100", cfg.Limits)
	}
	if cfg.Limits.StoreTimeout != 2*time.Second {
		t.Errorf("StoreTimeout = %v, want 2s", cfg.Limits.StoreTimeout)
	}
	if cfg.Content.History != 50 || cfg.Collaborative.History != 100 {
		t.Errorf("history = %d/%d, want 50/100", cfg.Content.History, cfg.Collaborative.History)
	}
	if cfg.Hybrid.RepeatWeight != 0.5 {
		t.Errorf("RepeatWeight = %f, want 0.5", cfg.Hybrid.RepeatWeight)
	}
}

func TestHybridConfig_SubLimits(t *testing.T) {
	t.Parallel()

	h := DefaultConfig().Hybrid
	tests := []struct {
		limit                             int
		wantCollab, wantContent, wantPop int
	}{
		{limit: 10, wantCollab: 4, wantContent: 4, wantPop: 2},
		{limit: 1, wantCollab: 1, wantContent: 1, wantPop: 1},
		{limit: 3, wantCollab: 2, wantContent: 2, wantPop: 1},
		{limit: 5, wantCollab: 2, wantContent: 2, wantPop: 1},
		{limit: 7, wantCollab: 3, wantContent: 3, wantPop: 2},
		{limit: 100, wantCollab: 40, wantContent: 40, wantPop: 20},
		{limit: 0, wantCollab: 0, wantContent: 0, wantPop: 0},
	}

	for _, tt := range tests {
		c, ct, p := h.SubLimits(tt.limit)
		if c != tt.wantCollab || ct != tt.wantContent || p != tt.wantPop {
			t.Errorf("SubLimits(%d) = %d/%d/%d, want %d/%d/%d",
				tt.limit, c, ct, p, tt.wantCollab, tt.wantContent, tt.wantPop)
		}
	}

	// 10 * 0.3 is 3.0000000000000004 in float64.
	h.PopularShare = 0.3
	if _, _, p := h.SubLimits(10); p != 3 {
		t.Errorf("SubLimits(10) popular with share 0.3 = %d, want 3", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "zero default limit", mutate: func(c *Config) { c.Limits.DefaultLimit = 0 }, wantErr: "default_limit"},
		{name: "max below default", mutate: func(c *Config) { c.Limits.MaxLimit = 5 }, wantErr: "max_limit"},
		{name: "share above one", mutate: func(c *Config) { c.Hybrid.ContentShare = 1.5 }, wantErr: "content_share"},
		{name: "all shares zero", mutate: func(c *Config) {
			c.Hybrid.CollaborativeShare, c.Hybrid.ContentShare, c.Hybrid.PopularShare = 0, 0, 0
		}, wantErr: "all be zero"},
		{name: "negative repeat weight", mutate: func(c *Config) { c.Hybrid.RepeatWeight = -1 }, wantErr: "repeat_weight"},
		{name: "negative tag weight", mutate: func(c *Config) { c.Content.TagWeight = -1 }, wantErr: "content weights"},
		{name: "zero cache ttl", mutate: func(c *Config) { c.Cache.Enabled, c.Cache.TTL = true, 0 }, wantErr: "cache.ttl"},
		{name: "default disabled cache ignores ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Hybrid.RepeatWeight = 0.9
	if cfg.Hybrid.RepeatWeight != 0.5 {
		t.Errorf("modifying clone changed original: %f", cfg.Hybrid.RepeatWeight)
	}
}

func TestSortScoresAndRank(t *testing.T) {
	t.Parallel()

	acc := map[string]*Score{
		"b": {ItemID: "b", Score: 2},
		"a": {ItemID: "a", Score: 2},
		"c": {ItemID: "c", Score: 5},
		"d": {ItemID: "d", Score: 1},
	}
	got := Rank(acc, 3)
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Rank() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ItemID != id {
			t.Errorf("Rank()[%d] = %s, want %s", i, got[i].ItemID, id)
		}
	}

	if n := len(Truncate(got, -1)); n != 0 {
		t.Errorf("Truncate(-1) returned %d items, want 0", n)
	}
}
