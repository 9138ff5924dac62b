// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/recommend/storetest"
)

// stack wires the three recommenders over one store the way the server does.
type stack struct {
	store   *storetest.Store
	engine  *recommend.Engine
	popular *Popularity
	content *Content
	collab  *Collaborative
	hybrid  *recommend.Hybrid
}

func newStack(store *storetest.Store) *stack {
	cfg := recommend.DefaultConfig()
	bounded := recommend.Bounded(store, cfg.Limits.StoreTimeout)

	engine, set, err := NewEngine(bounded, cfg, zerolog.Nop())
	if err != nil {
		panic(fmt.Sprintf("NewEngine: %v", err))
	}
	return &stack{
		store:   store,
		engine:  engine,
		popular: set.Popularity,
		content: set.Content,
		collab:  set.Collaborative,
		hybrid:  set.Hybrid,
	}
}

func (s *stack) all() []recommend.Recommender {
	return []recommend.Recommender{s.popular, s.content, s.collab, s.hybrid}
}

// catalog is a small AI tool catalog with distinct popularity values.
func catalog() *storetest.Store {
	return storetest.New().AddItems(
		storetest.Item("A", "image-gen", 30, "free"),
		storetest.Item("B", "image-gen", 20, "paid"),
		storetest.Item("C", "image-gen", 50, "free", "api"),
		storetest.Item("D", "image-gen", 10, "paid"),
		storetest.Item("E", "chat", 90, "free"),
		storetest.Item("F", "chat", 70, "api"),
		storetest.Item("G", "code", 60, "open-source"),
		storetest.Item("H", "audio", 40, "free"),
		storetest.Item("X", "code", 15, "cli"),
		storetest.Item("Y", "code", 5, "cli"),
	)
}

func ids(scores []recommend.Score) []string {
	out := make([]string, len(scores))
	for i := range scores {
		out[i] = scores[i].ItemID
	}
	return out
}

func findScore(scores []recommend.Score, id string) (recommend.Score, bool) {
	for _, s := range scores {
		if s.ItemID == id {
			return s, true
		}
	}
	return recommend.Score{}, false
}

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
