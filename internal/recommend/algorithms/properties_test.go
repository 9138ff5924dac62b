// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/recommend/storetest"
)

// community seeds a catalog with overlapping user histories.
func community() *storetest.Store {
	s := catalog()
	s.Like("alice", "A").Like("alice", "C").Act("alice", "E", recommend.ActionBookmark)
	s.Like("bob", "A").Like("bob", "B").Like("bob", "G").Act("bob", "F", recommend.ActionView)
	s.Like("carol", "C").Like("carol", "H").Like("carol", "X")
	s.Like("dave", "X").Like("dave", "Y").Act("dave", "G", recommend.ActionBookmark)
	s.Act("erin", "E", recommend.ActionComment)
	return s
}

var communityUsers = []string{"alice", "bob", "carol", "dave", "erin", "frank"}

func TestProperties_Deterministic(t *testing.T) {
	t.Parallel()

	s := newStack(community())
	for _, r := range s.all() {
		for _, user := range communityUsers {
			first, err := r.Recommend(context.Background(), user, 5)
			if err != nil {
				t.Fatalf("%s(%s) error = %v", r.Name(), user, err)
			}
			second, err := r.Recommend(context.Background(), user, 5)
			if err != nil {
				t.Fatalf("%s(%s) error = %v", r.Name(), user, err)
			}
			if !reflect.DeepEqual(first.Scores, second.Scores) {
				t.Errorf("%s(%s) not deterministic: %v vs %v", r.Name(), user, ids(first.Scores), ids(second.Scores))
			}
		}
	}
}

func TestProperties_NoSelfRecommendation(t *testing.T) {
	t.Parallel()

	store := community()
	s := newStack(store)
	for _, user := range communityUsers {
		history, err := store.RecentPositiveActions(context.Background(), user, 1000)
		if err != nil {
			t.Fatalf("history(%s) error = %v", user, err)
		}
		liked := positiveSet(history)

		for _, r := range s.all() {
			res, err := r.Recommend(context.Background(), user, 10)
			if err != nil {
				t.Fatalf("%s(%s) error = %v", r.Name(), user, err)
			}
			for _, id := range ids(res.Scores) {
				if _, ok := liked[id]; ok {
					t.Errorf("%s recommended %s to %s, who already acted on it", r.Name(), id, user)
				}
			}
		}
	}
}

func TestProperties_DedupAndLimit(t *testing.T) {
	t.Parallel()

	s := newStack(community())
	for _, limit := range []int{1, 2, 3, 5, 7, 10, 50} {
		for _, user := range communityUsers {
			for _, r := range s.all() {
				res, err := r.Recommend(context.Background(), user, limit)
				if err != nil {
					t.Fatalf("%s(%s, %d) error = %v", r.Name(), user, limit, err)
				}
				if len(res.Scores) > limit {
					t.Errorf("%s(%s, %d) returned %d items", r.Name(), user, limit, len(res.Scores))
				}
				seen := make(map[string]bool)
				for _, id := range ids(res.Scores) {
					if seen[id] {
						t.Errorf("%s(%s, %d) duplicated %s", r.Name(), user, limit, id)
					}
					seen[id] = true
				}
				for i := 1; i < len(res.Scores); i++ {
					prev, cur := res.Scores[i-1], res.Scores[i]
					if prev.Score < cur.Score || (prev.Score == cur.Score && prev.ItemID > cur.ItemID) {
						t.Errorf("%s(%s, %d) out of order at %d: %v", r.Name(), user, limit, i, ids(res.Scores))
					}
				}
			}
		}
	}
}

func TestProperties_GracefulDegradation(t *testing.T) {
	t.Parallel()

	s := newStack(community())
	for _, limit := range []int{1, 4, 10} {
		pop, err := s.popular.Recommend(context.Background(), "frank", limit)
		if err != nil {
			t.Fatalf("popular error = %v", err)
		}
		for _, r := range []recommend.Recommender{s.content, s.collab} {
			res, err := r.Recommend(context.Background(), "frank", limit)
			if err != nil {
				t.Fatalf("%s error = %v", r.Name(), err)
			}
			if !reflect.DeepEqual(res.Scores, pop.Scores) {
				t.Errorf("%s(frank, %d) = %v, want popularity %v", r.Name(), limit, ids(res.Scores), ids(pop.Scores))
			}
		}
	}
}

func TestProperties_FallbackNeverPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		warm   bool
		verify func(t *testing.T, res recommend.Result, err error)
	}{
		{
			name: "without snapshot the hybrid reports total failure",
			verify: func(t *testing.T, _ recommend.Result, err error) {
				if !errors.Is(err, recommend.ErrTotalFailure) {
					t.Errorf("error = %v, want ErrTotalFailure", err)
				}
			},
		},
		{
			name: "with a warm snapshot the hybrid serves it",
			warm: true,
			verify: func(t *testing.T, res recommend.Result, err error) {
				if err != nil {
					t.Fatalf("error = %v, want snapshot list", err)
				}
				if len(res.Scores) == 0 {
					t.Error("Scores empty, want snapshot items")
				}
				for _, s := range res.Scores {
					if !s.Reasons.Contains(ReasonPopular) {
						t.Errorf("reasons(%s) = %v, want popular", s.ItemID, s.Reasons)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := community()
			s := newStack(store)
			if tt.warm {
				if err := s.popular.Refresh(context.Background(), 100); err != nil {
					t.Fatalf("Refresh() error = %v", err)
				}
			}
			store.FailAll(fmt.Errorf("connection refused: %w", storetest.ErrOffline))

			res, err := s.hybrid.Recommend(context.Background(), "alice", 10)
			tt.verify(t, res, err)
		})
	}
}
