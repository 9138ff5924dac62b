// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package storetest provides an in-memory recommend.BehaviorStore with the
// same ordering rules as the SQL store and per-operation failure injection.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// Epoch is the timestamp of the first event recorded with Act.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Store is an in-memory BehaviorStore. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	items  map[string]recommend.Item
	events []recommend.BehaviorEvent
	errs   map[string]error
	delay  time.Duration
	calls  map[string]int
	clock  time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		items: make(map[string]recommend.Item),
		errs:  make(map[string]error),
		calls: make(map[string]int),
		clock: Epoch,
	}
}

// AddItems inserts or replaces items.
func (s *Store) AddItems(items ...recommend.Item) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

// AddEvents appends events as given.
func (s *Store) AddEvents(events ...recommend.BehaviorEvent) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return s
}

// Act records an event one second after the previous Act call, so later
// calls are always newer.
func (s *Store) Act(userID, itemID string, action recommend.Action) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	s.events = append(s.events, recommend.BehaviorEvent{
		UserID:    userID,
		ItemID:    itemID,
		Action:    action,
		Timestamp: s.clock,
	})
	return s
}

// Like records a like event.
func (s *Store) Like(userID, itemID string) *Store {
	return s.Act(userID, itemID, recommend.ActionLike)
}

// FailWith makes op return err until cleared with a nil err.
func (s *Store) FailWith(op string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, op)
	} else {
		s.errs[op] = err
	}
	return s
}

// FailAll makes every operation return err.
func (s *Store) FailAll(err error) *Store {
	for _, op := range []string{
		recommend.OpRecentPositiveActions,
		recommend.OpUsersWhoActedOn,
		recommend.OpActionsByUsers,
		recommend.OpItemsByCategory,
		recommend.OpTopPopularItems,
	} {
		s.FailWith(op, err)
	}
	return s
}

// SetDelay makes every operation wait d or until ctx is done.
func (s *Store) SetDelay(d time.Duration) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
	return s
}

// Calls returns how many times op was invoked.
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

func (s *Store) enter(ctx context.Context, op string) error {
	s.mu.Lock()
	s.calls[op]++
	delay := s.delay
	err := s.errs[op]
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// RecentPositiveActions implements recommend.BehaviorStore.
func (s *Store) RecentPositiveActions(ctx context.Context, userID string, limit int) ([]recommend.EventWithItem, error) {
	if err := s.enter(ctx, recommend.OpRecentPositiveActions); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.EventWithItem
	for _, ev := range s.events {
		if ev.UserID != userID || !ev.Action.IsPositive() {
			continue
		}
		item, ok := s.items[ev.ItemID]
		if !ok {
			continue
		}
		out = append(out, recommend.EventWithItem{BehaviorEvent: ev, Item: cloneItem(item)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ItemID < out[j].ItemID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UsersWhoActedOn implements recommend.BehaviorStore.
func (s *Store) UsersWhoActedOn(ctx context.Context, itemIDs []string, actions []recommend.Action, excludeUserID string) ([]recommend.BehaviorEvent, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	if err := s.enter(ctx, recommend.OpUsersWhoActedOn); err != nil {
		return nil, err
	}

	wantItem := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wantItem[id] = struct{}{}
	}
	wantAction := make(map[recommend.Action]struct{}, len(actions))
	for _, a := range actions {
		wantAction[a] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.BehaviorEvent
	for _, ev := range s.events {
		if ev.UserID == excludeUserID {
			continue
		}
		if _, ok := wantItem[ev.ItemID]; !ok {
			continue
		}
		if _, ok := wantAction[ev.Action]; !ok {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// ActionsByUsers implements recommend.BehaviorStore.
func (s *Store) ActionsByUsers(ctx context.Context, userIDs []string, actions []recommend.Action, limit int) ([]recommend.BehaviorEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	if err := s.enter(ctx, recommend.OpActionsByUsers); err != nil {
		return nil, err
	}

	wantUser := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		wantUser[id] = struct{}{}
	}
	wantAction := make(map[recommend.Action]struct{}, len(actions))
	for _, a := range actions {
		wantAction[a] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.BehaviorEvent
	for _, ev := range s.events {
		if _, ok := wantUser[ev.UserID]; !ok {
			continue
		}
		if _, ok := wantAction[ev.Action]; !ok {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ItemID < out[j].ItemID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ItemsByCategory implements recommend.BehaviorStore.
func (s *Store) ItemsByCategory(ctx context.Context, categories []string, limit int) ([]recommend.Item, error) {
	if err := s.enter(ctx, recommend.OpItemsByCategory); err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		want[c] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.Item
	for _, it := range s.items {
		if _, ok := want[it.Category]; ok {
			out = append(out, cloneItem(it))
		}
	}
	return rankItems(out, limit), nil
}

// TopPopularItems implements recommend.BehaviorStore.
func (s *Store) TopPopularItems(ctx context.Context, limit int) ([]recommend.Item, error) {
	if err := s.enter(ctx, recommend.OpTopPopularItems); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recommend.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, cloneItem(it))
	}
	return rankItems(out, limit), nil
}

func rankItems(items []recommend.Item, limit int) []recommend.Item {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Popularity != items[j].Popularity {
			return items[i].Popularity > items[j].Popularity
		}
		return items[i].ID < items[j].ID
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func cloneItem(it recommend.Item) recommend.Item {
	if it.Tags != nil {
		it.Tags = append([]string(nil), it.Tags...)
	}
	return it
}

// Item is shorthand for building a catalog entry in tests.
func Item(id, category string, popularity int64, tags ...string) recommend.Item {
	return recommend.Item{ID: id, Category: category, Tags: tags, Popularity: popularity}
}

// ErrOffline is a convenient injected failure.
var ErrOffline = errors.New("storetest: store offline")
