// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"context"
	"time"
)

// BehaviorStore is the read-only view of behavior and catalog data the
// recommenders depend on. Implementations must honor ctx.
type BehaviorStore interface {
	// RecentPositiveActions returns the user's most recent like and
	// bookmark events, newest first, each joined with its item.
	RecentPositiveActions(ctx context.Context, userID string, limit int) ([]EventWithItem, error)

	// UsersWhoActedOn returns every event with one of actions on any of
	// itemIDs by users other than excludeUserID.
	UsersWhoActedOn(ctx context.Context, itemIDs []string, actions []Action, excludeUserID string) ([]BehaviorEvent, error)

	// ActionsByUsers returns the most recent events with one of actions
	// by any of userIDs, newest first, bounded by limit.
	ActionsByUsers(ctx context.Context, userIDs []string, actions []Action, limit int) ([]BehaviorEvent, error)

	// ItemsByCategory returns items in any of categories ordered by
	// popularity descending, ties by item id ascending.
	ItemsByCategory(ctx context.Context, categories []string, limit int) ([]Item, error)

	// TopPopularItems returns the most popular items, ties by item id ascending.
	TopPopularItems(ctx context.Context, limit int) ([]Item, error)
}

// Store operation names used in errors, logs and metrics.
const (
	OpRecentPositiveActions = "recent_positive_actions"
	OpUsersWhoActedOn       = "users_who_acted_on"
	OpActionsByUsers        = "actions_by_users"
	OpItemsByCategory       = "items_by_category"
	OpTopPopularItems       = "top_popular_items"
)

// Bounded wraps store so every call runs under its own timeout and every
// failure surfaces as a DataUnavailableError. When the caller's context is
// already done its error is returned unchanged, so cancellation is never
// mistaken for a store outage.
func Bounded(store BehaviorStore, timeout time.Duration) BehaviorStore {
	if b, ok := store.(*boundedStore); ok && b.timeout == timeout {
		return b
	}
	return &boundedStore{store: store, timeout: timeout}
}

type boundedStore struct {
	store   BehaviorStore
	timeout time.Duration
}

func (b *boundedStore) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if b.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, b.timeout)
	}
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return Unavailable(op, err)
}

func (b *boundedStore) RecentPositiveActions(ctx context.Context, userID string, limit int) ([]EventWithItem, error) {
	var out []EventWithItem
	err := b.call(ctx, OpRecentPositiveActions, func(ctx context.Context) error {
		var err error
		out, err = b.store.RecentPositiveActions(ctx, userID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *boundedStore) UsersWhoActedOn(ctx context.Context, itemIDs []string, actions []Action, excludeUserID string) ([]BehaviorEvent, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var out []BehaviorEvent
	err := b.call(ctx, OpUsersWhoActedOn, func(ctx context.Context) error {
		var err error
		out, err = b.store.UsersWhoActedOn(ctx, itemIDs, actions, excludeUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *boundedStore) ActionsByUsers(ctx context.Context, userIDs []string, actions []Action, limit int) ([]BehaviorEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []BehaviorEvent
	err := b.call(ctx, OpActionsByUsers, func(ctx context.Context) error {
		var err error
		out, err = b.store.ActionsByUsers(ctx, userIDs, actions, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *boundedStore) ItemsByCategory(ctx context.Context, categories []string, limit int) ([]Item, error) {
	var out []Item
	err := b.call(ctx, OpItemsByCategory, func(ctx context.Context) error {
		var err error
		out, err = b.store.ItemsByCategory(ctx, categories, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *boundedStore) TopPopularItems(ctx context.Context, limit int) ([]Item, error) {
	var out []Item
	err := b.call(ctx, OpTopPopularItems, func(ctx context.Context) error {
		var err error
		out, err = b.store.TopPopularItems(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
