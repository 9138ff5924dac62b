// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/toolrank/internal/config"
	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/metrics"
	"github.com/tomtom215/toolrank/internal/recommend"
)

// BehaviorStoreBreakerName labels the store breaker in logs and metrics.
const BehaviorStoreBreakerName = "behavior-store"

// BreakerStore wraps a BehaviorStore with a circuit breaker. While open,
// calls fail fast with gobreaker.ErrOpenState instead of reaching the
// database, and the recommenders fall back as they would for any outage.
//
// The breaker uses real time for its interval and timeout. Tests that need
// to observe recovery should use short timeouts rather than a fake clock.
type BreakerStore struct {
	store recommend.BehaviorStore
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

var _ recommend.BehaviorStore = (*BreakerStore)(nil)

// NewBreakerStore wraps store with a breaker configured from cfg.
// The breaker opens once at least MinRequests calls have been made in the
// current interval and the failure ratio reaches FailureRatio.
func NewBreakerStore(store recommend.BehaviorStore, cfg *config.BreakerConfig, name string) *BreakerStore {
	if name == "" {
		name = BehaviorStoreBreakerName
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		// A caller that gave up says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerStore{store: store, cb: cb, name: name}
}

// Name returns the breaker name.
func (b *BreakerStore) Name() string {
	return b.name
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// StateName returns the current state as closed, half-open or open.
func (b *BreakerStore) StateName() string {
	return stateToString(b.cb.State())
}

// execute wraps a store call with circuit breaker protection
func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Debug().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// castSlice type-casts the circuit breaker result with error checking
func castSlice[T any](result interface{}, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	typed, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// RecentPositiveActions implements recommend.BehaviorStore.
func (b *BreakerStore) RecentPositiveActions(ctx context.Context, userID string, limit int) ([]recommend.EventWithItem, error) {
	return castSlice[recommend.EventWithItem](b.execute(func() (interface{}, error) {
		return b.store.RecentPositiveActions(ctx, userID, limit)
	}))
}

// UsersWhoActedOn implements recommend.BehaviorStore.
func (b *BreakerStore) UsersWhoActedOn(ctx context.Context, itemIDs []string, actions []recommend.Action, excludeUserID string) ([]recommend.BehaviorEvent, error) {
	return castSlice[recommend.BehaviorEvent](b.execute(func() (interface{}, error) {
		return b.store.UsersWhoActedOn(ctx, itemIDs, actions, excludeUserID)
	}))
}

// ActionsByUsers implements recommend.BehaviorStore.
func (b *BreakerStore) ActionsByUsers(ctx context.Context, userIDs []string, actions []recommend.Action, limit int) ([]recommend.BehaviorEvent, error) {
	return castSlice[recommend.BehaviorEvent](b.execute(func() (interface{}, error) {
		return b.store.ActionsByUsers(ctx, userIDs, actions, limit)
	}))
}

// ItemsByCategory implements recommend.BehaviorStore.
func (b *BreakerStore) ItemsByCategory(ctx context.Context, categories []string, limit int) ([]recommend.Item, error) {
	return castSlice[recommend.Item](b.execute(func() (interface{}, error) {
		return b.store.ItemsByCategory(ctx, categories, limit)
	}))
}

// TopPopularItems implements recommend.BehaviorStore.
func (b *BreakerStore) TopPopularItems(ctx context.Context, limit int) ([]recommend.Item, error) {
	return castSlice[recommend.Item](b.execute(func() (interface{}, error) {
		return b.store.TopPopularItems(ctx, limit)
	}))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
