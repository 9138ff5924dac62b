// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/toolrank/internal/config"
)

// Backend names accepted in cache.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// Backend is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Name returns the backend name used in metric labels.
	Name() string

	// Get returns the value for key. A missing or expired key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Len returns the number of entries held in process, or -1 when the
	// backend cannot count cheaply.
	Len() int

	// Close releases the backend's resources.
	Close() error
}

// New builds the backend selected by cfg.Backend.
//
// Example:
//
//	backend, err := cache.New(&cfg.Cache)
//	if err != nil {
//	    return err
//	}
//	engine.SetCache(cache.NewResponseCache(backend))
func New(cfg *config.CacheConfig) (Backend, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryBackend(cfg.MaxEntries, cfg.TTL), nil
	case BackendRedis:
		return NewRedisBackend(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case BackendBadger:
		return NewBadgerBackend(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Backend = (*MemoryBackend)(nil)
	_ Backend = (*RedisBackend)(nil)
	_ Backend = (*BadgerBackend)(nil)
)
