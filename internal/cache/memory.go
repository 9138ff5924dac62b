// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/toolrank/internal/metrics"
)

// MemoryBackend adapts LRUCache to the Backend interface and runs a
// background sweep of expired entries until closed.
type MemoryBackend struct {
	*LRUCache

	stop      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewMemoryBackend creates an in-process LRU backend. Expired entries are
// swept every ttl (at least every second).
func NewMemoryBackend(capacity int, ttl time.Duration) *MemoryBackend {
	m := &MemoryBackend{
		LRUCache: NewLRUCache(capacity, ttl),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	interval := m.ttl
	if interval < time.Second {
		interval = time.Second
	}
	go m.cleanupLoop(interval)

	return m
}

// Name implements Backend.
func (m *MemoryBackend) Name() string {
	return BackendMemory
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.LRUCache.Get(key)
	return v, ok, nil
}

// Set implements Backend. The value is copied so callers may reuse their buffer.
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.LRUCache.Add(key, append([]byte(nil), value...), ttl)
	metrics.CacheEntries.WithLabelValues(BackendMemory).Set(float64(m.LRUCache.Len()))
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.LRUCache.Remove(key)
	return nil
}

// Close stops the cleanup loop. It is safe to call more than once.
func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() {
		close(m.stop)
		<-m.done
	})
	return nil
}

func (m *MemoryBackend) cleanupLoop(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.CleanupExpired()
			metrics.CacheEntries.WithLabelValues(BackendMemory).Set(float64(m.LRUCache.Len()))
		}
	}
}
