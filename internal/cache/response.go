// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/metrics"
	"github.com/tomtom215/toolrank/internal/recommend"
)

// DefaultOpTimeout bounds a single backend call.
const DefaultOpTimeout = 50 * time.Millisecond

// ResponseCache stores recommendation responses as JSON in a Backend.
// Backend failures are logged and counted, then treated as misses.
type ResponseCache struct {
	backend   Backend
	opTimeout time.Duration
}

// NewResponseCache wraps backend with the default per-operation timeout.
func NewResponseCache(backend Backend) *ResponseCache {
	return &ResponseCache{backend: backend, opTimeout: DefaultOpTimeout}
}

// WithOpTimeout overrides the per-operation timeout. Non-positive values are ignored.
func (c *ResponseCache) WithOpTimeout(d time.Duration) *ResponseCache {
	if d > 0 {
		c.opTimeout = d
	}
	return c
}

// Backend returns the underlying backend.
func (c *ResponseCache) Backend() Backend {
	return c.backend
}

// Get implements recommend.ResultCache.
func (c *ResponseCache) Get(ctx context.Context, key string) (*recommend.Response, bool) {
	name := c.backend.Name()

	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	data, ok, err := c.backend.Get(opCtx, key)
	if err != nil {
		c.logError(ctx, "get", key, err)
		metrics.RecordCacheMiss(name)
		return nil, false
	}
	if !ok {
		metrics.RecordCacheMiss(name)
		return nil, false
	}

	var resp recommend.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logError(ctx, "decode", key, err)
		metrics.RecordCacheMiss(name)
		// Drop the unreadable entry so the next request can repopulate it.
		_ = c.backend.Delete(opCtx, key)
		return nil, false
	}

	metrics.RecordCacheHit(name)
	return &resp, true
}

// Set implements recommend.ResultCache.
func (c *ResponseCache) Set(ctx context.Context, key string, resp *recommend.Response, ttl time.Duration) {
	if resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logError(ctx, "encode", key, err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.backend.Set(opCtx, key, data, ttl); err != nil {
		c.logError(ctx, "set", key, err)
	}
}

// Close closes the backend.
func (c *ResponseCache) Close() error {
	return c.backend.Close()
}

func (c *ResponseCache) logError(ctx context.Context, op, key string, err error) {
	metrics.RecordCacheError(c.backend.Name(), op)
	logger := logging.Ctx(ctx)
	logger.Warn().
		Err(err).
		Str("backend", c.backend.Name()).
		Str("operation", op).
		Str("key", key).
		Msg("Result cache operation failed")
}

var _ recommend.ResultCache = (*ResponseCache)(nil)
