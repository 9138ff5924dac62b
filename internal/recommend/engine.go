// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/toolrank/internal/metrics"
)

// ResultCache stores finished responses. Implementations handle their own
// failures; a broken cache behaves like a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Response, bool)
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration)
}

// Engine dispatches requests to the recommender registered for their kind.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	recommenders map[Kind]Recommender
	mu           sync.RWMutex

	cache ResultCache

	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	fallbackCount atomic.Int64
	failureCount  atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		recommenders: make(map[Kind]Recommender),
	}, nil
}

// Register sets the recommender that serves kind.
func (e *Engine) Register(kind Kind, r Recommender) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recommenders[kind] = r
	e.logger.Info().
		Str("kind", string(kind)).
		Str("recommender", r.Name()).
		Msg("registered recommender")
}

// SetCache installs a result cache. Passing nil disables caching.
func (e *Engine) SetCache(c ResultCache) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = c
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Recommend serves a request. Failures of every recommender path are
// returned as ErrTotalFailure; cancellation returns the context error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Str("type", string(req.Kind)).
		Int("limit", req.Limit).
		Logger()

	if resp := e.tryGetCachedResponse(ctx, req, start, logger); resp != nil {
		return resp, nil
	}

	r, err := e.recommender(req.Kind)
	if err != nil {
		e.failureCount.Add(1)
		metrics.RecordRecommendation(string(req.Kind), "failure", 0)
		return nil, err
	}

	res, err := r.Recommend(ctx, req.UserID, req.Limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.failureCount.Add(1)
		metrics.RecordRecommendationFailure(r.Name())
		metrics.RecordRecommendation(string(req.Kind), "failure", 0)
		logger.Error().Err(err).Str("recommender", r.Name()).Msg("recommendation failed")
		if errors.Is(err, ErrTotalFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrTotalFailure, r.Name(), err)
	}

	resp := e.buildResponse(req, r, res, start)
	if res.Outcome == OutcomeFallback {
		e.fallbackCount.Add(1)
	}
	recordOutcomes(req.Kind, res.Outcome, resp)
	e.cacheResponse(ctx, req, resp)

	logger.Debug().
		Int("returned", len(resp.Items)).
		Str("outcome", string(res.Outcome)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// recordOutcomes exports the response and per-channel fallbacks and failures.
func recordOutcomes(kind Kind, outcome Outcome, resp *Response) {
	metrics.RecordRecommendation(string(kind), string(outcome), len(resp.Items))
	for _, o := range resp.Outcomes {
		if o.Error != "" {
			metrics.RecordRecommendationFailure(o.Recommender)
			continue
		}
		if o.Outcome == OutcomeFallback && o.Reason != ReasonNone {
			metrics.RecordFallback(o.Recommender, string(o.Reason))
		}
	}
}

// prepareRequest normalizes kind and limit and assigns a request id.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	req.Kind = ParseKind(string(req.Kind))
	if req.Limit <= 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}
	return req
}

func (e *Engine) recommender(kind Kind) (Recommender, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.recommenders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no recommender registered for %q", ErrTotalFailure, kind)
	}
	return r, nil
}

func (e *Engine) resultCache() ResultCache {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.config.Cache.Enabled {
		return nil
	}
	return e.cache
}

// CacheKey returns the cache key for a prepared request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func CacheKey(req Request) string {
	return fmt.Sprintf("rec:%s:%s:%d", req.Kind, req.UserID, req.Limit)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) *Response {
	c := e.resultCache()
	if c == nil {
		return nil
	}

	cached, ok := c.Get(ctx, CacheKey(req))
	if !ok || cached == nil {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := *cached
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return &resp
}

// cacheResponse stores resp unless any channel was degraded.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(ctx context.Context, req Request, resp *Response) {
	c := e.resultCache()
	if c == nil {
		return
	}
	for _, o := range resp.Outcomes {
		if o.Degraded() {
			return
		}
	}
	c.Set(ctx, CacheKey(req), resp, e.config.Cache.TTL)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, r Recommender, res Result, start time.Time) *Response {
	items := res.Scores
	if items == nil {
		items = []Score{}
	}

	outcomes := res.Channels
	if len(outcomes) == 0 {
		outcomes = []ChannelOutcome{channelOutcome(r.Name(), res, nil)}
	}

	return &Response{
		UserID:   req.UserID,
		Kind:     req.Kind,
		Items:    Truncate(items, req.Limit),
		Outcomes: outcomes,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			Limit:       req.Limit,
			LatencyMS:   time.Since(start).Milliseconds(),
			GeneratedAt: time.Now().UTC(),
		},
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:      e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		Fallbacks:     e.fallbackCount.Load(),
		TotalFailures: e.failureCount.Load(),
	}
}
