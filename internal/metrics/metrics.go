// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Behavior store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of behavior store queries in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "driver"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Total number of behavior store query errors",
		},
		[]string{"operation", "driver", "error_type"}, // error_type: "timeout", "canceled", "other"
	)

	// Recommendation metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation responses by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Total number of recommender fallbacks to popularity",
		},
		[]string{"recommender", "reason"},
	)

	RecommendationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_failures_total",
			Help: "Total number of recommender failures",
		},
		[]string{"recommender"},
	)

	RecommendationItemsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_items_returned",
			Help:    "Number of items returned per recommendation response",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	PopularitySnapshotAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popularity_snapshot_age_seconds",
			Help: "Age of the last-known-good popularity snapshot in seconds",
		},
	)

	WarmupRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmup_refreshes_total",
			Help: "Total number of popularity snapshot refreshes",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Result cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
		[]string{"backend"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of recommendation cache backend errors",
		},
		[]string{"backend", "operation"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of entries held by the in-process cache",
		},
		[]string{"backend"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Logging
	LogMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "log_messages_dropped_total",
			Help: "Total number of log messages dropped by the async writer",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordStoreQuery records a behavior store query
func RecordStoreQuery(operation, driver string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation, driver).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, driver, errorType(err)).Inc()
	}
}

// errorType buckets errors into a bounded label set.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// RecordRecommendation records a completed recommendation response
func RecordRecommendation(kind, outcome string, items int) {
	RecommendationsTotal.WithLabelValues(kind, outcome).Inc()
	RecommendationItemsReturned.Observe(float64(items))
}

// RecordFallback records a recommender serving popularity in its place
func RecordFallback(recommender, reason string) {
	RecommendationFallbacks.WithLabelValues(recommender, reason).Inc()
}

// RecordRecommendationFailure records a recommender that returned an error
func RecordRecommendationFailure(recommender string) {
	RecommendationFailures.WithLabelValues(recommender).Inc()
}

// RecordWarmup records a popularity snapshot refresh
func RecordWarmup(err error) {
	if err != nil {
		WarmupRefreshes.WithLabelValues("failure").Inc()
		return
	}
	WarmupRefreshes.WithLabelValues("success").Inc()
}

// RecordCacheHit records a cache hit for the backend
func RecordCacheHit(backend string) {
	CacheHits.WithLabelValues(backend).Inc()
}

// RecordCacheMiss records a cache miss for the backend
func RecordCacheMiss(backend string) {
	CacheMisses.WithLabelValues(backend).Inc()
}

// RecordCacheError records a failed cache backend operation
func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLogDrops records messages dropped by the async log writer
func RecordLogDrops(n int) {
	if n > 0 {
		LogMessagesDropped.Add(float64(n))
	}
}

// SetAppInfo publishes the build version
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets app_uptime_seconds relative to start
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
