// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/metrics"
	"github.com/tomtom215/toolrank/internal/middleware"
	"github.com/tomtom215/toolrank/internal/recommend"
)

// readyTimeout bounds the store ping behind the readiness probe.
const readyTimeout = 2 * time.Second

// Pinger checks connectivity to the behavior store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerStatus reports the state of a circuit breaker.
type BreakerStatus interface {
	Name() string
	StateName() string
}

// SnapshotReporter reports the age of the last-known-good popularity snapshot.
type SnapshotReporter interface {
	SnapshotAge() (time.Duration, bool)
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status         string                  `json:"status"`
	Version        string                  `json:"version"`
	StoreConnected bool                    `json:"store_connected"`
	Uptime         float64                 `json:"uptime_seconds"`
	Breaker        *BreakerHealth          `json:"breaker,omitempty"`
	Engine         recommend.Stats         `json:"engine"`
	Snapshot       *SnapshotHealth         `json:"popularity_snapshot,omitempty"`
	Routes         []middleware.RouteStats `json:"routes,omitempty"`
}

// BreakerHealth describes the store circuit breaker.
type BreakerHealth struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// SnapshotHealth describes the popularity snapshot kept by warmup.
type SnapshotHealth struct {
	AgeSeconds float64 `json:"age_seconds"`
}

// HealthHandler serves liveness, readiness and status endpoints.
type HealthHandler struct {
	store     Pinger
	engine    *recommend.Engine
	breaker   BreakerStatus
	snapshot  SnapshotReporter
	perf      *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// NewHealthHandler creates a health handler. breaker, snapshot and perf
// are optional.
func NewHealthHandler(store Pinger, engine *recommend.Engine, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		engine:    engine,
		version:   version,
		startTime: time.Now(),
	}
}

// WithBreaker reports the store circuit breaker in the status endpoint.
func (h *HealthHandler) WithBreaker(b BreakerStatus) *HealthHandler {
	h.breaker = b
	return h
}

// WithSnapshot reports the popularity snapshot age in the status endpoint.
func (h *HealthHandler) WithSnapshot(s SnapshotReporter) *HealthHandler {
	h.snapshot = s
	return h
}

// WithPerformance reports per-route latency percentiles in the status endpoint.
func (h *HealthHandler) WithPerformance(pm *middleware.PerformanceMonitor) *HealthHandler {
	h.perf = pm
	return h
}

// Health handles health check requests
//
// @Summary Get service health status
// @Description Returns store connectivity, circuit breaker state, engine counters and per-route latency. Status is degraded when the store is unreachable or the breaker is not closed.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateUptime(h.startTime)

	connected := h.ping(r.Context()) == nil
	status := HealthStatus{
		Status:         "healthy",
		Version:        h.version,
		StoreConnected: connected,
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if !connected {
		status.Status = "degraded"
	}

	if h.breaker != nil {
		status.Breaker = &BreakerHealth{Name: h.breaker.Name(), State: h.breaker.StateName()}
		if status.Breaker.State != "closed" {
			status.Status = "degraded"
		}
	}
	if h.engine != nil {
		status.Engine = h.engine.Stats()
	}
	if h.snapshot != nil {
		if age, ok := h.snapshot.SnapshotAge(); ok {
			status.Snapshot = &SnapshotHealth{AgeSeconds: age.Seconds()}
		}
	}
	if h.perf != nil {
		status.Routes = h.perf.Stats()
	}

	WriteSuccess(w, r, status)
}

// HealthLive handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 OK if the process is alive, regardless of the store.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 OK when the behavior store answers a ping, 503 otherwise.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	err := h.ping(r.Context())

	statusCode := http.StatusOK
	status := "ready"
	if err != nil {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
	}

	NewResponseWriter(w, r).WriteWithStatus(statusCode, map[string]interface{}{
		"status":          status,
		"store_connected": err == nil,
	}, nil)
}

func (h *HealthHandler) ping(ctx context.Context) error {
	if h.store == nil {
		return errStoreNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return h.store.Ping(ctx)
}
