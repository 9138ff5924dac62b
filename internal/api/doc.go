// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package api provides the HTTP REST API layer for Toolrank.

Key Components:

  - Router: chi route configuration and middleware stack
  - RecommendHandler: GET /api/v1/recommendations/{userID}
  - HealthHandler: liveness, readiness and status probes
  - ResponseWriter: the standardized APIResponse envelope
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)

Endpoints:

	GET /api/v1/recommendations/{userID}?type=&limit=
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /api/v1/health
	GET /metrics
	GET /swagger/*

Request Parameters:

type selects the recommender (hybrid, collaborative, content, popular);
absent or unknown values select hybrid. limit defaults to the engine's
default limit and is clamped to its maximum; non-numeric or non-positive
values are rejected with 400 VALIDATION_FAILED. userID must be printable
ASCII of at most 128 characters.

Error Mapping:

	validation failure      400 VALIDATION_FAILED
	rate limit exceeded     429 TOO_MANY_REQUESTS
	total failure / timeout 503 RECOMMENDATIONS_UNAVAILABLE

Middleware Order:

Request ID, real IP, panic recovery, CORS, gzip compression and latency
sampling apply to every route. Recommendation routes additionally get
rate limiting, security headers and Prometheus request metrics.

Usage Example:

	recommendHandler := api.NewRecommendHandler(engine)
	healthHandler := api.NewHealthHandler(db, engine, version).
	    WithBreaker(breakerStore).
	    WithSnapshot(popularity).
	    WithPerformance(perf)

	router := api.NewRouter(recommendHandler, healthHandler,
	    api.NewChiMiddlewareFromConfig(&cfg.Security), perf)
	handler := router.SetupChi()
*/
package api
