// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware uses the func(http.Handler) http.Handler shape so it plugs
straight into chi's Use.

  - RequestID: assigns or propagates X-Request-ID and stores it in the
    context for logging.Ctx and chi's GetReqID.
  - PrometheusMetrics: records api_requests_total and
    api_request_duration_seconds labelled by chi route pattern.
  - PerformanceMonitor: sliding-window latency percentiles per route,
    with a warning for requests slower than a threshold.

Typical order:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)
*/
package middleware
