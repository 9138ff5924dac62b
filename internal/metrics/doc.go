// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry with promauto and updated
through small Record* helpers so call sites stay one line long.

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Behavior store:
  - store_query_duration_seconds{operation, driver}: query latency (histogram)
  - store_query_errors_total{operation, driver, error_type}: failed queries
    error_type is timeout, canceled or other

Recommendations:
  - recommendations_total{type, outcome}: responses by type and outcome
  - recommendation_fallbacks_total{recommender, reason}: popularity fallbacks
  - recommendation_failures_total{recommender}: recommender errors
  - recommendation_items_returned: items per response (histogram)
  - popularity_snapshot_age_seconds: age of the last-known-good list
  - warmup_refreshes_total{result}: snapshot refreshes

Result cache:
  - cache_hits_total{backend}, cache_misses_total{backend}
  - cache_errors_total{backend, operation}
  - cache_entries{backend}: in-process entry count

Circuit breaker:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}: success, failure, rejected
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

HTTP API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Process:
  - log_messages_dropped_total: messages dropped by the async log writer
  - app_info{version, go_version}, app_uptime_seconds

# Alerting Example

	groups:
	  - name: toolrank
	    rules:
	      - alert: BehaviorStoreCircuitOpen
	        expr: circuit_breaker_state{name="behavior-store"} == 2
	        for: 1m
	      - alert: RecommendationFallbackRate
	        expr: sum(rate(recommendation_fallbacks_total{reason="data_unavailable"}[5m])) > 1
	        for: 5m
*/
package metrics
