// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package database provides the SQL-backed behavior store for Toolrank.
//
// # Overview
//
// The package owns the connection pool, the schema and every SQL statement
// the service runs. The recommenders only see the read-only
// recommend.BehaviorStore interface implemented by Store.
//
// # Architecture
//
//   - database.go: driver selection, connection strings, pool sizing, lifecycle
//   - database_schema.go: per-dialect DDL for items, item_tags and behavior_events
//   - store.go: the five BehaviorStore reads, each under the query timeout
//   - breaker.go: BreakerStore, a sony/gobreaker circuit breaker around any store
//   - write.go: InsertItems and InsertEvents, used by seeding and tests
//   - seed.go: YAML fixtures (SeedFromFile) and demo data (SeedMockData)
//
// # Drivers
//
// DuckDB (github.com/duckdb/duckdb-go/v2) is the default and suits a single
// node; ":memory:" opens a throwaway database. MySQL
// (github.com/go-sql-driver/mysql) is selected with DB_DRIVER=mysql and
// MYSQL_DSN. The DSN is parsed and re-encoded with parseTime enabled so
// DATETIME columns scan into time.Time.
//
// # Row Validation
//
// Rows are coerced through recommend.Item.Validate and
// recommend.BehaviorEvent.Validate. Rows with an empty id or category or an
// unknown action are skipped with a debug log; negative popularity is clamped
// and blank or duplicate tags are dropped.
//
// # Resilience
//
// Wrap the store in this order:
//
//	store, _ := database.NewStore(db)
//	guarded := database.NewBreakerStore(store, &cfg.Breaker, database.BehaviorStoreBreakerName)
//	bounded := recommend.Bounded(guarded, cfg.Recommend.StoreTimeout)
//
// Store applies DB_QUERY_TIMEOUT to each statement, the breaker sheds load
// while the database is failing, and recommend.Bounded turns any failure,
// including a rejected call, into recommend.ErrDataUnavailable.
//
// # Metrics
//
// Every query records store_query_duration_seconds{operation,driver} and, on
// failure, store_query_errors_total. The breaker exports circuit_breaker_*.
package database
