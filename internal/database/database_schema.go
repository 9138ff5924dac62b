// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
database_schema.go - Behavior Store Schema

Tables:
  - items: catalog listings (item_id, category, popularity)
  - item_tags: ordered tags per item (item_id, tag, tag_order)
  - behavior_events: the interaction log (user_id, item_id, action, ts, duration_ms)

Index Strategy:
  - behavior_events(user_id, ts) serves per-user history reads
  - behavior_events(item_id, action) serves co-occurrence reads
  - items(category, popularity) and items(popularity) serve candidate reads
    on MySQL only

DuckDB creates indexes with separate statements; MySQL declares them inline
because it has no CREATE INDEX IF NOT EXISTS. DuckDB rewrites indexed columns
as delete plus insert, so items carries no secondary index there and upserts
stay plain replaces. Tags are deleted and rewritten per item inside one
transaction, which DuckDB's unique constraints would reject for unchanged
tags, so uniqueness there is left to Item.Validate.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates tables and indexes for the active dialect
func (db *DB) createSchema(ctx context.Context) error {
	for _, query := range db.schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) schemaQueries() []string {
	if db.driver == DriverMySQL {
		return mysqlSchema
	}
	return duckDBSchema
}

var duckDBSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		item_id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		popularity BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS item_tags (
		item_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		tag_order INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS behavior_events (
		user_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		action TEXT NOT NULL,
		ts TIMESTAMP NOT NULL,
		duration_ms BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user_ts ON behavior_events(user_id, ts)`,
	`CREATE INDEX IF NOT EXISTS idx_events_item_action ON behavior_events(item_id, action)`,
	`CREATE INDEX IF NOT EXISTS idx_item_tags_item ON item_tags(item_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		item_id VARCHAR(191) NOT NULL PRIMARY KEY,
		category VARCHAR(191) NOT NULL,
		popularity BIGINT NOT NULL DEFAULT 0,
		INDEX idx_items_category (category, popularity),
		INDEX idx_items_popularity (popularity)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS item_tags (
		item_id VARCHAR(191) NOT NULL,
		tag VARCHAR(191) NOT NULL,
		tag_order INT NOT NULL,
		PRIMARY KEY (item_id, tag)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS behavior_events (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(191) NOT NULL,
		item_id VARCHAR(191) NOT NULL,
		action VARCHAR(32) NOT NULL,
		ts DATETIME(6) NOT NULL,
		duration_ms BIGINT NULL,
		INDEX idx_events_user_ts (user_id, ts),
		INDEX idx_events_item_action (item_id, action)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
