// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// InsertItems inserts or replaces items and their tags in one transaction.
func (db *DB) InsertItems(ctx context.Context, items []recommend.Item) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		return db.insertItems(ctx, tx, items)
	})
}

// InsertEvents appends events to the behavior log in one transaction.
func (db *DB) InsertEvents(ctx context.Context, events []recommend.BehaviorEvent) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		return db.insertEvents(ctx, tx, events)
	})
}

func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		rollbackQuietly(tx)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *DB) upsertItemSQL() string {
	if db.driver == DriverMySQL {
		return `REPLACE INTO items (item_id, category, popularity) VALUES (?, ?, ?)`
	}
	return `INSERT OR REPLACE INTO items (item_id, category, popularity) VALUES (?, ?, ?)`
}

func (db *DB) insertItems(ctx context.Context, tx *sql.Tx, items []recommend.Item) error {
	if len(items) == 0 {
		return nil
	}

	itemStmt, err := tx.PrepareContext(ctx, db.upsertItemSQL())
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer closeWithLog(itemStmt, "prepared statement")

	tagStmt, err := tx.PrepareContext(ctx, `INSERT INTO item_tags (item_id, tag, tag_order) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer closeWithLog(tagStmt, "prepared statement")

	for i := range items {
		item := items[i]
		item.Tags = append([]string(nil), item.Tags...)
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if _, err := itemStmt.ExecContext(ctx, item.ID, item.Category, item.Popularity); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = ?`, item.ID); err != nil {
			return fmt.Errorf("failed to clear tags of item %s: %w", item.ID, err)
		}
		for order, tag := range item.Tags {
			if _, err := tagStmt.ExecContext(ctx, item.ID, tag, order); err != nil {
				return fmt.Errorf("failed to insert tag %q of item %s: %w", tag, item.ID, err)
			}
		}
	}
	return nil
}

func (db *DB) insertEvents(ctx context.Context, tx *sql.Tx, events []recommend.BehaviorEvent) error {
	if len(events) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO behavior_events (user_id, item_id, action, ts, duration_ms) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range events {
		ev := events[i]
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if ev.Timestamp.IsZero() {
			return fmt.Errorf("event %d: missing timestamp", i)
		}

		var duration sql.NullInt64
		if ev.Duration != nil {
			duration = sql.NullInt64{Int64: ev.Duration.Milliseconds(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, ev.UserID, ev.ItemID, string(ev.Action), ev.Timestamp.UTC().Truncate(time.Microsecond), duration); err != nil {
			return fmt.Errorf("failed to insert event %d: %w", i, err)
		}
	}
	return nil
}
