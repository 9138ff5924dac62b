// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package database

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/metrics"
	"github.com/tomtom215/toolrank/internal/recommend"
)

// userBatchSize bounds the user ids bound into one IN list, well under
// MySQL's 65,535 placeholder limit.
const userBatchSize = 1000

// Store implements recommend.BehaviorStore over SQL.
type Store struct {
	db        *DB
	timeout   time.Duration
	userBatch int
}

var _ recommend.BehaviorStore = (*Store)(nil)

// NewStore returns a store whose queries each run under the configured
// database query timeout.
func NewStore(db *DB) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &Store{db: db, timeout: db.cfg.QueryTimeout, userBatch: userBatchSize}, nil
}

// query runs fn under the query timeout and records its latency.
func (s *Store) query(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	metrics.RecordStoreQuery(op, s.db.driver, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecentPositiveActions implements recommend.BehaviorStore.
func (s *Store) RecentPositiveActions(ctx context.Context, userID string, limit int) ([]recommend.EventWithItem, error) {
	if limit == 0 {
		return nil, nil
	}

	var out []recommend.EventWithItem
	err := s.query(ctx, recommend.OpRecentPositiveActions, func(ctx context.Context) error {
		actionSQL, args := inClause(actionArgs(recommend.PositiveActions))
		q := `SELECT e.user_id, e.item_id, e.action, e.ts, e.duration_ms, i.category, i.popularity
			FROM behavior_events e
			JOIN items i ON i.item_id = e.item_id
			WHERE e.user_id = ? AND e.action IN ` + actionSQL + `
			ORDER BY e.ts DESC, e.item_id ASC` + limitClause(limit)
		args = append([]any{userID}, args...)

		rows, err := s.db.conn.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			var (
				ev       recommend.BehaviorEvent
				action   string
				duration sql.NullInt64
				item     recommend.Item
			)
			if err := rows.Scan(&ev.UserID, &ev.ItemID, &action, &ev.Timestamp, &duration, &item.Category, &item.Popularity); err != nil {
				return err
			}
			ev.Action = recommend.Action(action)
			ev.Duration = durationFromMillis(duration)
			ev.Timestamp = ev.Timestamp.UTC()
			item.ID = ev.ItemID
			if !validRow(recommend.OpRecentPositiveActions, ev.Validate(), item.Validate()) {
				continue
			}
			out = append(out, recommend.EventWithItem{BehaviorEvent: ev, Item: item})
		}
		if err := rows.Err(); err != nil {
			return err
		}

		ids := make([]string, len(out))
		for i := range out {
			ids[i] = out[i].ItemID
		}
		tags, err := s.loadTags(ctx, ids)
		if err != nil {
			return err
		}
		for i := range out {
			out[i].Item.Tags = recommend.NormalizeTags(tags[out[i].ItemID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UsersWhoActedOn implements recommend.BehaviorStore.
func (s *Store) UsersWhoActedOn(ctx context.Context, itemIDs []string, actions []recommend.Action, excludeUserID string) ([]recommend.BehaviorEvent, error) {
	if len(itemIDs) == 0 || len(actions) == 0 {
		return nil, nil
	}

	var out []recommend.BehaviorEvent
	err := s.query(ctx, recommend.OpUsersWhoActedOn, func(ctx context.Context) error {
		itemSQL, itemArgs := inClause(stringArgs(itemIDs))
		actionSQL, actArgs := inClause(actionArgs(actions))
		q := `SELECT user_id, item_id, action, ts, duration_ms
			FROM behavior_events
			WHERE item_id IN ` + itemSQL + ` AND action IN ` + actionSQL + ` AND user_id <> ?
			ORDER BY ts DESC, user_id ASC, item_id ASC`
		args := append(append(itemArgs, actArgs...), excludeUserID)

		var err error
		out, err = s.scanEvents(ctx, recommend.OpUsersWhoActedOn, q, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ActionsByUsers implements recommend.BehaviorStore. Large user sets are
// queried in batches of userBatch ids and merged in the same order a
// single query would return.
func (s *Store) ActionsByUsers(ctx context.Context, userIDs []string, actions []recommend.Action, limit int) ([]recommend.BehaviorEvent, error) {
	if len(userIDs) == 0 || len(actions) == 0 || limit == 0 {
		return nil, nil
	}

	var out []recommend.BehaviorEvent
	err := s.query(ctx, recommend.OpActionsByUsers, func(ctx context.Context) error {
		actionSQL, actArgs := inClause(actionArgs(actions))
		for batch := range slices.Chunk(userIDs, max(s.userBatch, 1)) {
			userSQL, userArgs := inClause(stringArgs(batch))
			q := `SELECT user_id, item_id, action, ts, duration_ms
				FROM behavior_events
				WHERE user_id IN ` + userSQL + ` AND action IN ` + actionSQL + `
				ORDER BY ts DESC, user_id ASC, item_id ASC` + limitClause(limit)

			events, err := s.scanEvents(ctx, recommend.OpActionsByUsers, q, append(userArgs, actArgs...))
			if err != nil {
				return err
			}
			out = append(out, events...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(userIDs) > s.userBatch {
		slices.SortFunc(out, func(a, b recommend.BehaviorEvent) int {
			if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
				return c
			}
			if c := cmp.Compare(a.UserID, b.UserID); c != 0 {
				return c
			}
			return cmp.Compare(a.ItemID, b.ItemID)
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

// ItemsByCategory implements recommend.BehaviorStore.
func (s *Store) ItemsByCategory(ctx context.Context, categories []string, limit int) ([]recommend.Item, error) {
	if len(categories) == 0 || limit == 0 {
		return nil, nil
	}

	var out []recommend.Item
	err := s.query(ctx, recommend.OpItemsByCategory, func(ctx context.Context) error {
		catSQL, args := inClause(stringArgs(categories))
		q := `SELECT item_id, category, popularity FROM items
			WHERE category IN ` + catSQL + `
			ORDER BY popularity DESC, item_id ASC` + limitClause(limit)

		var err error
		out, err = s.scanItems(ctx, recommend.OpItemsByCategory, q, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TopPopularItems implements recommend.BehaviorStore.
func (s *Store) TopPopularItems(ctx context.Context, limit int) ([]recommend.Item, error) {
	if limit == 0 {
		return nil, nil
	}

	var out []recommend.Item
	err := s.query(ctx, recommend.OpTopPopularItems, func(ctx context.Context) error {
		q := `SELECT item_id, category, popularity FROM items
			ORDER BY popularity DESC, item_id ASC` + limitClause(limit)

		var err error
		out, err = s.scanItems(ctx, recommend.OpTopPopularItems, q, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) scanEvents(ctx context.Context, op, q string, args []any) ([]recommend.BehaviorEvent, error) {
	rows, err := s.db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	var out []recommend.BehaviorEvent
	for rows.Next() {
		var (
			ev       recommend.BehaviorEvent
			action   string
			duration sql.NullInt64
		)
		if err := rows.Scan(&ev.UserID, &ev.ItemID, &action, &ev.Timestamp, &duration); err != nil {
			return nil, err
		}
		ev.Action = recommend.Action(action)
		ev.Duration = durationFromMillis(duration)
		ev.Timestamp = ev.Timestamp.UTC()
		if !validRow(op, ev.Validate()) {
			continue
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) scanItems(ctx context.Context, op, q string, args []any) ([]recommend.Item, error) {
	rows, err := s.db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	var out []recommend.Item
	for rows.Next() {
		var item recommend.Item
		if err := rows.Scan(&item.ID, &item.Category, &item.Popularity); err != nil {
			closeQuietly(rows)
			return nil, err
		}
		if !validRow(op, item.Validate()) {
			continue
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, err
	}
	closeWithLog(rows, "rows")

	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	tags, err := s.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Tags = recommend.NormalizeTags(tags[out[i].ID])
	}
	return out, nil
}

// loadTags returns the ordered tags of each item id.
func (s *Store) loadTags(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	ids := uniqueStrings(itemIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	idSQL, args := inClause(stringArgs(ids))
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT item_id, tag FROM item_tags WHERE item_id IN `+idSQL+` ORDER BY item_id, tag_order`,
		args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	tags := make(map[string][]string, len(ids))
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

// validRow reports whether every check passed, logging the rejected row.
func validRow(op string, errs ...error) bool {
	for _, err := range errs {
		if err != nil {
			logging.Debug().Str("operation", op).Err(err).Msg("Skipping invalid store row")
			return false
		}
	}
	return true
}

func durationFromMillis(ms sql.NullInt64) *time.Duration {
	if !ms.Valid || ms.Int64 < 0 {
		return nil
	}
	d := time.Duration(ms.Int64) * time.Millisecond
	return &d
}

// inClause returns "(?, ?, ...)" for args.
func inClause(args []any) (string, []any) {
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ") + ")", args
}

// limitClause renders a LIMIT for non-negative limits; negative means unbounded.
func limitClause(limit int) string {
	if limit < 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func actionArgs(actions []recommend.Action) []any {
	args := make([]any, len(actions))
	for i, a := range actions {
		args[i] = string(a)
	}
	return args
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
