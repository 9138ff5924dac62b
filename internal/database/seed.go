// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/validation"
)

// SeedFixture is the YAML layout accepted by SeedFromFile.
type SeedFixture struct {
	Items  []SeedItem  `yaml:"items" validate:"dive"`
	Events []SeedEvent `yaml:"events" validate:"dive"`
}

// SeedItem is one catalog entry in a fixture.
type SeedItem struct {
	ID         string   `yaml:"item_id" validate:"notblank_id"`
	Category   string   `yaml:"category" validate:"required"`
	Tags       []string `yaml:"tags"`
	Popularity int64    `yaml:"popularity" validate:"gte=0"`
}

// SeedEvent is one behavior event in a fixture.
type SeedEvent struct {
	UserID     string    `yaml:"user_id" validate:"notblank_id"`
	ItemID     string    `yaml:"item_id" validate:"notblank_id"`
	Action     string    `yaml:"action" validate:"behavior_action"`
	Timestamp  time.Time `yaml:"timestamp" validate:"required"`
	DurationMS *int64    `yaml:"duration_ms" validate:"omitempty,gte=0"`
}

// LoadSeedFixture reads and validates a fixture file.
func LoadSeedFixture(path string) (*SeedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture SeedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if verr := validation.ValidateStruct(&fixture); verr != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, verr)
	}
	return &fixture, nil
}

// Records converts the fixture into store records.
func (f *SeedFixture) Records() ([]recommend.Item, []recommend.BehaviorEvent) {
	items := make([]recommend.Item, len(f.Items))
	for i, it := range f.Items {
		items[i] = recommend.Item{ID: it.ID, Category: it.Category, Tags: it.Tags, Popularity: it.Popularity}
	}

	events := make([]recommend.BehaviorEvent, len(f.Events))
	for i, ev := range f.Events {
		events[i] = recommend.BehaviorEvent{
			UserID:    ev.UserID,
			ItemID:    ev.ItemID,
			Action:    recommend.Action(ev.Action),
			Timestamp: ev.Timestamp,
		}
		if ev.DurationMS != nil {
			d := time.Duration(*ev.DurationMS) * time.Millisecond
			events[i].Duration = &d
		}
	}
	return items, events
}

// SeedFromFile loads a YAML fixture and inserts it in one transaction.
func (db *DB) SeedFromFile(ctx context.Context, path string) error {
	fixture, err := LoadSeedFixture(path)
	if err != nil {
		return err
	}
	items, events := fixture.Records()

	if err := db.inTx(ctx, func(tx *sql.Tx) error {
		if err := db.insertItems(ctx, tx, items); err != nil {
			return err
		}
		return db.insertEvents(ctx, tx, events)
	}); err != nil {
		return fmt.Errorf("failed to seed from %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("items", len(items)).
		Int("events", len(events)).
		Msg("Seeded behavior store from file")
	return nil
}

// mockSeed keeps SeedMockData reproducible across runs.
const mockSeed = 20260101

// MockEpoch is the start of the mock activity window.
var MockEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type mockTool struct {
	id       string
	category string
	tags     []string
}

var mockCatalog = []mockTool{
	{"chatgpt", "assistant", []string{"llm", "chat", "writing"}},
	{"claude", "assistant", []string{"llm", "chat", "analysis"}},
	{"gemini", "assistant", []string{"llm", "chat", "multimodal"}},
	{"perplexity", "search", []string{"llm", "search", "citations"}},
	{"phind", "search", []string{"search", "coding"}},
	{"copilot", "coding", []string{"coding", "autocomplete", "ide"}},
	{"cursor", "coding", []string{"coding", "ide", "agent"}},
	{"codeium", "coding", []string{"coding", "autocomplete"}},
	{"tabnine", "coding", []string{"coding", "autocomplete", "privacy"}},
	{"midjourney", "image", []string{"image", "generation", "art"}},
	{"dall-e", "image", []string{"image", "generation"}},
	{"stable-diffusion", "image", []string{"image", "generation", "open-source"}},
	{"runway", "video", []string{"video", "generation", "editing"}},
	{"pika", "video", []string{"video", "generation"}},
	{"elevenlabs", "audio", []string{"audio", "voice", "tts"}},
	{"suno", "audio", []string{"audio", "music", "generation"}},
	{"notion-ai", "productivity", []string{"writing", "notes"}},
	{"grammarly", "productivity", []string{"writing", "editing"}},
	{"otter", "productivity", []string{"audio", "transcription", "meetings"}},
	{"jasper", "marketing", []string{"writing", "marketing", "copy"}},
}

// SeedMockData fills the store with a deterministic demo catalog of AI tools
// and a month of behavior events. Intended for local runs and demos only.
// A store that already holds events is left untouched.
func (db *DB) SeedMockData(ctx context.Context) error {
	var existing int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM behavior_events`).Scan(&existing); err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if existing > 0 {
		logging.Info().Int64("events", existing).Msg("Skipping mock data seeding, store already has events")
		return nil
	}

	logging.Info().Msg("Seeding behavior store with mock data...")

	const (
		numUsers       = 25
		eventsPerUser  = 30
		daysOfActivity = 30
	)

	rng := rand.New(rand.NewSource(mockSeed)) //nolint:gosec // demo data, not security sensitive

	items := make([]recommend.Item, len(mockCatalog))
	for i, entry := range mockCatalog {
		items[i] = recommend.Item{
			ID:         entry.id,
			Category:   entry.category,
			Tags:       entry.tags,
			Popularity: int64(1000 - i*40 + rng.Intn(40)),
		}
	}

	actions := []recommend.Action{
		recommend.ActionView, recommend.ActionView, recommend.ActionView,
		recommend.ActionLike, recommend.ActionLike,
		recommend.ActionBookmark,
		recommend.ActionComment,
		recommend.ActionShare,
	}

	events := make([]recommend.BehaviorEvent, 0, numUsers*eventsPerUser)
	for u := 0; u < numUsers; u++ {
		userID := fmt.Sprintf("user-%03d", u+1)
		// Each user leans towards two categories so neighbours emerge.
		favourite := mockCatalog[u%len(mockCatalog)].category
		second := mockCatalog[(u*7+3)%len(mockCatalog)].category

		for e := 0; e < eventsPerUser; e++ {
			entry := mockCatalog[rng.Intn(len(mockCatalog))]
			if rng.Intn(3) > 0 {
				want := favourite
				if rng.Intn(2) == 0 {
					want = second
				}
				entry = pickCategory(rng, want)
			}

			ts := MockEpoch.Add(time.Duration(rng.Int63n(int64(daysOfActivity * 24 * time.Hour))))
			ev := recommend.BehaviorEvent{
				UserID:    userID,
				ItemID:    entry.id,
				Action:    actions[rng.Intn(len(actions))],
				Timestamp: ts,
			}
			if ev.Action == recommend.ActionView {
				d := time.Duration(5+rng.Intn(300)) * time.Second
				ev.Duration = &d
			}
			events = append(events, ev)
		}
	}

	if err := db.inTx(ctx, func(tx *sql.Tx) error {
		if err := db.insertItems(ctx, tx, items); err != nil {
			return err
		}
		return db.insertEvents(ctx, tx, events)
	}); err != nil {
		return fmt.Errorf("failed to seed mock data: %w", err)
	}

	logging.Info().
		Int("items", len(items)).
		Int("users", numUsers).
		Int("events", len(events)).
		Msg("Mock data seeding completed")
	return nil
}

// pickCategory returns a random catalog entry in category.
func pickCategory(rng *rand.Rand, category string) mockTool {
	var matches []int
	for i, entry := range mockCatalog {
		if entry.category == category {
			matches = append(matches, i)
		}
	}
	return mockCatalog[matches[rng.Intn(len(matches))]]
}
