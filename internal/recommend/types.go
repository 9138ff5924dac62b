// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// Action is the kind of interaction recorded in the behavior log.
type Action string

const (
	ActionView     Action = "view"
	ActionLike     Action = "like"
	ActionBookmark Action = "bookmark"
	ActionComment  Action = "comment"
	ActionShare    Action = "share"
)

// PositiveActions are the actions that count as a positive signal.
var PositiveActions = []Action{ActionLike, ActionBookmark}

// IsPositive reports whether the action is a like or a bookmark.
func (a Action) IsPositive() bool {
	return a == ActionLike || a == ActionBookmark
}

// Valid reports whether the action is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionLike, ActionBookmark, ActionComment, ActionShare:
		return true
	default:
		return false
	}
}

// ParseAction parses a case-insensitive action name.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// BehaviorEvent is a single user interaction with an item.
type BehaviorEvent struct {
	UserID    string         `json:"user_id" yaml:"user_id"`
	ItemID    string         `json:"item_id" yaml:"item_id"`
	Action    Action         `json:"action" yaml:"action"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Duration  *time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Validate checks the event at the store boundary.
func (e *BehaviorEvent) Validate() error {
	e.UserID = strings.TrimSpace(e.UserID)
	e.ItemID = strings.TrimSpace(e.ItemID)
	if e.UserID == "" {
		return fmt.Errorf("event: empty user id")
	}
	if e.ItemID == "" {
		return fmt.Errorf("event: empty item id")
	}
	action, err := ParseAction(string(e.Action))
	if err != nil {
		return fmt.Errorf("event %s/%s: %w", e.UserID, e.ItemID, err)
	}
	e.Action = action
	if e.Duration != nil && *e.Duration < 0 {
		e.Duration = nil
	}
	return nil
}

// Item is a catalog listing that can be recommended.
type Item struct {
	ID         string   `json:"item_id" yaml:"item_id"`
	Category   string   `json:"category" yaml:"category"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Popularity int64    `json:"popularity" yaml:"popularity"`
}

// Validate coerces an item read from a store into its fixed shape.
// Blank and duplicate tags are dropped and negative popularity is clamped.
func (it *Item) Validate() error {
	it.ID = strings.TrimSpace(it.ID)
	it.Category = strings.TrimSpace(it.Category)
	if it.ID == "" {
		return fmt.Errorf("item: empty id")
	}
	if it.Category == "" {
		return fmt.Errorf("item %s: empty category", it.ID)
	}
	if it.Popularity < 0 {
		it.Popularity = 0
	}

	it.Tags = NormalizeTags(it.Tags)
	return nil
}

// NormalizeTags trims tags and drops blank and repeated ones, keeping the
// first occurrence order. A nil or empty input is returned unchanged.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// EventWithItem is a behavior event joined with the item it refers to.
type EventWithItem struct {
	BehaviorEvent
	Item Item `json:"item"`
}

// Reasons is an ordered set of short explanation strings.
type Reasons []string

// NewReasons builds a set from rs, dropping duplicates.
func NewReasons(rs ...string) Reasons {
	var out Reasons
	for _, r := range rs {
		out = out.Add(r)
	}
	return out
}

// Contains reports whether r is in the set.
func (rs Reasons) Contains(r string) bool {
	for _, existing := range rs {
		if existing == r {
			return true
		}
	}
	return false
}

// Add appends r unless it is already present.
func (rs Reasons) Add(r string) Reasons {
	if r == "" || rs.Contains(r) {
		return rs
	}
	return append(rs, r)
}

// Union appends every member of other not already in rs.
func (rs Reasons) Union(other Reasons) Reasons {
	for _, r := range other {
		rs = rs.Add(r)
	}
	return rs
}

// Clone returns a copy that does not share backing storage.
func (rs Reasons) Clone() Reasons {
	if rs == nil {
		return nil
	}
	out := make(Reasons, len(rs))
	copy(out, rs)
	return out
}

// Slice returns the members in insertion order.
func (rs Reasons) Slice() []string {
	return []string(rs.Clone())
}

// Score is a ranked item with the reasons it was recommended.
type Score struct {
	ItemID  string  `json:"item_id"`
	Score   float64 `json:"score"`
	Reasons Reasons `json:"reasons"`
}

// Kind selects which recommender serves a request.
type Kind string

const (
	KindHybrid        Kind = "hybrid"
	KindCollaborative Kind = "collaborative"
	KindContent       Kind = "content"
	KindPopular       Kind = "popular"
)

// Kinds lists every supported recommender kind.
func Kinds() []Kind {
	return []Kind{KindHybrid, KindCollaborative, KindContent, KindPopular}
}

// ParseKind maps a request parameter to a Kind. Empty or unknown values
// select the hybrid recommender.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCollaborative, KindContent, KindPopular, KindHybrid:
		return k
	case "content-based", "content_based":
		return KindContent
	case "popularity":
		return KindPopular
	default:
		return KindHybrid
	}
}

// Outcome classifies how a recommender produced its list.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
)

// FallbackReason explains a fallback outcome.
type FallbackReason string

const (
	ReasonNone            FallbackReason = ""
	ReasonEmptySignal     FallbackReason = "empty_signal"
	ReasonDataUnavailable FallbackReason = "data_unavailable"
	ReasonNoCandidates    FallbackReason = "no_candidates"
	ReasonStaleSnapshot   FallbackReason = "stale_snapshot"
)

// Result is what a single recommender returns.
type Result struct {
	Scores  []Score
	Outcome Outcome
	Reason  FallbackReason

	// Channels is set by recommenders that combine others.
	Channels []ChannelOutcome
}

// Success wraps scores produced from the recommender's own signal.
func Success(scores []Score) Result {
	return Result{Scores: scores, Outcome: OutcomeSuccess}
}

// Fallback wraps scores produced by a fallback path.
func Fallback(reason FallbackReason, scores []Score) Result {
	return Result{Scores: scores, Outcome: OutcomeFallback, Reason: reason}
}

// ChannelOutcome reports how one recommender contributed to a response.
type ChannelOutcome struct {
	Recommender string         `json:"recommender"`
	Outcome     Outcome        `json:"outcome,omitempty"`
	Reason      FallbackReason `json:"reason,omitempty"`
	Items       int            `json:"items"`
	Error       string         `json:"error,omitempty"`
}

// Degraded reports whether the channel failed or served data that may be stale.
func (c ChannelOutcome) Degraded() bool {
	return c.Error != "" || c.Reason == ReasonDataUnavailable || c.Reason == ReasonStaleSnapshot
}

// Request is a recommendation request.
type Request struct {
	UserID    string `json:"user_id"`
	Kind      Kind   `json:"type"`
	Limit     int    `json:"limit"`
	RequestID string `json:"request_id,omitempty"`
}

// Response is the engine's answer to a Request.
type Response struct {
	UserID   string           `json:"user_id"`
	Kind     Kind             `json:"type"`
	Items    []Score          `json:"items"`
	Outcomes []ChannelOutcome `json:"outcomes"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries request bookkeeping.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	Limit       int       `json:"limit"`
	LatencyMS   int64     `json:"latency_ms"`
	CacheHit    bool      `json:"cache_hit"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests      int64 `json:"requests"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	Fallbacks     int64 `json:"fallbacks"`
	TotalFailures int64 `json:"total_failures"`
}
