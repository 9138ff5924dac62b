// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Recommender produces a ranked list for one user.
type Recommender interface {
	// Name identifies the recommender in logs, metrics and responses.
	Name() string

	// Recommend returns at most limit scores. A returned error means the
	// recommender could not produce any list, including a fallback.
	Recommend(ctx context.Context, userID string, limit int) (Result, error)
}

// Hybrid runs the collaborative, content and popularity recommenders
// concurrently and merges their lists.
type Hybrid struct {
	collaborative Recommender
	content       Recommender
	popular       Recommender
	config        HybridConfig
	logger        zerolog.Logger
}

// NewHybrid creates a hybrid recommender. Any channel may be nil, in which
// case it contributes nothing.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHybrid(collaborative, content, popular Recommender, cfg HybridConfig, logger zerolog.Logger) *Hybrid {
	return &Hybrid{
		collaborative: collaborative,
		content:       content,
		popular:       popular,
		config:        cfg,
		logger:        logger.With().Str("component", "hybrid").Logger(),
	}
}

// Name returns "hybrid".
func (h *Hybrid) Name() string {
	return string(KindHybrid)
}

// channelRun holds one channel's share of the work and its outcome.
type channelRun struct {
	recommender Recommender
	limit       int
	result      Result
	err         error
	ran         bool
}

// Recommend fans out to the channels and merges them in fixed order:
// collaborative, content, popular. An item's first appearance contributes
// its full score; later appearances add RepeatWeight times their score and
// union their reasons.
func (h *Hybrid) Recommend(ctx context.Context, userID string, limit int) (Result, error) {
	if limit <= 0 {
		return Success([]Score{}), nil
	}

	collabN, contentN, popularN := h.config.SubLimits(limit)
	runs := []*channelRun{
		{recommender: h.collaborative, limit: collabN},
		{recommender: h.content, limit: contentN},
		{recommender: h.popular, limit: popularN},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, run := range runs {
		if run.recommender == nil || run.limit <= 0 {
			continue
		}
		run.ran = true
		g.Go(func() error {
			res, err := run.recommender.Recommend(gctx, userID, run.limit)
			if err != nil {
				// Only the caller's cancellation aborts the group.
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				h.logger.Warn().
					Str("recommender", run.recommender.Name()).
					Str("user_id", userID).
					Err(err).
					Msg("channel failed, contributing no items")
				run.err = err
				return nil
			}
			run.result = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	channels := make([]ChannelOutcome, 0, len(runs)+1)
	ran, failed := 0, 0
	for _, run := range runs {
		if !run.ran {
			continue
		}
		ran++
		channels = append(channels, channelOutcome(run.recommender.Name(), run.result, run.err))
		if run.err != nil {
			failed++
		}
	}

	if ran > 0 && failed == ran {
		return h.lastResort(ctx, userID, limit, channels)
	}

	merged := make(map[string]*Score)
	for _, run := range runs {
		if !run.ran || run.err != nil {
			continue
		}
		for _, s := range run.result.Scores {
			if existing, ok := merged[s.ItemID]; ok {
				existing.Score += h.config.RepeatWeight * s.Score
				existing.Reasons = existing.Reasons.Union(s.Reasons)
				continue
			}
			merged[s.ItemID] = &Score{ItemID: s.ItemID, Score: s.Score, Reasons: s.Reasons.Clone()}
		}
	}

	res := Success(Rank(merged, limit))
	res.Channels = channels
	return res, nil
}

// lastResort makes one full-limit popularity call after every channel failed.
func (h *Hybrid) lastResort(ctx context.Context, userID string, limit int, channels []ChannelOutcome) (Result, error) {
	if h.popular == nil {
		return Result{}, fmt.Errorf("%w: all channels failed", ErrTotalFailure)
	}

	res, err := h.popular.Recommend(ctx, userID, limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, fmt.Errorf("%w: all channels failed, last popularity call: %v", ErrTotalFailure, err)
	}

	h.logger.Warn().
		Str("user_id", userID).
		Int("items", len(res.Scores)).
		Msg("all channels failed, served popularity list")

	out := Fallback(ReasonDataUnavailable, Truncate(res.Scores, limit))
	out.Channels = append(channels, channelOutcome(h.popular.Name(), res, nil))
	return out, nil
}

func channelOutcome(name string, res Result, err error) ChannelOutcome {
	if err != nil {
		return ChannelOutcome{Recommender: name, Error: err.Error()}
	}
	return ChannelOutcome{
		Recommender: name,
		Outcome:     res.Outcome,
		Reason:      res.Reason,
		Items:       len(res.Scores),
	}
}
