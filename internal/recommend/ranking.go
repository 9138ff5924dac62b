// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"math"
	"sort"
)

// SortScores orders by score descending, ties by item id ascending.
func SortScores(scores []Score) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ItemID < scores[j].ItemID
	})
}

// Truncate limits scores to at most limit entries.
func Truncate(scores []Score, limit int) []Score {
	if limit < 0 {
		limit = 0
	}
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// Rank flattens an accumulator map into a sorted list of at most limit scores.
func Rank(acc map[string]*Score, limit int) []Score {
	scores := make([]Score, 0, len(acc))
	for _, s := range acc {
		scores = append(scores, *s)
	}
	SortScores(scores)
	return Truncate(scores, limit)
}

// shareOf returns ceil(limit*share). The epsilon absorbs float error such
// as 10*0.3 landing just above 3.
func shareOf(limit int, share float64) int {
	if limit <= 0 || share <= 0 {
		return 0
	}
	return int(math.Ceil(float64(limit)*share - 1e-9))
}
