// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package catalog

import "math"

// ComputeScore maps raw popularity signals to the recommendability score.
//
// The formula is load-bearing for dataset compatibility and must not change:
//
//	normalized = averageRating * 10
//	voteWeight = log10(voteCount+1) / 4
//	availability = min(1, 0.7 + providerCount*0.15)
//	score = round(normalized*0.6 + normalized*voteWeight*0.25 + normalized*availability*0.15)
//
// The result is clamped to [0,100]. Inputs are expected to be clamped
// upstream; the function is pure and never fails.
func ComputeScore(averageRating float64, voteCount, providerCount int) int {
	normalized := averageRating * 10

	voteWeight := math.Log10(float64(voteCount)+1) / 4
	availability := math.Min(1, 0.7+float64(providerCount)*0.15)

	score := int(math.Round(normalized*0.6 + normalized*voteWeight*0.25 + normalized*availability*0.15))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
