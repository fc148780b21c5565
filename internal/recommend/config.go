// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import "fmt"

// Config carries the tunable constants of the filter, sampler and
// similar-titles ranking. The score thresholds and similarity weights are
// heuristics with no documented rationale; they live here instead of being
// hard-coded so they can be tuned without touching the pipeline.
type Config struct {
	// SampleSize is the default shortlist size.
	SampleSize int `json:"sample_size" koanf:"sample_size"`

	// MaxSampleSize caps caller-supplied sample sizes.
	MaxSampleSize int `json:"max_sample_size" koanf:"max_sample_size"`

	// SimilarLimit is the default result count for similar-titles ranking.
	SimilarLimit int `json:"similar_limit" koanf:"similar_limit"`

	// Thresholds holds the minimum-score constraints of the answer filter.
	Thresholds Thresholds `json:"thresholds" koanf:"thresholds"`

	// Durations holds the short-session duration cutoffs in minutes.
	Durations Durations `json:"durations" koanf:"durations"`

	// Similarity holds the similar-titles scoring weights.
	Similarity SimilarityWeights `json:"similarity" koanf:"similarity"`
}

// Thresholds holds minimum recommendability scores per answer.
type Thresholds struct {
	// Couple applies to the partner and family companions.
	Couple int `json:"couple" koanf:"couple"`

	// Friends applies to the friends companion.
	Friends int `json:"friends" koanf:"friends"`

	// Laugh applies to the laugh mood (combined with a short duration).
	Laugh int `json:"laugh" koanf:"laugh"`

	// Immerse applies to the immerse and think moods.
	Immerse int `json:"immerse" koanf:"immerse"`

	// MustWatch applies to the must-watch preset.
	MustWatch int `json:"must_watch" koanf:"must_watch"`

	// HiddenGem and HiddenGemMaxVotes apply to the hidden-gem preset.
	HiddenGem         int `json:"hidden_gem" koanf:"hidden_gem"`
	HiddenGemMaxVotes int `json:"hidden_gem_max_votes" koanf:"hidden_gem_max_votes"`
}

// Durations holds the short-session cutoffs in minutes.
type Durations struct {
	// ShortMovie is the movie runtime cutoff for "right now" viewing.
	ShortMovie int `json:"short_movie" koanf:"short_movie"`

	// ShortEpisode is the episode runtime cutoff for "right now" viewing.
	ShortEpisode int `json:"short_episode" koanf:"short_episode"`
}

// SimilarityWeights holds the similar-titles scoring constants:
// SharedProvider × shared providers, plus ScoreClose when the score gap is
// within CloseScoreGap (else ScoreNear within NearScoreGap), plus SameYear.
type SimilarityWeights struct {
	SharedProvider int `json:"shared_provider" koanf:"shared_provider"`
	ScoreClose     int `json:"score_close" koanf:"score_close"`
	ScoreNear      int `json:"score_near" koanf:"score_near"`
	SameYear       int `json:"same_year" koanf:"same_year"`
	CloseScoreGap  int `json:"close_score_gap" koanf:"close_score_gap"`
	NearScoreGap   int `json:"near_score_gap" koanf:"near_score_gap"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		SampleSize:    10,
		MaxSampleSize: 50,
		SimilarLimit:  6,
		Thresholds: Thresholds{
			Couple:            75,
			Friends:           70,
			Laugh:             75,
			Immerse:           80,
			MustWatch:         85,
			HiddenGem:         75,
			HiddenGemMaxVotes: 5000,
		},
		Durations: Durations{
			ShortMovie:   120,
			ShortEpisode: 40,
		},
		Similarity: SimilarityWeights{
			SharedProvider: 3,
			ScoreClose:     3,
			ScoreNear:      2,
			SameYear:       1,
			CloseScoreGap:  5,
			NearScoreGap:   10,
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if c.MaxSampleSize < c.SampleSize {
		return fmt.Errorf("max_sample_size %d below sample_size %d", c.MaxSampleSize, c.SampleSize)
	}
	if c.SimilarLimit <= 0 {
		return fmt.Errorf("similar_limit must be positive, got %d", c.SimilarLimit)
	}
	if c.Durations.ShortMovie <= 0 || c.Durations.ShortEpisode <= 0 {
		return fmt.Errorf("duration cutoffs must be positive")
	}
	if c.Similarity.CloseScoreGap > c.Similarity.NearScoreGap {
		return fmt.Errorf("close_score_gap %d above near_score_gap %d",
			c.Similarity.CloseScoreGap, c.Similarity.NearScoreGap)
	}
	return nil
}
