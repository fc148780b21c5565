// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashlight2510/pick/internal/catalog"
)

// Picker filters the catalog by a set of answers and draws a random
// shortlist from the result. Safe for concurrent use; the random source is
// guarded by a mutex because rand.Rand is not.
type Picker struct {
	cfg    *Config
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Result is one recommendation round.
type Result struct {
	// Items is the sampled shortlist, at most SampleSize entries.
	Items []catalog.TitleRecord `json:"items"`

	// PoolSize is the size of the sampling pool after fallback handling.
	PoolSize int `json:"pool_size"`

	// FilteredCount is the number of titles that matched the answers before
	// any fallback.
	FilteredCount int `json:"filtered_count"`

	// FellBack reports whether the full catalog replaced an empty match set.
	FellBack bool `json:"fell_back"`

	// SampleSize is the effective shortlist cap used for this round.
	SampleSize int `json:"sample_size"`
}

// NewPicker builds a Picker. A nil source gets a time-seeded one, which is
// the production configuration; tests inject a fixed seed for golden output.
func NewPicker(cfg *Config, logger zerolog.Logger, src rand.Source) (*Picker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(src),
	}, nil
}

// Recommend filters titles by the answers and samples a shortlist without
// replacement. A zero or negative sampleSize uses the configured default;
// oversized requests are capped.
//
// When the filter matches nothing and no strict answer is active, the whole
// catalog becomes the pool instead. A strict answer (actor search or genre
// selection) honors the empty result: zero recommendations beat ignoring an
// explicit constraint.
func (p *Picker) Recommend(titles []catalog.TitleRecord, answers *AnswerSet, sampleSize int) *Result {
	if answers == nil {
		answers = &AnswerSet{}
	}
	if sampleSize <= 0 {
		sampleSize = p.cfg.SampleSize
	}
	if sampleSize > p.cfg.MaxSampleSize {
		sampleSize = p.cfg.MaxSampleSize
	}

	filtered := p.Filter(titles, answers)
	pool := filtered
	fellBack := false
	if len(pool) == 0 && !answers.Strict() {
		pool = titles
		fellBack = len(titles) > 0
	}

	items := p.sample(pool, sampleSize)

	p.logger.Debug().
		Int("catalog", len(titles)).
		Int("filtered", len(filtered)).
		Int("pool", len(pool)).
		Int("sampled", len(items)).
		Bool("fallback", fellBack).
		Bool("strict", answers.Strict()).
		Msg("recommendation round")

	return &Result{
		Items:         items,
		PoolSize:      len(pool),
		FilteredCount: len(filtered),
		FellBack:      fellBack,
		SampleSize:    sampleSize,
	}
}

// sample draws n records uniformly without replacement via shuffle-then-take.
// The input slice is never mutated.
func (p *Picker) sample(pool []catalog.TitleRecord, n int) []catalog.TitleRecord {
	if len(pool) == 0 {
		return []catalog.TitleRecord{}
	}
	shuffled := make([]catalog.TitleRecord, len(pool))
	copy(shuffled, pool)

	p.mu.Lock()
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	p.mu.Unlock()

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
