// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"io"
	"math/rand"
	"testing"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
)

func newSeededPicker(t *testing.T, seed int64) *Picker {
	t.Helper()
	p, err := NewPicker(DefaultConfig(), logging.NewTestLogger(io.Discard), rand.NewSource(seed))
	if err != nil {
		t.Fatalf("NewPicker: %v", err)
	}
	return p
}

func TestRecommendBounds(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)
	cat := testCatalog()

	tests := []struct {
		name       string
		sampleSize int
		wantLen    int
	}{
		{"smaller than pool", 3, 3},
		{"equal to pool", 5, 5},
		{"larger than pool returns pool", 20, 5},
		{"zero uses default and caps at pool", 0, 5},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := p.Recommend(cat, &AnswerSet{}, tc.sampleSize)
			if len(res.Items) != tc.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(res.Items), tc.wantLen)
			}
			seen := make(map[catalog.Key]bool, len(res.Items))
			for _, item := range res.Items {
				key := item.Key()
				if seen[key] {
					t.Errorf("duplicate record %v in shortlist", key)
				}
				seen[key] = true
			}
		})
	}
}

func TestRecommendSampleSizeCapped(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxSampleSize = 2
	cfg.SampleSize = 2
	p, err := NewPicker(cfg, logging.NewTestLogger(io.Discard), nil)
	if err != nil {
		t.Fatalf("NewPicker: %v", err)
	}

	res := p.Recommend(testCatalog(), &AnswerSet{}, 100)
	if res.SampleSize != 2 {
		t.Errorf("SampleSize = %d, want capped 2", res.SampleSize)
	}
	if len(res.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(res.Items))
	}
}

func TestRecommendFallback(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)
	cat := testCatalog()

	t.Run("non-strict empty match falls back to full catalog", func(t *testing.T) {
		t.Parallel()
		res := p.Recommend(cat, &AnswerSet{Provider: "HBO Max"}, 10)
		if !res.FellBack {
			t.Error("FellBack = false, want true")
		}
		if res.FilteredCount != 0 {
			t.Errorf("FilteredCount = %d, want 0", res.FilteredCount)
		}
		if res.PoolSize != len(cat) {
			t.Errorf("PoolSize = %d, want full catalog %d", res.PoolSize, len(cat))
		}
		if len(res.Items) != len(cat) {
			t.Errorf("len(Items) = %d, want %d", len(res.Items), len(cat))
		}
	})

	t.Run("actor query honors empty result", func(t *testing.T) {
		t.Parallel()
		res := p.Recommend(cat, &AnswerSet{Actor: "Nobody Famous"}, 10)
		if res.FellBack {
			t.Error("FellBack = true, want false for strict answers")
		}
		if len(res.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(res.Items))
		}
	})

	t.Run("genre query honors empty result", func(t *testing.T) {
		t.Parallel()
		res := p.Recommend(cat, &AnswerSet{Genres: []string{"Western"}}, 10)
		if res.FellBack {
			t.Error("FellBack = true, want false for strict answers")
		}
		if len(res.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(res.Items))
		}
	})

	t.Run("empty catalog yields empty result without fallback", func(t *testing.T) {
		t.Parallel()
		res := p.Recommend(nil, &AnswerSet{}, 10)
		if res.FellBack {
			t.Error("FellBack = true on empty catalog")
		}
		if len(res.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(res.Items))
		}
	})
}

func TestRecommendGenreSuperset(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)

	res := p.Recommend(testCatalog(), &AnswerSet{Genres: []string{"Drama"}}, 10)
	if len(res.Items) == 0 {
		t.Fatal("expected drama matches in fixture catalog")
	}
	for _, item := range res.Items {
		if !hasGenre(&item, "Drama") {
			t.Errorf("%q returned without requested genre, genres = %v", item.Title, item.Genres)
		}
	}
}

func TestRecommendDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	cat := testCatalog()

	a := newSeededPicker(t, 42).Recommend(cat, &AnswerSet{}, 3)
	b := newSeededPicker(t, 42).Recommend(cat, &AnswerSet{}, 3)
	if !sameIDs(a.Items, idsOf(b.Items)) {
		t.Errorf("same seed produced different shortlists: %v vs %v", idsOf(a.Items), idsOf(b.Items))
	}
}

func TestRecommendDoesNotMutateCatalog(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)

	cat := testCatalog()
	original := idsOf(cat)
	for i := 0; i < 10; i++ {
		p.Recommend(cat, &AnswerSet{}, 3)
	}
	if !sameIDs(cat, original) {
		t.Errorf("catalog order changed to %v", idsOf(cat))
	}
}

func TestQuickPicks(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)
	cat := testCatalog()

	tests := []struct {
		slug    string
		wantIDs []int
	}{
		{"must-watch", []int{1, 4}},
		{"short", []int{2, 3, 5}},
		{"netflix", []int{1, 3}},
		{"hidden-gems", []int{2}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.slug, func(t *testing.T) {
			t.Parallel()
			qp, got, ok := p.QuickPick(cat, tc.slug)
			if !ok {
				t.Fatalf("QuickPick(%q) not found", tc.slug)
			}
			if qp.Slug != tc.slug {
				t.Errorf("Slug = %q, want %q", qp.Slug, tc.slug)
			}
			if !sameIDs(got, tc.wantIDs) {
				t.Errorf("QuickPick(%q) ids = %v, want %v", tc.slug, idsOf(got), tc.wantIDs)
			}
		})
	}

	// Membership is decided by the score and vote thresholds alone, not by
	// whatever tags the normalizer happened to derive.
	t.Run("thresholds not tags", func(t *testing.T) {
		t.Parallel()
		extra := append(testCatalog(),
			catalog.TitleRecord{
				ID: 6, Type: catalog.MediaTypeMovie, Title: "Untagged Sleeper",
				Year: "2023", Runtime: 104, Score: 79, Votes: 3000,
				Providers: []string{"wavve"},
			},
			catalog.TitleRecord{
				ID: 7, Type: catalog.MediaTypeSeries, Title: "Tagged But Short Of The Bar",
				Year: "2022", EpisodeRuntime: 45, Score: 84, Votes: 600,
				Providers: []string{"TVING"},
				Tags:      []string{catalog.TagMustWatch},
			},
		)
		_, gems, ok := p.QuickPick(extra, "hidden-gems")
		if !ok {
			t.Fatal("hidden-gems pick not found")
		}
		if !sameIDs(gems, []int{2, 6}) {
			t.Errorf("hidden-gems ids = %v, want [2 6]", idsOf(gems))
		}
		_, must, ok := p.QuickPick(extra, "must-watch")
		if !ok {
			t.Fatal("must-watch pick not found")
		}
		if !sameIDs(must, []int{1, 4}) {
			t.Errorf("must-watch ids = %v, want [1 4]", idsOf(must))
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		t.Parallel()
		if _, _, ok := p.QuickPick(cat, "directors-cut"); ok {
			t.Error("unknown slug reported found")
		}
	})

	t.Run("cap", func(t *testing.T) {
		t.Parallel()
		big := make([]catalog.TitleRecord, 0, 60)
		for i := 0; i < 60; i++ {
			big = append(big, catalog.TitleRecord{
				ID: 100 + i, Type: catalog.MediaTypeMovie,
				Runtime: 90, Score: 70,
				Providers: []string{"Netflix"},
			})
		}
		_, got, ok := p.QuickPick(big, "netflix")
		if !ok {
			t.Fatal("netflix pick not found")
		}
		if len(got) != quickPickCap {
			t.Errorf("len = %d, want cap %d", len(got), quickPickCap)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero sample size", func(c *Config) { c.SampleSize = 0 }, true},
		{"max below default", func(c *Config) { c.MaxSampleSize = 1 }, true},
		{"zero similar limit", func(c *Config) { c.SimilarLimit = 0 }, true},
		{"zero duration cutoff", func(c *Config) { c.Durations.ShortMovie = 0 }, true},
		{"inverted score gaps", func(c *Config) { c.Similarity.CloseScoreGap = 20 }, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
