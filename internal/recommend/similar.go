// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"sort"

	"github.com/ashlight2510/pick/internal/catalog"
)

// Similar ranks same-media-type titles by relatedness to the seed and
// returns the top n. Relatedness sums the configured weights: one
// shared-provider weight per common service, a score weight graded by how
// close the two scores are, and a same-year bonus. Ties go to the higher
// scored title. A non-positive n uses the configured default.
func (p *Picker) Similar(titles []catalog.TitleRecord, seed *catalog.TitleRecord, n int) []catalog.TitleRecord {
	if seed == nil || len(titles) == 0 {
		return []catalog.TitleRecord{}
	}
	if n <= 0 {
		n = p.cfg.SimilarLimit
	}

	type ranked struct {
		title  catalog.TitleRecord
		weight int
	}
	candidates := make([]ranked, 0, len(titles))
	for i := range titles {
		t := &titles[i]
		if t.Type != seed.Type || t.ID == seed.ID {
			continue
		}
		candidates = append(candidates, ranked{title: titles[i], weight: p.similarity(seed, t)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		return candidates[i].title.Score > candidates[j].title.Score
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]catalog.TitleRecord, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.title)
	}
	return out
}

func (p *Picker) similarity(seed, t *catalog.TitleRecord) int {
	w := p.cfg.Similarity

	weight := 0
	for _, provider := range t.Providers {
		if seed.HasProvider(provider) {
			weight += w.SharedProvider
		}
	}

	gap := seed.Score - t.Score
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap <= w.CloseScoreGap:
		weight += w.ScoreClose
	case gap <= w.NearScoreGap:
		weight += w.ScoreNear
	}

	if seed.Year != "" && seed.Year == t.Year {
		weight += w.SameYear
	}
	return weight
}
