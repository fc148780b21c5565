// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"github.com/ashlight2510/pick/internal/catalog"
)

// quickPickCap bounds every curated collection.
const quickPickCap = 40

// QuickPick is a curated, deterministic collection. Unlike Recommend, quick
// picks are not sampled: the catalog is already score-ordered, so taking the
// first matches yields a stable best-first page.
type QuickPick struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`

	match func(*Config, *catalog.TitleRecord) bool
}

var quickPicks = []QuickPick{
	{
		Slug:        "must-watch",
		Title:       "Must Watch",
		Description: "The highest scoring titles across every service.",
		match: func(cfg *Config, t *catalog.TitleRecord) bool {
			return t.Score >= cfg.Thresholds.MustWatch
		},
	},
	{
		Slug:        "short",
		Title:       "Short & Sweet",
		Description: "Finished in one sitting.",
		match: func(cfg *Config, t *catalog.TitleRecord) bool {
			return t.ShortWatch(cfg.Durations.ShortMovie, cfg.Durations.ShortEpisode)
		},
	},
	{
		Slug:        "netflix",
		Title:       "Best of Netflix",
		Description: "Top rated titles streaming on Netflix.",
		match: func(cfg *Config, t *catalog.TitleRecord) bool {
			return t.HasProvider("Netflix")
		},
	},
	{
		Slug:        "hidden-gems",
		Title:       "Hidden Gems",
		Description: "Quality picks flying under the radar.",
		match: func(cfg *Config, t *catalog.TitleRecord) bool {
			return t.Score >= cfg.Thresholds.HiddenGem && t.Votes < cfg.Thresholds.HiddenGemMaxVotes
		},
	},
}

// QuickPickSlugs returns the known collection slugs in display order.
func QuickPickSlugs() []string {
	slugs := make([]string, len(quickPicks))
	for i, qp := range quickPicks {
		slugs[i] = qp.Slug
	}
	return slugs
}

// QuickPick returns the collection for slug, or ok=false for unknown slugs.
// Collection order follows the catalog order (score descending).
func (p *Picker) QuickPick(titles []catalog.TitleRecord, slug string) (QuickPick, []catalog.TitleRecord, bool) {
	for _, qp := range quickPicks {
		if qp.Slug != slug {
			continue
		}
		out := make([]catalog.TitleRecord, 0, quickPickCap)
		for i := range titles {
			if qp.match(p.cfg, &titles[i]) {
				out = append(out, titles[i])
				if len(out) == quickPickCap {
					break
				}
			}
		}
		return qp, out, true
	}
	return QuickPick{}, nil, false
}
