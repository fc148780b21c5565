// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"strings"

	"github.com/ashlight2510/pick/internal/catalog"
)

// Filter returns the titles that satisfy every set answer. Absent answers
// impose no constraint; constraints combine with AND semantics.
func (p *Picker) Filter(titles []catalog.TitleRecord, answers *AnswerSet) []catalog.TitleRecord {
	if answers == nil {
		answers = &AnswerSet{}
	}
	out := make([]catalog.TitleRecord, 0, len(titles))
	for i := range titles {
		if p.matches(&titles[i], answers) {
			out = append(out, titles[i])
		}
	}
	return out
}

func (p *Picker) matches(t *catalog.TitleRecord, a *AnswerSet) bool {
	if a.MediaType != "" && t.Type != a.MediaType {
		return false
	}
	if !p.matchWhen(t, a.When) {
		return false
	}
	if !p.matchDuration(t, a.Duration) {
		return false
	}
	if !p.matchCompanion(t, a.Companion) {
		return false
	}
	if !p.matchMood(t, a.Mood) {
		return false
	}
	if a.Provider != "" && !t.HasProvider(a.Provider) {
		return false
	}
	if !p.matchPreset(t, a.Preset) {
		return false
	}
	if !matchGenres(t, a.Genres) {
		return false
	}
	if a.Actor != "" && !matchActor(t, a.Actor) {
		return false
	}
	return true
}

func (p *Picker) matchWhen(t *catalog.TitleRecord, w When) bool {
	switch w {
	case WhenNow:
		return p.shortWatch(t)
	case WhenWeekend:
		// A free weekend is the binge occasion.
		return t.Type == catalog.MediaTypeSeries
	default:
		return true
	}
}

func (p *Picker) matchDuration(t *catalog.TitleRecord, d DurationBand) bool {
	if d == "" || d == DurationAny {
		return true
	}
	if d == DurationBinge {
		return t.Type == catalog.MediaTypeSeries
	}
	limit, ok := d.Limit()
	if !ok {
		return true
	}
	// Movies measure total runtime, series measure a single episode. A record
	// missing its relevant duration field cannot satisfy a duration band.
	switch t.Type {
	case catalog.MediaTypeMovie:
		return t.Runtime > 0 && t.Runtime <= limit
	case catalog.MediaTypeSeries:
		return t.EpisodeRuntime > 0 && t.EpisodeRuntime <= limit
	}
	return false
}

func (p *Picker) matchCompanion(t *catalog.TitleRecord, c Companion) bool {
	switch c {
	case CompanionCouple, CompanionFamily:
		return t.Score >= p.cfg.Thresholds.Couple
	case CompanionFriends:
		return t.Score >= p.cfg.Thresholds.Friends
	default:
		return true
	}
}

func (p *Picker) matchMood(t *catalog.TitleRecord, m Mood) bool {
	switch m {
	case MoodLaugh:
		return p.shortWatch(t) && t.Score >= p.cfg.Thresholds.Laugh
	case MoodRelax:
		return p.shortWatch(t)
	case MoodImmerse, MoodThink:
		return t.Score >= p.cfg.Thresholds.Immerse
	default:
		return true
	}
}

func (p *Picker) matchPreset(t *catalog.TitleRecord, preset Preset) bool {
	switch preset {
	case PresetMustWatch:
		return t.Score >= p.cfg.Thresholds.MustWatch
	case PresetHiddenGem:
		return t.Score >= p.cfg.Thresholds.HiddenGem && t.Votes < p.cfg.Thresholds.HiddenGemMaxVotes
	default:
		return true
	}
}

func (p *Picker) shortWatch(t *catalog.TitleRecord) bool {
	return t.ShortWatch(p.cfg.Durations.ShortMovie, p.cfg.Durations.ShortEpisode)
}

// matchGenres requires the record's genres to be a superset of the query.
func matchGenres(t *catalog.TitleRecord, genres []string) bool {
	for _, want := range genres {
		if !hasGenre(t, want) {
			return false
		}
	}
	return true
}

func hasGenre(t *catalog.TitleRecord, genre string) bool {
	for _, g := range t.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func matchActor(t *catalog.TitleRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, name := range t.Cast {
		if strings.Contains(strings.ToLower(name), q) {
			return true
		}
	}
	return false
}
