// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import "github.com/ashlight2510/pick/internal/catalog"

// When describes the viewing occasion.
type When string

// Viewing occasions.
const (
	WhenNow     When = "now"
	WhenTonight When = "tonight"
	WhenWeekend When = "weekend"
	WhenBrowse  When = "browse"
)

// Companion describes who is watching.
type Companion string

// Companions.
const (
	CompanionSolo    Companion = "solo"
	CompanionCouple  Companion = "couple"
	CompanionFamily  Companion = "family"
	CompanionFriends Companion = "friends"
)

// Mood describes the desired tone of the session.
type Mood string

// Moods.
const (
	MoodLaugh   Mood = "laugh"
	MoodRelax   Mood = "relax"
	MoodImmerse Mood = "immerse"
	MoodThink   Mood = "think"
)

// DurationBand is a runtime ceiling expressed as a label. Movie bands
// constrain total runtime; series bands constrain episode runtime.
type DurationBand string

// Duration bands. The minute bands apply to episodes, the hour bands to
// movies; "binge" and "any" impose no ceiling.
const (
	Duration40m   DurationBand = "40m"
	Duration60m   DurationBand = "60m"
	Duration80m   DurationBand = "80m"
	Duration120m  DurationBand = "120m"
	Duration1h    DurationBand = "1h"
	Duration2h    DurationBand = "2h"
	DurationBinge DurationBand = "binge"
	DurationAny   DurationBand = "any"
)

// durationLimits maps each band to its runtime ceiling in minutes. Bands
// missing from the map impose no ceiling.
var durationLimits = map[DurationBand]int{
	Duration40m:  40,
	Duration60m:  60,
	Duration80m:  80,
	Duration120m: 120,
	Duration1h:   60,
	Duration2h:   120,
}

// Limit returns the band's runtime ceiling in minutes and whether one exists.
func (d DurationBand) Limit() (int, bool) {
	limit, ok := durationLimits[d]
	return limit, ok
}

// Preset selects a curated subset instead of an occasion-driven one.
type Preset string

// Presets.
const (
	PresetMustWatch Preset = "must"
	PresetHiddenGem Preset = "hidden"
)

// AnswerSet is a questionnaire response. Every field is optional; zero values
// impose no constraint. Validation tags reject unknown enum values while
// still allowing absent ones.
type AnswerSet struct {
	When      When              `json:"when,omitempty" validate:"omitempty,oneof=now tonight weekend browse"`
	Companion Companion         `json:"with_whom,omitempty" validate:"omitempty,oneof=solo couple family friends"`
	Mood      Mood              `json:"mood,omitempty" validate:"omitempty,oneof=laugh relax immerse think"`
	Duration  DurationBand      `json:"duration,omitempty" validate:"omitempty,oneof=40m 60m 80m 120m 1h 2h binge any"`
	Provider  string            `json:"ott,omitempty" validate:"omitempty,max=64"`
	MediaType catalog.MediaType `json:"type,omitempty" validate:"omitempty,oneof=movie tv"`
	Preset    Preset            `json:"extra,omitempty" validate:"omitempty,oneof=must hidden"`
	Genres    []string          `json:"genres,omitempty" validate:"omitempty,max=10,dive,max=64"`
	Actor     string            `json:"actor,omitempty" validate:"omitempty,max=128"`
}

// Strict reports whether the answers name a person or genres. Strict answer
// sets never fall back to the whole catalog: an empty match set is the
// correct response to "something with this actor" the catalog cannot satisfy.
func (a *AnswerSet) Strict() bool {
	return a.Actor != "" || len(a.Genres) > 0
}
