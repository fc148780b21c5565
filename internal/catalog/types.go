// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package catalog

import "time"

// MediaType distinguishes movies from series. The wire values match the
// upstream catalog API ("movie", "tv"), so series records serialize as "tv".
type MediaType string

const (
	// MediaTypeMovie is a feature-length movie.
	MediaTypeMovie MediaType = "movie"
	// MediaTypeSeries is an episodic series.
	MediaTypeSeries MediaType = "tv"
)

// Valid reports whether the media type is one of the known values.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeSeries
}

// TitleRecord is the canonical, immutable record for one title in the
// dataset. Records are produced by the normalizer and treated as read-only
// at request time.
//
// A record is uniquely identified by (MediaType, ID); two records of
// different media types may share a numeric ID.
type TitleRecord struct {
	// ID is the upstream catalog identifier, unique within its media type.
	ID int `json:"id"`

	// Type is the media type partition for this record.
	Type MediaType `json:"type"`

	// Title is the localized display title.
	Title string `json:"title"`

	// OriginalTitle is the title in the original language.
	OriginalTitle string `json:"title_original,omitempty"`

	// Poster and Backdrop are opaque image path fragments; resolving them
	// to full URLs is a presentation concern.
	Poster   string `json:"poster,omitempty"`
	Backdrop string `json:"backdrop,omitempty"`

	// Year is the 4-digit release year, or empty when unknown.
	Year string `json:"year,omitempty"`

	// Runtime is the movie runtime in minutes. Zero for series.
	Runtime int `json:"runtime,omitempty"`

	// EpisodeRuntime is the per-episode runtime in minutes. Zero for movies.
	EpisodeRuntime int `json:"episode_runtime,omitempty"`

	// Score is the derived recommendability score in [0,100].
	Score int `json:"score"`

	// Votes is the raw popularity signal from the upstream catalog.
	Votes int `json:"votes"`

	// Providers lists the streaming services the title is available on,
	// canonicalized and deduplicated.
	Providers []string `json:"ott"`

	// Genres holds domain genre labels mapped from upstream genre IDs.
	Genres []string `json:"genres"`

	// Cast lists actor names, top-billed first, capped length.
	Cast []string `json:"cast"`

	// Tags holds derived labels in priority order ("must-watch", ...).
	Tags []string `json:"tags"`

	// Reason is a single human-readable justification derived from tags
	// and score.
	Reason string `json:"reason,omitempty"`
}

// Key identifies a record within the dataset.
type Key struct {
	Type MediaType
	ID   int
}

// Key returns the unique (media type, id) key for the record.
func (t *TitleRecord) Key() Key {
	return Key{Type: t.Type, ID: t.ID}
}

// HasProvider reports whether the title is available on the given
// canonicalized provider name.
func (t *TitleRecord) HasProvider(name string) bool {
	for _, p := range t.Providers {
		if p == name {
			return true
		}
	}
	return false
}

// HasTag reports whether the record carries the given derived tag.
func (t *TitleRecord) HasTag(tag string) bool {
	for _, v := range t.Tags {
		if v == tag {
			return true
		}
	}
	return false
}

// ShortWatch reports whether the title fits a short session: a movie of at
// most maxMovie minutes or a series with episodes of at most maxEpisode
// minutes. Titles with unknown durations do not qualify.
func (t *TitleRecord) ShortWatch(maxMovie, maxEpisode int) bool {
	if t.Type == MediaTypeSeries {
		return t.EpisodeRuntime > 0 && t.EpisodeRuntime <= maxEpisode
	}
	return t.Runtime > 0 && t.Runtime <= maxMovie
}

// Dataset is the persisted canonical dataset: the normalized title
// collection plus the time the ingestion job produced it.
type Dataset struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Items       []TitleRecord `json:"items"`
}
