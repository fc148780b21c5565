// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package catalog

import (
	"sort"

	"github.com/ashlight2510/pick/internal/logging"
)

// RawRecord is one title as assembled by the ingestion job from the upstream
// catalog API: the discover payload joined with the per-title watch-provider
// and credit lookups. The normalizer turns these into TitleRecords.
type RawRecord struct {
	// ID is the upstream identifier. Required.
	ID int

	// Title/Name and OriginalTitle/OriginalName mirror the upstream split
	// between movie and series payloads; whichever is set wins.
	Title         string
	Name          string
	OriginalTitle string
	OriginalName  string

	PosterPath   string
	BackdropPath string

	// ReleaseDate is set for movies, FirstAirDate for series. The media
	// type is resolved from whichever is present.
	ReleaseDate  string
	FirstAirDate string

	// VoteAverage is the upstream rating on a 0-10 scale. Required.
	VoteAverage float64
	VoteCount   int

	// Runtime is the movie runtime; EpisodeRunTimes holds per-episode
	// runtimes for series (first entry is used).
	Runtime         int
	EpisodeRunTimes []int

	// GenreIDs are upstream genre identifiers, mapped through genreLabels.
	GenreIDs []int

	// Providers is the allow-listed watch-provider list for the title,
	// possibly containing tier aliases; canonicalized here.
	Providers []string

	// Cast holds actor names, top-billed first, already capped upstream.
	Cast []string
}

// Derived tag labels, in derivation priority order.
const (
	TagMustWatch       = "must-watch"
	TagCrowdFavorite   = "crowd favorite"
	TagHiddenGem       = "hidden gem"
	TagWidelyAvailable = "widely available"
	TagEasyWatch       = "easy watch"
	TagEasyBinge       = "easy binge"
)

// Thresholds for tag derivation.
const (
	mustWatchRating    = 8.5
	mustWatchScore     = 85
	crowdFavoriteVotes = 5000
	hiddenGemVotes     = 500
	hiddenGemRating    = 7.5
	easyWatchMinutes   = 120
	easyBingeMinutes   = 40
	highScoreReason    = 80
)

// providerAliases collapses tier-specific provider names onto their parent
// brand. Extend as the upstream API grows new ad-supported tiers.
var providerAliases = map[string]string{
	"Netflix Standard with Ads": "Netflix",
	"Netflix basic with Ads":    "Netflix",
}

// genreLabels maps upstream genre IDs to domain genre labels. Unmapped IDs
// are dropped. Several series-specific IDs collapse onto the movie label so
// both media types share one vocabulary.
var genreLabels = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action",
	10762: "Family",
	10764: "Reality",
	10765: "Science Fiction",
	10766: "Drama",
	10768: "War",
}

// Normalize transforms raw upstream records into the canonical dataset
// order: malformed records are skipped, titles with no resolved provider are
// excluded, duplicates collapse last-seen-wins per (media type, id), and the
// result is sorted by score descending.
func Normalize(raw []RawRecord) []TitleRecord {
	byKey := make(map[Key]int, len(raw))
	out := make([]TitleRecord, 0, len(raw))

	for i := range raw {
		rec, ok := normalizeOne(&raw[i])
		if !ok {
			continue
		}

		if idx, seen := byKey[rec.Key()]; seen {
			out[idx] = rec
			continue
		}
		byKey[rec.Key()] = len(out)
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// normalizeOne builds a TitleRecord from a single raw record. Returns false
// when the record is malformed or has no watchable provider.
func normalizeOne(r *RawRecord) (TitleRecord, bool) {
	if r.ID == 0 || r.VoteAverage <= 0 {
		logging.Warn().Int("id", r.ID).Msg("skipping malformed catalog record")
		return TitleRecord{}, false
	}

	mediaType, ok := resolveMediaType(r)
	if !ok {
		logging.Warn().Int("id", r.ID).Msg("skipping record with no date field")
		return TitleRecord{}, false
	}

	providers := CanonicalizeProviders(r.Providers)
	if len(providers) == 0 {
		// Only titles watchable on a domestic service enter the dataset.
		return TitleRecord{}, false
	}

	rec := TitleRecord{
		ID:            r.ID,
		Type:          mediaType,
		Title:         firstNonEmpty(r.Title, r.Name),
		OriginalTitle: firstNonEmpty(r.OriginalTitle, r.OriginalName),
		Poster:        r.PosterPath,
		Backdrop:      r.BackdropPath,
		Year:          yearOf(firstNonEmpty(r.ReleaseDate, r.FirstAirDate)),
		Votes:         r.VoteCount,
		Providers:     providers,
		Genres:        mapGenres(r.GenreIDs),
		Cast:          append([]string(nil), r.Cast...),
	}

	if mediaType == MediaTypeMovie {
		rec.Runtime = r.Runtime
	} else if len(r.EpisodeRunTimes) > 0 {
		rec.EpisodeRuntime = r.EpisodeRunTimes[0]
	}

	rec.Score = ComputeScore(r.VoteAverage, r.VoteCount, len(providers))
	rec.Tags = deriveTags(&rec, r.VoteAverage)
	rec.Reason = deriveReason(rec.Tags, rec.Score)

	return rec, true
}

// resolveMediaType picks the media type from whichever date field is present.
func resolveMediaType(r *RawRecord) (MediaType, bool) {
	switch {
	case r.ReleaseDate != "":
		return MediaTypeMovie, true
	case r.FirstAirDate != "":
		return MediaTypeSeries, true
	default:
		return "", false
	}
}

// CanonicalizeProviders collapses tier aliases onto their parent brand and
// deduplicates, preserving first-seen order.
func CanonicalizeProviders(providers []string) []string {
	out := make([]string, 0, len(providers))
	seen := make(map[string]struct{}, len(providers))

	for _, p := range providers {
		if base, ok := providerAliases[p]; ok {
			p = base
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

// mapGenres maps upstream genre IDs through the fixed lookup table,
// dropping unmapped IDs and deduplicating labels.
func mapGenres(ids []int) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		label, ok := genreLabels[id]
		if !ok {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}

	return out
}

// deriveTags assigns derived labels in fixed priority order. A record may
// receive several.
func deriveTags(rec *TitleRecord, rating float64) []string {
	tags := make([]string, 0, 4)

	if rating >= mustWatchRating || rec.Score >= mustWatchScore {
		tags = append(tags, TagMustWatch)
	}
	if rec.Votes >= crowdFavoriteVotes {
		tags = append(tags, TagCrowdFavorite)
	}
	if rec.Votes < hiddenGemVotes && rating >= hiddenGemRating {
		tags = append(tags, TagHiddenGem)
	}
	if len(rec.Providers) >= 2 {
		tags = append(tags, TagWidelyAvailable)
	}
	if rec.Runtime > 0 && rec.Runtime <= easyWatchMinutes {
		tags = append(tags, TagEasyWatch)
	}
	if rec.EpisodeRuntime > 0 && rec.EpisodeRuntime <= easyBingeMinutes {
		tags = append(tags, TagEasyBinge)
	}

	return tags
}

// deriveReason picks the single justification string, checking tags in
// priority order.
func deriveReason(tags []string, score int) string {
	has := func(tag string) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	}

	switch {
	case has(TagMustWatch):
		return "rating and availability both verified"
	case has(TagHiddenGem):
		return "under-the-radar quality pick"
	case has(TagEasyWatch) || has(TagEasyBinge):
		return "comfortably short"
	case has(TagWidelyAvailable):
		return "available on multiple services"
	case score >= highScoreReason:
		return "broadly satisfying rating"
	default:
		return "a solid pick if it matches your taste"
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// yearOf extracts the 4-digit year prefix from an upstream date string.
func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
