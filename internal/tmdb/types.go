// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package tmdb

// DiscoverResponse is one page of /discover results.
type DiscoverResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []DiscoverItem `json:"results"`
}

// DiscoverItem is one title from a discover page. Movie and TV payloads
// share the struct; movies populate Title/ReleaseDate, TV populates
// Name/FirstAirDate.
type DiscoverItem struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	GenreIDs      []int   `json:"genre_ids"`
}

// DetailResponse carries the per-title fields discover omits. Runtime is set
// for movies, EpisodeRunTime for series.
type DetailResponse struct {
	ID             int    `json:"id"`
	Runtime        int    `json:"runtime"`
	EpisodeRunTime []int  `json:"episode_run_time"`
	Status         string `json:"status"`
}

// WatchProvidersResponse is the /watch/providers payload, keyed by region.
type WatchProvidersResponse struct {
	ID      int                       `json:"id"`
	Results map[string]RegionOffering `json:"results"`
}

// RegionOffering lists the providers for one region. Only flat-rate
// streaming offerings matter; rental and purchase channels are ignored.
type RegionOffering struct {
	Flatrate []ProviderEntry `json:"flatrate"`
}

// ProviderEntry is one streaming service in a region offering.
type ProviderEntry struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

// CreditsResponse is the /credits payload.
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}

// CastMember is one billed actor. Order holds the billing position.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// apiError is the upstream error envelope returned with non-2xx statuses.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
