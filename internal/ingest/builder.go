// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
	"github.com/ashlight2510/pick/internal/metrics"
	"github.com/ashlight2510/pick/internal/tmdb"
)

// Config holds the dataset build settings.
type Config struct {
	// PagesPerType is how many discover pages to walk per media type.
	PagesPerType int `json:"pages_per_type" koanf:"pages_per_type"`

	// CastLimit caps the billed cast stored per title.
	CastLimit int `json:"cast_limit" koanf:"cast_limit"`

	// AllowedProviders is the domestic-provider allow-list. Providers
	// outside it are treated as unavailable for a title.
	AllowedProviders []string `json:"allowed_providers" koanf:"allowed_providers"`

	// OutputPaths are the files the dataset is written to.
	OutputPaths []string `json:"output_paths" koanf:"output_paths"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		PagesPerType: 3,
		CastLimit:    10,
		AllowedProviders: []string{
			"Netflix", "wavve", "TVING", "Coupang Play", "Watcha", "Disney Plus",
		},
		OutputPaths: []string{"data/titles.json"},
	}
}

// Validate checks the settings the builder cannot operate without.
func (c *Config) Validate() error {
	if c.PagesPerType <= 0 {
		return fmt.Errorf("pages_per_type must be positive, got %d", c.PagesPerType)
	}
	if c.CastLimit <= 0 {
		return fmt.Errorf("cast_limit must be positive, got %d", c.CastLimit)
	}
	if len(c.AllowedProviders) == 0 {
		return fmt.Errorf("allowed_providers must not be empty")
	}
	return nil
}

// ProviderAPI is the slice of the upstream client the builder needs. The
// circuit-breaker client satisfies it in production; tests use a fake.
type ProviderAPI interface {
	Discover(ctx context.Context, mediaType catalog.MediaType, page int) (*tmdb.DiscoverResponse, error)
	Detail(ctx context.Context, mediaType catalog.MediaType, id int) (*tmdb.DetailResponse, error)
	WatchProviders(ctx context.Context, mediaType catalog.MediaType, id int) ([]string, error)
	Credits(ctx context.Context, mediaType catalog.MediaType, id, max int) ([]string, error)
}

// Builder walks the upstream discover pages, enriches each title with
// providers, runtimes and cast, and normalizes the collection into the
// canonical dataset.
type Builder struct {
	api      ProviderAPI
	cfg      *Config
	allowSet map[string]bool
}

// NewBuilder builds a Builder. Allow-list entries are canonicalized so
// tier aliases in the list behave like their parent brand.
func NewBuilder(api ProviderAPI, cfg *Config) (*Builder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest config: %w", err)
	}
	allowSet := make(map[string]bool, len(cfg.AllowedProviders))
	for _, name := range catalog.CanonicalizeProviders(cfg.AllowedProviders) {
		allowSet[name] = true
	}
	return &Builder{api: api, cfg: cfg, allowSet: allowSet}, nil
}

// Build produces the canonical dataset. A single failed title is skipped,
// never fatal; Build errors only when nothing at all could be collected.
func (b *Builder) Build(ctx context.Context) (*catalog.Dataset, error) {
	start := time.Now()
	var raws []catalog.RawRecord
	var firstErr error

	for _, mediaType := range []catalog.MediaType{catalog.MediaTypeMovie, catalog.MediaTypeSeries} {
		for page := 1; page <= b.cfg.PagesPerType; page++ {
			resp, err := b.api.Discover(ctx, mediaType, page)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				logging.Warn().Err(err).
					Str("media_type", string(mediaType)).
					Int("page", page).
					Msg("discover page failed, moving on")
				break
			}
			if len(resp.Results) == 0 {
				break
			}
			for i := range resp.Results {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				raw, ok := b.collect(ctx, mediaType, &resp.Results[i])
				if ok {
					raws = append(raws, raw)
				}
			}
		}
	}

	if len(raws) == 0 && firstErr != nil {
		return nil, fmt.Errorf("dataset build collected nothing: %w", firstErr)
	}

	items := catalog.Normalize(raws)
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	metrics.IngestTitlesCollected.Add(float64(len(items)))

	logging.Info().
		Int("collected", len(raws)).
		Int("titles", len(items)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset build complete")

	return &catalog.Dataset{
		GeneratedAt: time.Now().UTC(),
		Items:       items,
	}, nil
}

// collect enriches one discover item. Returns false when the title is not
// watchable on an allow-listed provider or enrichment failed.
func (b *Builder) collect(ctx context.Context, mediaType catalog.MediaType, item *tmdb.DiscoverItem) (catalog.RawRecord, bool) {
	providers, err := b.api.WatchProviders(ctx, mediaType, item.ID)
	if err != nil {
		metrics.IngestTitlesSkipped.WithLabelValues("enrich_failed").Inc()
		logging.Warn().Err(err).Int("id", item.ID).Msg("watch providers lookup failed, skipping title")
		return catalog.RawRecord{}, false
	}
	allowed := b.filterAllowed(providers)
	if len(allowed) == 0 {
		metrics.IngestTitlesSkipped.WithLabelValues("no_providers").Inc()
		return catalog.RawRecord{}, false
	}

	detail, err := b.api.Detail(ctx, mediaType, item.ID)
	if err != nil {
		metrics.IngestTitlesSkipped.WithLabelValues("enrich_failed").Inc()
		logging.Warn().Err(err).Int("id", item.ID).Msg("detail lookup failed, skipping title")
		return catalog.RawRecord{}, false
	}

	// Missing credits degrade actor search for this title but do not lose it.
	cast, err := b.api.Credits(ctx, mediaType, item.ID, b.cfg.CastLimit)
	if err != nil {
		logging.Warn().Err(err).Int("id", item.ID).Msg("credits lookup failed, keeping title without cast")
		cast = nil
	}

	return catalog.RawRecord{
		ID:              item.ID,
		Title:           item.Title,
		Name:            item.Name,
		OriginalTitle:   item.OriginalTitle,
		OriginalName:    item.OriginalName,
		PosterPath:      item.PosterPath,
		BackdropPath:    item.BackdropPath,
		ReleaseDate:     item.ReleaseDate,
		FirstAirDate:    item.FirstAirDate,
		VoteAverage:     item.VoteAverage,
		VoteCount:       item.VoteCount,
		Runtime:         detail.Runtime,
		EpisodeRunTimes: detail.EpisodeRunTime,
		GenreIDs:        item.GenreIDs,
		Providers:       allowed,
		Cast:            cast,
	}, true
}

// filterAllowed keeps providers whose canonical form is allow-listed,
// preserving upstream order. The raw names are returned so the normalizer
// still sees and collapses tier aliases.
func (b *Builder) filterAllowed(providers []string) []string {
	out := make([]string, 0, len(providers))
	for _, name := range providers {
		canonical := catalog.CanonicalizeProviders([]string{name})
		if len(canonical) == 1 && b.allowSet[canonical[0]] {
			out = append(out, name)
		}
	}
	return out
}
