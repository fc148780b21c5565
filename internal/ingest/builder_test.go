// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/tmdb"
)

// fakeAPI serves a small fixed upstream: one discover page per media type,
// with per-title providers, details and credits.
type fakeAPI struct {
	pages     map[catalog.MediaType]map[int]*tmdb.DiscoverResponse
	providers map[int][]string
	details   map[int]*tmdb.DetailResponse
	cast      map[int][]string

	failProviders map[int]bool
	failDetails   map[int]bool
	failCredits   map[int]bool
	failDiscover  bool
}

func (f *fakeAPI) Discover(_ context.Context, mediaType catalog.MediaType, page int) (*tmdb.DiscoverResponse, error) {
	if f.failDiscover {
		return nil, errors.New("upstream down")
	}
	if resp, ok := f.pages[mediaType][page]; ok {
		return resp, nil
	}
	return &tmdb.DiscoverResponse{Page: page}, nil
}

func (f *fakeAPI) Detail(_ context.Context, _ catalog.MediaType, id int) (*tmdb.DetailResponse, error) {
	if f.failDetails[id] {
		return nil, fmt.Errorf("detail %d failed", id)
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return &tmdb.DetailResponse{ID: id}, nil
}

func (f *fakeAPI) WatchProviders(_ context.Context, _ catalog.MediaType, id int) ([]string, error) {
	if f.failProviders[id] {
		return nil, fmt.Errorf("providers %d failed", id)
	}
	return f.providers[id], nil
}

func (f *fakeAPI) Credits(_ context.Context, _ catalog.MediaType, id, max int) ([]string, error) {
	if f.failCredits[id] {
		return nil, fmt.Errorf("credits %d failed", id)
	}
	cast := f.cast[id]
	if len(cast) > max {
		cast = cast[:max]
	}
	return cast, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pages: map[catalog.MediaType]map[int]*tmdb.DiscoverResponse{
			catalog.MediaTypeMovie: {
				1: {Page: 1, Results: []tmdb.DiscoverItem{
					{ID: 1, Title: "Watchable Movie", ReleaseDate: "2024-01-05",
						VoteAverage: 8.2, VoteCount: 9000, GenreIDs: []int{28}},
					{ID: 2, Title: "Unstreamable Movie", ReleaseDate: "2023-06-01",
						VoteAverage: 7.9, VoteCount: 4000},
					{ID: 3, Title: "Foreign Only Movie", ReleaseDate: "2022-02-01",
						VoteAverage: 8.8, VoteCount: 15000},
				}},
			},
			catalog.MediaTypeSeries: {
				1: {Page: 1, Results: []tmdb.DiscoverItem{
					{ID: 1, Name: "Watchable Series", FirstAirDate: "2024-02-10",
						VoteAverage: 8.5, VoteCount: 20000, GenreIDs: []int{18}},
				}},
			},
		},
		providers: map[int][]string{
			1: {"Netflix Standard with Ads", "wavve"},
			2: {},
			3: {"Hulu"},
		},
		details: map[int]*tmdb.DetailResponse{
			1: {ID: 1, Runtime: 112, EpisodeRunTime: []int{35}},
		},
		cast: map[int][]string{
			1: {"Lead Actor", "Support Actor"},
		},
		failProviders: map[int]bool{},
		failDetails:   map[int]bool{},
		failCredits:   map[int]bool{},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()
	b, err := NewBuilder(newFakeAPI(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	ds, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ds.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}

	// Movie 1 and series 1 survive; movie 2 has no providers, movie 3 only
	// a non-domestic one.
	if len(ds.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2: %+v", len(ds.Items), ds.Items)
	}
	for _, item := range ds.Items {
		if item.ID != 1 {
			t.Errorf("unexpected title %v", item.Key())
		}
	}

	var movie catalog.TitleRecord
	for _, item := range ds.Items {
		if item.Type == catalog.MediaTypeMovie {
			movie = item
		}
	}
	if movie.Title != "Watchable Movie" {
		t.Fatalf("movie not collected: %+v", ds.Items)
	}
	if !movie.HasProvider("Netflix") || !movie.HasProvider("wavve") {
		t.Errorf("providers = %v, want canonicalized Netflix and wavve", movie.Providers)
	}
	if movie.Runtime != 112 {
		t.Errorf("Runtime = %d, want 112", movie.Runtime)
	}
	if len(movie.Cast) != 2 || movie.Cast[0] != "Lead Actor" {
		t.Errorf("Cast = %v", movie.Cast)
	}
	if len(movie.Genres) != 1 || movie.Genres[0] != "Action" {
		t.Errorf("Genres = %v, want [Action]", movie.Genres)
	}
}

func TestBuildSkipsFailedTitles(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.failDetails[1] = true

	b, err := NewBuilder(api, DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	ds, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ds.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0 when every enrichment fails", len(ds.Items))
	}
}

func TestBuildKeepsTitleWithoutCredits(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.failCredits[1] = true

	b, err := NewBuilder(api, DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	ds, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ds.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(ds.Items))
	}
	for _, item := range ds.Items {
		if len(item.Cast) != 0 {
			t.Errorf("Cast = %v, want empty when credits failed", item.Cast)
		}
	}
}

func TestBuildErrorsWhenNothingCollected(t *testing.T) {
	t.Parallel()
	api := newFakeAPI()
	api.failDiscover = true

	b, err := NewBuilder(api, DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if _, err := b.Build(context.Background()); err == nil {
		t.Fatal("expected error when discover never succeeds")
	}
}

func TestBuildHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	b, err := NewBuilder(newFakeAPI(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Build error = %v, want context.Canceled", err)
	}
}

func TestWriteDataset(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "data", "titles.json"),
		filepath.Join(dir, "public", "data", "titles.json"),
	}
	ds := &catalog.Dataset{
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Items: []catalog.TitleRecord{
			{ID: 1, Type: catalog.MediaTypeMovie, Title: "A", Score: 80,
				Providers: []string{"Netflix"}},
		},
	}

	if err := WriteDataset(ds, paths); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	for _, path := range paths {
		payload, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		var got catalog.Dataset
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0].Title != "A" {
			t.Errorf("round-trip mismatch at %s: %+v", path, got.Items)
		}
		if !got.GeneratedAt.Equal(ds.GeneratedAt) {
			t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, ds.GeneratedAt)
		}
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files in output dir: %v", entries)
	}
}
