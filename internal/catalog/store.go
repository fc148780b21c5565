// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashlight2510/pick/internal/logging"
)

// ErrNotFound is returned when a requested title has no matching record.
// Callers surface it as an explicit not-found result, never a failure.
var ErrNotFound = errors.New("catalog: title not found")

// LoadStatus classifies the outcome of a dataset load so callers can tell
// "legitimately empty" apart from "upstream failed".
type LoadStatus string

const (
	// StatusLoaded means the dataset was read and contains titles.
	StatusLoaded LoadStatus = "loaded"
	// StatusEmpty means the dataset was read but contains no titles.
	StatusEmpty LoadStatus = "empty"
	// StatusUnavailable means the dataset source could not be reached;
	// the store falls back to an empty catalog.
	StatusUnavailable LoadStatus = "unavailable"
)

// LoadResult reports the outcome of a Load call.
type LoadResult struct {
	Status LoadStatus
	Count  int
	// Err carries the source failure when Status is StatusUnavailable.
	Err error
}

// Source supplies the persisted dataset produced by the ingestion job.
type Source interface {
	// Fetch reads the dataset. Implementations return an error when the
	// source cannot be reached; the store treats that as an empty catalog.
	Fetch(ctx context.Context) (*Dataset, error)
}

// FileSource reads the dataset from a JSON file on disk, with an optional
// fallback path tried when the primary is missing.
type FileSource struct {
	Path     string
	Fallback string
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) (*Dataset, error) {
	paths := []string{s.Path}
	if s.Fallback != "" {
		paths = append(paths, s.Fallback)
	}

	var lastErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}

		var ds Dataset
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("decode dataset %s: %w", path, err)
		}
		return &ds, nil
	}

	return nil, fmt.Errorf("dataset unavailable: %w", lastErr)
}

// Store holds the loaded canonical dataset with an explicit load/invalidate
// lifecycle. It replaces the implicit module-level cache of the original
// design: the dataset is injected into consumers rather than read ambiently.
// Safe for concurrent use; titles are never mutated after load.
type Store struct {
	source Source

	mu          sync.RWMutex
	titles      []TitleRecord
	byKey       map[Key]int
	generatedAt time.Time
	loadedAt    time.Time
	lastResult  LoadResult
}

// NewStore creates a store backed by the given source. The catalog is empty
// until Load is called.
func NewStore(source Source) *Store {
	return &Store{
		source: source,
		byKey:  make(map[Key]int),
	}
}

// Load fetches the dataset from the source and swaps it in atomically.
// A source failure leaves the previous catalog in place when one exists,
// or an empty catalog otherwise; it is never fatal.
func (s *Store) Load(ctx context.Context) LoadResult {
	ds, err := s.source.Fetch(ctx)
	if err != nil {
		result := LoadResult{Status: StatusUnavailable, Err: err}
		s.mu.Lock()
		result.Count = len(s.titles)
		s.lastResult = result
		s.mu.Unlock()

		logging.Warn().Err(err).Msg("dataset source unavailable, keeping current catalog")
		return result
	}

	titles := sanitizeTitles(ds.Items)
	byKey := make(map[Key]int, len(titles))
	for i := range titles {
		byKey[titles[i].Key()] = i
	}

	result := LoadResult{Status: StatusLoaded, Count: len(titles)}
	if len(titles) == 0 {
		result.Status = StatusEmpty
	}

	s.mu.Lock()
	s.titles = titles
	s.byKey = byKey
	s.generatedAt = ds.GeneratedAt
	s.loadedAt = time.Now()
	s.lastResult = result
	s.mu.Unlock()

	logging.Info().
		Int("titles", len(titles)).
		Time("generated_at", ds.GeneratedAt).
		Msg("dataset loaded")

	return result
}

// Invalidate discards the loaded catalog. The next Load repopulates it.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.titles = nil
	s.byKey = make(map[Key]int)
	s.generatedAt = time.Time{}
	s.loadedAt = time.Time{}
	s.lastResult = LoadResult{}
}

// Titles returns the loaded catalog. The returned slice is shared and must
// be treated as read-only.
func (s *Store) Titles() []TitleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.titles
}

// Get returns the record for the given key, or ErrNotFound.
func (s *Store) Get(mediaType MediaType, id int) (TitleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byKey[Key{Type: mediaType, ID: id}]
	if !ok {
		return TitleRecord{}, ErrNotFound
	}
	return s.titles[idx], nil
}

// GeneratedAt returns when the ingestion job produced the loaded dataset.
func (s *Store) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

// LoadedAt returns when the current catalog was swapped in, distinct from
// GeneratedAt which reports when ingest produced the dataset file. Zero
// until a successful Load.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// LastResult returns the outcome of the most recent Load.
func (s *Store) LastResult() LoadResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// sanitizeTitles re-canonicalizes records read from disk: provider aliases
// collapse even in datasets written before an alias was known, and nil
// slices become empty so consumers can range without nil checks.
func sanitizeTitles(items []TitleRecord) []TitleRecord {
	out := make([]TitleRecord, len(items))
	for i, item := range items {
		item.Providers = CanonicalizeProviders(item.Providers)
		if item.Genres == nil {
			item.Genres = []string{}
		}
		if item.Cast == nil {
			item.Cast = []string{}
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		out[i] = item
	}
	return out
}
