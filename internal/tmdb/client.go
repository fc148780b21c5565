// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/ashlight2510/pick/internal/catalog"
)

// Config holds the upstream catalog API settings.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `json:"base_url" koanf:"base_url"`

	// APIKey authenticates every request. Required.
	APIKey string `json:"api_key" koanf:"api_key"`

	// Language is the metadata language for titles and overviews.
	Language string `json:"language" koanf:"language"`

	// Region is the watch-provider region for discover and availability.
	Region string `json:"region" koanf:"region"`

	// Providers is the pipe-separated provider ID filter for discover.
	Providers string `json:"providers" koanf:"providers"`

	// MinVoteAverage, MinVotesMovie and MinVotesSeries are the discover
	// quality floor.
	MinVoteAverage float64 `json:"min_vote_average" koanf:"min_vote_average"`
	MinVotesMovie  int     `json:"min_votes_movie" koanf:"min_votes_movie"`
	MinVotesSeries int     `json:"min_votes_series" koanf:"min_votes_series"`

	// RequestsPerSecond and Burst bound the client-side request rate.
	RequestsPerSecond float64 `json:"requests_per_second" koanf:"requests_per_second"`
	Burst             int     `json:"burst" koanf:"burst"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
}

// DefaultConfig returns production defaults; the API key must still be set.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  "https://api.themoviedb.org/3",
		Language: "ko-KR",
		Region:   "KR",
		// Netflix, wavve, TVING, Coupang Play.
		Providers:         "8|356|337|97",
		MinVoteAverage:    7.0,
		MinVotesMovie:     300,
		MinVotesSeries:    200,
		RequestsPerSecond: 20,
		Burst:             5,
		Timeout:           30 * time.Second,
	}
}

// Validate checks the settings the client cannot operate without.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if c.RequestsPerSecond <= 0 || c.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

// Client talks to the upstream catalog API. Safe for concurrent use; each
// request creates its own HTTP request and the rate limiter is internally
// synchronized.
//
// The client handles:
//   - Client-side rate limiting ahead of every request
//   - Exponential backoff for HTTP 429, honoring Retry-After
//   - The upstream JSON error envelope on non-2xx statuses
type Client struct {
	cfg            *Config
	hc             *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient builds a Client from cfg.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tmdb config: %w", err)
	}
	return &Client{
		cfg:            cfg,
		hc:             &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     5,
		retryBaseDelay: time.Second,
	}, nil
}

// Discover fetches one page of high-rated titles available through the
// configured providers in the configured region.
func (c *Client) Discover(ctx context.Context, mediaType catalog.MediaType, page int) (*DiscoverResponse, error) {
	minVotes := c.cfg.MinVotesMovie
	if mediaType == catalog.MediaTypeSeries {
		minVotes = c.cfg.MinVotesSeries
	}
	params := url.Values{}
	params.Set("region", c.cfg.Region)
	params.Set("watch_region", c.cfg.Region)
	params.Set("with_watch_providers", c.cfg.Providers)
	params.Set("vote_average.gte", strconv.FormatFloat(c.cfg.MinVoteAverage, 'f', -1, 64))
	params.Set("vote_count.gte", strconv.Itoa(minVotes))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var out DiscoverResponse
	if err := c.get(ctx, fmt.Sprintf("/discover/%s", mediaType), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail fetches the per-title fields discover omits (runtimes).
func (c *Client) Detail(ctx context.Context, mediaType catalog.MediaType, id int) (*DetailResponse, error) {
	var out DetailResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WatchProviders returns the flat-rate streaming provider names for the
// title in the configured region, in upstream order. An empty slice means
// the title is not streamable there.
func (c *Client) WatchProviders(ctx context.Context, mediaType catalog.MediaType, id int) ([]string, error) {
	var out WatchProvidersResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/watch/providers", mediaType, id), nil, &out); err != nil {
		return nil, err
	}
	offering, ok := out.Results[c.cfg.Region]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(offering.Flatrate))
	for _, p := range offering.Flatrate {
		names = append(names, p.ProviderName)
	}
	return names, nil
}

// Credits returns the billed cast names, top-billed first, capped at max.
func (c *Client) Credits(ctx context.Context, mediaType catalog.MediaType, id, max int) ([]string, error) {
	var out CreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/credits", mediaType, id), nil, &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, max)
	for _, member := range out.Cast {
		if len(names) == max {
			break
		}
		names = append(names, member.Name)
	}
	return names, nil
}

// get performs a rate-limited GET against path and decodes the JSON body
// into result. The api_key and language parameters are added here.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("language", c.cfg.Language)
	reqURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, params.Encode())

	resp, err := c.doWithRetry(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request: %w", path, decodeAPIError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// doWithRetry waits on the rate limiter, then issues the request, retrying
// HTTP 429 with exponential backoff (1s, 2s, 4s, 8s, 16s). Backoff waits are
// cancellable through the context.
func (c *Client) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		retryAfter := resp.Header.Get("Retry-After")
		_ = resp.Body.Close()
		if attempt == c.maxRetries {
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter != "" {
			if d, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = d
			}
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
}

// decodeAPIError turns a non-200 response into an error carrying the
// upstream status message when one is present.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusMessage != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.StatusMessage)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
}
