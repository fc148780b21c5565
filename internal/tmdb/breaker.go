// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
	"github.com/ashlight2510/pick/internal/metrics"
)

// CircuitBreakerClient wraps Client with a circuit breaker so a degraded
// upstream API cannot stall a whole ingestion run: once the breaker opens,
// remaining calls fail fast and the run finishes with whatever was
// collected.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests exercise the wrapped Client directly rather than mocking the
// breaker.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps an upstream client. The breaker allows 3
// half-open probes, measures over 1 minute, waits 2 minutes before probing
// an open circuit, and opens at a 60% failure rate over at least 10
// requests.
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	cbName := "tmdb-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Discover fetches one discover page with circuit breaker protection.
func (cbc *CircuitBreakerClient) Discover(ctx context.Context, mediaType catalog.MediaType, page int) (*DiscoverResponse, error) {
	return castResult[DiscoverResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.Discover(ctx, mediaType, page)
	}))
}

// Detail fetches per-title fields with circuit breaker protection.
func (cbc *CircuitBreakerClient) Detail(ctx context.Context, mediaType catalog.MediaType, id int) (*DetailResponse, error) {
	return castResult[DetailResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.Detail(ctx, mediaType, id)
	}))
}

// WatchProviders fetches region providers with circuit breaker protection.
func (cbc *CircuitBreakerClient) WatchProviders(ctx context.Context, mediaType catalog.MediaType, id int) ([]string, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.WatchProviders(ctx, mediaType, id)
	})
	if err != nil {
		return nil, err
	}
	names, ok := result.([]string)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return names, nil
}

// Credits fetches billed cast names with circuit breaker protection.
func (cbc *CircuitBreakerClient) Credits(ctx context.Context, mediaType catalog.MediaType, id, max int) ([]string, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Credits(ctx, mediaType, id, max)
	})
	if err != nil {
		return nil, err
	}
	names, ok := result.([]string)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return names, nil
}
