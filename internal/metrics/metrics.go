// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Recommendation rounds and fallback rate
// - Dataset loads and catalog size
// - Upstream catalog client circuit breaker

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Recommendation Metrics
	RecommendRounds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_rounds_total",
			Help: "Total number of recommendation rounds served",
		},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total rounds where the full catalog replaced an empty match set",
		},
	)

	RecommendEmptyStrict = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_empty_strict_total",
			Help: "Total rounds returning zero titles because a strict answer matched nothing",
		},
	)

	RecommendPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_pool_size",
			Help:    "Sampling pool size per recommendation round",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Dataset Metrics
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of dataset load attempts",
		},
		[]string{"status"}, // "loaded", "empty", "unavailable"
	)

	DatasetTitles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_titles",
			Help: "Current number of titles in the loaded catalog",
		},
	)

	DatasetAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_age_seconds",
			Help: "Seconds since the loaded dataset was generated",
		},
	)

	// Ingestion Metrics
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_duration_seconds",
			Help:    "Duration of full dataset builds in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	IngestTitlesCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_titles_collected_total",
			Help: "Total titles collected across all ingestion runs",
		},
	)

	IngestTitlesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_titles_skipped_total",
			Help: "Total titles skipped during ingestion",
		},
		[]string{"reason"}, // "no_providers", "enrich_failed", "malformed"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendRound records one recommendation round.
func RecordRecommendRound(poolSize int, fellBack, emptyStrict bool) {
	RecommendRounds.Inc()
	RecommendPoolSize.Observe(float64(poolSize))
	if fellBack {
		RecommendFallbacks.Inc()
	}
	if emptyStrict {
		RecommendEmptyStrict.Inc()
	}
}

// RecordDatasetLoad records a dataset load attempt and the resulting catalog.
func RecordDatasetLoad(status string, titles int, generatedAt time.Time) {
	DatasetLoads.WithLabelValues(status).Inc()
	DatasetTitles.Set(float64(titles))
	if !generatedAt.IsZero() {
		DatasetAge.Set(time.Since(generatedAt).Seconds())
	}
}
