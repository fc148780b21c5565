// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package tmdb is the client for the upstream catalog API. The ingestion
// job is its only consumer; nothing here runs at request time.
//
// Client handles auth, language and region parameters, client-side rate
// limiting, and 429 backoff. CircuitBreakerClient layers fail-fast behavior
// on top for ingestion runs against a degraded upstream.
package tmdb
