// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package metrics defines the Prometheus collectors for the service. All
// collectors register with the default registry at init via promauto and are
// exposed on /metrics by the API router.
package metrics
