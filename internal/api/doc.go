// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package api serves the versioned HTTP surface of the recommendation
// service on a chi router. Every endpoint responds with the APIResponse
// envelope; handlers read the catalog through the dataset store and never
// mutate it, so the whole surface is safe under concurrent load.
package api
