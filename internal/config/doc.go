// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package config loads the layered service configuration with koanf v2.
// Precedence is environment variables over an optional YAML file over
// built-in defaults. Section structs for the recommendation pipeline, the
// upstream client and the ingestion job live with their packages; this
// package composes and validates them.
package config
