// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package ingest builds the canonical dataset out-of-band. The builder
// walks the upstream discover pages, enriches each title with providers,
// runtimes and billed cast, drops anything not watchable on an
// allow-listed domestic service, and normalizes the rest. The result is
// written atomically so the serving process can reload it mid-run.
package ingest
