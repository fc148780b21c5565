// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package catalog holds the canonical title dataset: the TitleRecord model,
// the recommendability score calculator, the normalizer that turns raw
// upstream records into canonical ones, and the Store that loads the
// persisted dataset with an explicit load/invalidate lifecycle.
//
// # Pipeline position
//
// The ingestion job (cmd/ingest) fetches raw records from the upstream
// catalog API, runs Normalize over them and writes the resulting Dataset to
// disk. At serve time the Store reads that file once and hands the immutable
// record slice to the recommendation engine. Normalization is idempotent:
// re-normalizing canonical records changes nothing but ordering.
//
// # Invariants
//
//   - Score is always in [0,100].
//   - Providers contain no duplicate or alias-form entries.
//   - A record with no resolved provider never enters the dataset.
//   - (Type, ID) is the unique record key; duplicates collapse
//     last-seen-wins during normalization.
package catalog
