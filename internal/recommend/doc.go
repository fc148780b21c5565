// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

// Package recommend turns the canonical catalog and a sparse set of survey
// answers into a bounded, relevant shortlist.
//
// # Pipeline
//
// Each request runs three steps over the immutable catalog slice:
//
//  1. Filter: every non-absent answer imposes one constraint; a record must
//     satisfy all of them (AND semantics).
//  2. Fallback: an empty filter result falls back to the full catalog,
//     unless a strict answer (actor search, genre selection) is active, in
//     which case the empty result is honored.
//  3. Sample: a uniform shuffle-then-take draw without replacement. The
//     random source is injected so tests can pin golden outputs; production
//     use is deliberately unseeded so re-asking rerolls the shortlist.
//
// All operations are pure and synchronous; concurrent calls are safe because
// nothing is mutated and the random source is mutex-guarded.
//
// # Usage
//
//	picker, err := recommend.NewPicker(recommend.DefaultConfig(), logger, nil)
//	result := picker.Recommend(store.Titles(), &answers, 10)
//
// The package also ranks "similar titles" for detail pages; the similarity
// weights are heuristics carried in Config rather than hard-coded.
package recommend
