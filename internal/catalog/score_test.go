// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package catalog

import "testing"

func TestComputeScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		rating        float64
		votes         int
		providerCount int
		want          int
	}{
		{
			// Regression pin: this value is load-bearing for dataset
			// compatibility and must never drift.
			name:          "pinned regression value",
			rating:        8.7,
			votes:         20000,
			providerCount: 2,
			want:          89,
		},
		{
			name:          "zero rating yields zero",
			rating:        0,
			votes:         1000,
			providerCount: 3,
			want:          0,
		},
		{
			name:          "zero votes zero providers",
			rating:        7.0,
			votes:         0,
			providerCount: 0,
			want:          49, // 42 + 0 + 70*0.7*0.15
		},
		{
			name:          "availability boost caps at two providers",
			rating:        8.0,
			votes:         100,
			providerCount: 2,
			want:          ComputeScore(8.0, 100, 5),
		},
		{
			name:          "extreme popularity clamps to 100",
			rating:        10,
			votes:         10000000,
			providerCount: 3,
			want:          100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeScore(tt.rating, tt.votes, tt.providerCount)
			if got != tt.want {
				t.Errorf("ComputeScore(%v, %d, %d) = %d, want %d",
					tt.rating, tt.votes, tt.providerCount, got, tt.want)
			}
		})
	}
}

func TestComputeScore_Range(t *testing.T) {
	t.Parallel()

	for rating := 0.0; rating <= 10.0; rating += 0.5 {
		for _, votes := range []int{0, 10, 500, 5000, 200000, 50000000} {
			for providers := 0; providers <= 4; providers++ {
				got := ComputeScore(rating, votes, providers)
				if got < 0 || got > 100 {
					t.Fatalf("ComputeScore(%v, %d, %d) = %d, out of [0,100]",
						rating, votes, providers, got)
				}
			}
		}
	}
}

func TestComputeScore_MonotonicInRating(t *testing.T) {
	t.Parallel()

	for _, votes := range []int{0, 300, 20000} {
		for providers := 0; providers <= 3; providers++ {
			prev := ComputeScore(0, votes, providers)
			for rating := 0.1; rating <= 10.0; rating += 0.1 {
				got := ComputeScore(rating, votes, providers)
				if got < prev {
					t.Fatalf("score decreased: ComputeScore(%v, %d, %d) = %d < %d",
						rating, votes, providers, got, prev)
				}
				prev = got
			}
		}
	}
}
