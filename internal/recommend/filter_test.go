// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package recommend

import (
	"io"
	"testing"

	"github.com/ashlight2510/pick/internal/catalog"
	"github.com/ashlight2510/pick/internal/logging"
)

func newTestPicker(t *testing.T) *Picker {
	t.Helper()
	p, err := NewPicker(DefaultConfig(), logging.NewTestLogger(io.Discard), nil)
	if err != nil {
		t.Fatalf("NewPicker: %v", err)
	}
	return p
}

// testCatalog builds a small fixed catalog covering both media types,
// a spread of scores, durations and providers.
func testCatalog() []catalog.TitleRecord {
	return []catalog.TitleRecord{
		{
			ID: 1, Type: catalog.MediaTypeMovie, Title: "Blockbuster",
			Year: "2024", Runtime: 148, Score: 92, Votes: 25000,
			Providers: []string{"Netflix", "wavve"},
			Genres:    []string{"Action", "Science Fiction"},
			Cast:      []string{"Gong Yoo", "Bae Doona"},
			Tags:      []string{catalog.TagMustWatch},
		},
		{
			ID: 2, Type: catalog.MediaTypeMovie, Title: "Quiet Indie",
			Year: "2023", Runtime: 96, Score: 78, Votes: 900,
			Providers: []string{"Watcha"},
			Genres:    []string{"Drama"},
			Cast:      []string{"Kim Tae-ri"},
			Tags:      []string{catalog.TagHiddenGem, catalog.TagEasyWatch},
		},
		{
			ID: 3, Type: catalog.MediaTypeSeries, Title: "Comfort Sitcom",
			Year: "2022", EpisodeRuntime: 25, Score: 81, Votes: 12000,
			Providers: []string{"Netflix", "TVING"},
			Genres:    []string{"Comedy"},
			Cast:      []string{"Lee Kwang-soo"},
			Tags:      []string{catalog.TagEasyBinge},
		},
		{
			ID: 4, Type: catalog.MediaTypeSeries, Title: "Prestige Epic",
			Year: "2024", EpisodeRuntime: 62, Score: 88, Votes: 40000,
			Providers: []string{"Disney Plus"},
			Genres:    []string{"Drama", "Science Fiction"},
			Cast:      []string{"Pedro Pascal"},
			Tags:      []string{catalog.TagMustWatch},
		},
		{
			ID: 5, Type: catalog.MediaTypeMovie, Title: "Mediocre Filler",
			Year: "2021", Runtime: 110, Score: 55, Votes: 3000,
			Providers: []string{"wavve", "TVING", "Coupang Play"},
			Genres:    []string{"Comedy"},
			Cast:      []string{"Ma Dong-seok"},
			Tags:      []string{catalog.TagWidelyAvailable, catalog.TagEasyWatch},
		},
	}
}

func idsOf(titles []catalog.TitleRecord) []int {
	ids := make([]int, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}
	return ids
}

func sameIDs(got []catalog.TitleRecord, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i, t := range got {
		if t.ID != want[i] {
			return false
		}
	}
	return true
}

func TestFilterConstraints(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)
	cat := testCatalog()

	tests := []struct {
		name    string
		answers AnswerSet
		wantIDs []int
	}{
		{"empty answers pass everything", AnswerSet{}, []int{1, 2, 3, 4, 5}},
		{"media type movie", AnswerSet{MediaType: catalog.MediaTypeMovie}, []int{1, 2, 5}},
		{"media type series", AnswerSet{MediaType: catalog.MediaTypeSeries}, []int{3, 4}},
		{"when now keeps short watches", AnswerSet{When: WhenNow}, []int{2, 3, 5}},
		{"when weekend keeps series", AnswerSet{When: WhenWeekend}, []int{3, 4}},
		{"when tonight imposes nothing", AnswerSet{When: WhenTonight}, []int{1, 2, 3, 4, 5}},
		{"when browse imposes nothing", AnswerSet{When: WhenBrowse}, []int{1, 2, 3, 4, 5}},
		{"duration 40m", AnswerSet{Duration: Duration40m}, []int{3}},
		{"duration 60m mixes media types", AnswerSet{Duration: Duration60m}, []int{3}},
		{"duration 120m mixes media types", AnswerSet{Duration: Duration120m}, []int{2, 3, 4, 5}},
		{"duration 2h is 120m synonym", AnswerSet{Duration: Duration2h}, []int{2, 3, 4, 5}},
		{"duration binge keeps series", AnswerSet{Duration: DurationBinge}, []int{3, 4}},
		{"duration any imposes nothing", AnswerSet{Duration: DurationAny}, []int{1, 2, 3, 4, 5}},
		{"companion couple score 75", AnswerSet{Companion: CompanionCouple}, []int{1, 2, 3, 4}},
		{"companion family score 75", AnswerSet{Companion: CompanionFamily}, []int{1, 2, 3, 4}},
		{"companion friends score 70", AnswerSet{Companion: CompanionFriends}, []int{1, 2, 3, 4}},
		{"companion solo imposes nothing", AnswerSet{Companion: CompanionSolo}, []int{1, 2, 3, 4, 5}},
		{"mood laugh short and scored", AnswerSet{Mood: MoodLaugh}, []int{2, 3}},
		{"mood relax short only", AnswerSet{Mood: MoodRelax}, []int{2, 3, 5}},
		{"mood immerse score 80", AnswerSet{Mood: MoodImmerse}, []int{1, 3, 4}},
		{"mood think score 80", AnswerSet{Mood: MoodThink}, []int{1, 3, 4}},
		{"provider exact match", AnswerSet{Provider: "Netflix"}, []int{1, 3}},
		{"provider unknown matches nothing", AnswerSet{Provider: "HBO Max"}, nil},
		{"preset must watch score 85", AnswerSet{Preset: PresetMustWatch}, []int{1, 4}},
		{"preset hidden gem score and votes", AnswerSet{Preset: PresetHiddenGem}, []int{2}},
		{"single genre", AnswerSet{Genres: []string{"Drama"}}, []int{2, 4}},
		{"genre AND semantics", AnswerSet{Genres: []string{"Drama", "Science Fiction"}}, []int{4}},
		{"genre match is case-insensitive", AnswerSet{Genres: []string{"drama"}}, []int{2, 4}},
		{"actor substring case-insensitive", AnswerSet{Actor: "gong"}, []int{1}},
		{"actor full name", AnswerSet{Actor: "Pedro Pascal"}, []int{4}},
		{"combined answers AND together", AnswerSet{MediaType: catalog.MediaTypeSeries, Provider: "Netflix"}, []int{3}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := p.Filter(cat, &tc.answers)
			if !sameIDs(got, tc.wantIDs) {
				t.Errorf("Filter() ids = %v, want %v", idsOf(got), tc.wantIDs)
			}
		})
	}
}

func TestFilterDurationRequiresKnownRuntime(t *testing.T) {
	t.Parallel()
	p := newTestPicker(t)

	cat := []catalog.TitleRecord{
		{ID: 10, Type: catalog.MediaTypeMovie, Title: "No Runtime", Score: 90},
		{ID: 11, Type: catalog.MediaTypeSeries, Title: "No Episode Runtime", Score: 90},
	}
	got := p.Filter(cat, &AnswerSet{Duration: Duration120m})
	if len(got) != 0 {
		t.Errorf("records with unknown durations passed a duration band: %v", idsOf(got))
	}
}

func TestStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers AnswerSet
		want    bool
	}{
		{"empty", AnswerSet{}, false},
		{"actor set", AnswerSet{Actor: "Gong Yoo"}, true},
		{"genres set", AnswerSet{Genres: []string{"Drama"}}, true},
		{"provider only is not strict", AnswerSet{Provider: "Netflix"}, false},
		{"preset only is not strict", AnswerSet{Preset: PresetMustWatch}, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.answers.Strict(); got != tc.want {
				t.Errorf("Strict() = %v, want %v", got, tc.want)
			}
		})
	}
}
