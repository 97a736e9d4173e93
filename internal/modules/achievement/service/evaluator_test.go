package service

import (
	"testing"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/entity"
)

func newDefaultEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(catalog.Default().Achievements)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func ids(list []catalog.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestNewStatsNormalizesCategories(t *testing.T) {
	user := &entity.User{EcoPoints: 20, TotalPointsEarned: 40}
	counts := map[string]int64{
		"Non-Recyclable": 1,
		"non_recyclable": 2,
		"Organic Waste":  1,
		"Recyclable":     3,
		"e-waste":        1,
	}

	s := NewStats(user, counts)

	if s.TotalUploads != 8 {
		t.Errorf("TotalUploads = %d, want 8", s.TotalUploads)
	}
	if got := s.ByCategory[entity.CategoryNonRecyclable]; got != 3 {
		t.Errorf("Non-Recyclable = %d, want 3", got)
	}
	if got, _ := s.Value(StatOrganicCount); got != 1 {
		t.Errorf("organic_count = %d, want 1", got)
	}
	if got, _ := s.Value(StatHazardousCount); got != 0 {
		t.Errorf("hazardous_count = %d, want 0", got)
	}
	if got, _ := s.Value(StatCurrentPoints); got != 20 {
		t.Errorf("current_points = %d, want 20", got)
	}
	if _, ok := s.Value("karma"); ok {
		t.Error("Value(karma) reported ok")
	}
}

func TestNewEvaluatorRejectsUnknownStatistic(t *testing.T) {
	_, err := NewEvaluator([]catalog.Achievement{{ID: "x", Title: "X", Requirements: map[string]int64{"karma": 1}}})
	if err == nil {
		t.Fatal("expected error for unknown statistic")
	}
}

func TestEvaluate(t *testing.T) {
	e := newDefaultEvaluator(t)

	tests := []struct {
		name     string
		stats    Stats
		unlocked map[string]bool
		want     []string
	}{
		{
			name:  "nothing yet",
			stats: Stats{},
			want:  nil,
		},
		{
			name:  "first upload",
			stats: Stats{TotalUploads: 1, TotalPointsEarned: 10},
			want:  []string{"first_upload"},
		},
		{
			name:     "eco starter crossing 50",
			stats:    Stats{TotalUploads: 6, TotalPointsEarned: 55},
			unlocked: map[string]bool{"first_upload": true},
			want:     []string{"fifty_points"},
		},
		{
			name:  "recycler",
			stats: Stats{TotalUploads: 10, TotalPointsEarned: 100, ByCategory: map[entity.WasteCategory]int64{entity.CategoryRecyclable: 10}},
			unlocked: map[string]bool{
				"first_upload": true, "ten_uploads": true, "fifty_points": true,
			},
			want: []string{"hundred_points", "recycler"},
		},
		{
			name:  "everything already unlocked",
			stats: Stats{TotalUploads: 100, TotalPointsEarned: 1000},
			unlocked: map[string]bool{
				"first_upload": true, "ten_uploads": true, "fifty_points": true,
				"hundred_points": true, "five_hundred_points": true,
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(e.Evaluate(tt.stats, tt.unlocked))
			if len(got) != len(tt.want) {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Evaluate() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	e := newDefaultEvaluator(t)
	stats := Stats{TotalUploads: 12, TotalPointsEarned: 120}

	unlocked := map[string]bool{}
	for _, a := range e.Evaluate(stats, unlocked) {
		unlocked[a.ID] = true
	}
	if again := e.Evaluate(stats, unlocked); len(again) != 0 {
		t.Errorf("second Evaluate() = %v, want none", ids(again))
	}
}

func TestEvaluateNeverRevokes(t *testing.T) {
	e := newDefaultEvaluator(t)
	unlocked := map[string]bool{"fifty_points": true}

	// balance spent down to zero; lifetime points are what count
	got := e.Evaluate(Stats{TotalUploads: 5, TotalPointsEarned: 50, CurrentPoints: 0}, unlocked)
	for _, a := range got {
		if a.ID == "fifty_points" {
			t.Error("unlocked achievement returned again")
		}
	}
}
