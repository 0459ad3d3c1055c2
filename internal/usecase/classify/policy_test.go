package classify_test

import (
	"math"
	"testing"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/usecase/classify"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{7, 7},
		{7.5, 8},
		{7.49, 7},
		{0, 1},
		{-3, 1},
		{42, 10},
		{10.4, 10},
		{math.NaN(), 1},
		{math.Inf(1), 10},
	}
	for _, tt := range tests {
		if got := classify.ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v)=%d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestApplyStagePolicy(t *testing.T) {
	tests := []struct {
		name      string
		stage     string
		score     int
		wantStage entity.Stage
		wantScore int
	}{
		{"early bonus", "early_stage", 6, entity.StageEarly, 8},
		{"early recapped", "early_stage", 9, entity.StageEarly, 10},
		{"growth unchanged", "growth_late_stage", 9, entity.StageGrowth, 9},
		{"public unchanged", "public_pe", 3, entity.StagePublic, 3},
		{"unknown defaults", "series_b", 4, classify.DefaultStage, 4},
		{"absent defaults", "", 4, entity.StageGrowth, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, sc := classify.ApplyStagePolicy(tt.stage, tt.score)
			if st != tt.wantStage || sc != tt.wantScore {
				t.Errorf("got (%q,%d), want (%q,%d)", st, sc, tt.wantStage, tt.wantScore)
			}
		})
	}
}
