package types

import "testing"

func TestPercentage(t *testing.T) {
	var r AssessmentResult
	r.Scores.Set(LevelApply, 8)
	r.MaxScores.Set(LevelApply, 10)
	r.Scores.Set(LevelCreate, 12)
	r.MaxScores.Set(LevelCreate, 10)
	r.Scores.Set(LevelEvaluate, -3)
	r.MaxScores.Set(LevelEvaluate, 10)

	cases := []struct {
		name     string
		level    CognitiveLevel
		want     float64
		assessed bool
	}{
		{"simple", LevelApply, 80, true},
		{"clamped_high", LevelCreate, 100, true},
		{"clamped_low", LevelEvaluate, 0, true},
		{"unassessed", LevelRemember, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, assessed := r.Percentage(tc.level)
			if assessed != tc.assessed {
				t.Fatalf("assessed = %v, want %v", assessed, tc.assessed)
			}
			if got != tc.want {
				t.Fatalf("Percentage(%s) = %v, want %v", tc.level, got, tc.want)
			}
		})
	}
}

func TestLevelScoresRoundTrip(t *testing.T) {
	var s LevelScores
	for i, level := range CognitiveLevels {
		s.Set(level, float64(i*10))
	}
	var seen int
	s.ForEachLevel(func(level CognitiveLevel, v float64) {
		if v != s.Get(level) {
			t.Fatalf("ForEachLevel value %v disagrees with Get(%s) %v", v, level, s.Get(level))
		}
		seen++
	})
	if seen != len(CognitiveLevels) {
		t.Fatalf("expected %d levels visited, got %d", len(CognitiveLevels), seen)
	}
}

func TestCognitiveLevelValid(t *testing.T) {
	for _, level := range CognitiveLevels {
		if !level.Valid() {
			t.Errorf("%s must be valid", level)
		}
	}
	if CognitiveLevel("memorize").Valid() {
		t.Error("unknown level must be invalid")
	}
}
