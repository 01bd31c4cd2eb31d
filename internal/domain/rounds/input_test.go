package rounds

import (
	"testing"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
)

func fullScores(v int) []int {
	scores := make([]int, scoring.Holes)
	for i := range scores {
		scores[i] = v
	}
	return scores
}

func TestValidateAcceptsPaddedOptionalArrays(t *testing.T) {
	in := RoundInput{CourseID: 1, TeeBoxID: 2, Scores: fullScores(4), Putts: []int{2, 2}, GIR: []bool{true}}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	state := in.State()
	if state.Putts[1] != 2 || state.Putts[2] != 0 || !state.GIR[0] || state.GIR[1] {
		t.Fatalf("unexpected padded state %+v", state)
	}

	r := in.Round(7, "2024-05-01")
	if len(r.Putts) != scoring.Holes || len(r.Bunkers) != scoring.Holes || r.UserID != 7 {
		t.Fatalf("expected full arrays on stored round, got %+v", r)
	}
}

func TestValidateRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		in   RoundInput
	}{
		{"missing course", RoundInput{TeeBoxID: 1, Scores: fullScores(4)}},
		{"missing tee", RoundInput{CourseID: 1, Scores: fullScores(4)}},
		{"short scores", RoundInput{CourseID: 1, TeeBoxID: 1, Scores: []int{4, 4}}},
		{"negative score", RoundInput{CourseID: 1, TeeBoxID: 1, Scores: append(fullScores(4)[:17], -1)}},
		{"huge putts", RoundInput{CourseID: 1, TeeBoxID: 1, Scores: fullScores(4), Putts: []int{11}}},
		{"long gir", RoundInput{CourseID: 1, TeeBoxID: 1, Scores: fullScores(4), GIR: make([]bool, 19)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.in.Validate(); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFromStateRoundTrips(t *testing.T) {
	var state scoring.RoundState
	state.CourseID, state.TeeBoxID = 3, 4
	state.Scores[0] = 5
	state.GIR[0] = true

	in := FromState(state, "2024-06-01")
	if got := in.State(); got != state {
		t.Fatalf("expected state to round trip, got %+v", got)
	}
}

func TestTotalScoreSkipsUnentered(t *testing.T) {
	if got := TotalScore([]int{4, 0, 5, 0, 3}); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}
