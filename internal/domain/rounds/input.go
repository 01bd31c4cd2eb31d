package rounds

import (
	"fmt"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
)

// Per-hole limits accepted at the API boundary.
const (
	MaxScore   = 20
	MaxPutts   = 10
	MaxBunkers = 10
)

// RoundInput is the body of a save request.
type RoundInput struct {
	CourseID int64  `json:"course_id"`
	TeeBoxID int64  `json:"tee_box_id"`
	Date     string `json:"date"`
	Scores   []int  `json:"scores"`
	Putts    []int  `json:"putts,omitempty"`
	GIR      []bool `json:"gir,omitempty"`
	Fairways []bool `json:"fairways,omitempty"`
	Bunkers  []int  `json:"bunkers,omitempty"`
}

// FromState builds an input from a session round.
func FromState(state scoring.RoundState, date string) RoundInput {
	return RoundInput{
		CourseID: state.CourseID,
		TeeBoxID: state.TeeBoxID,
		Date:     date,
		Scores:   append([]int(nil), state.Scores[:]...),
		Putts:    append([]int(nil), state.Putts[:]...),
		GIR:      append([]bool(nil), state.GIR[:]...),
		Fairways: append([]bool(nil), state.FairwayHits[:]...),
		Bunkers:  append([]int(nil), state.BunkerCounts[:]...),
	}
}

// Validate checks shapes and ranges. Optional arrays may be shorter than a
// full round and are padded by State.
func (in RoundInput) Validate() error {
	var ve domain.ValidationError
	if in.CourseID <= 0 {
		ve.Add("course_id", "required")
	}
	if in.TeeBoxID <= 0 {
		ve.Add("tee_box_id", "required")
	}
	if len(in.Scores) != scoring.Holes {
		ve.Add("scores", fmt.Sprintf("expected %d entries, got %d", scoring.Holes, len(in.Scores)))
	}
	checkInts(&ve, "scores", in.Scores, MaxScore)
	checkInts(&ve, "putts", in.Putts, MaxPutts)
	checkInts(&ve, "bunkers", in.Bunkers, MaxBunkers)
	if len(in.GIR) > scoring.Holes {
		ve.Add("gir", fmt.Sprintf("at most %d entries", scoring.Holes))
	}
	if len(in.Fairways) > scoring.Holes {
		ve.Add("fairways", fmt.Sprintf("at most %d entries", scoring.Holes))
	}
	return ve.Err()
}

func checkInts(ve *domain.ValidationError, field string, values []int, maxValue int) {
	if len(values) > scoring.Holes {
		ve.Add(field, fmt.Sprintf("at most %d entries", scoring.Holes))
		return
	}
	for i, v := range values {
		if v < 0 || v > maxValue {
			ve.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("must be between 0 and %d", maxValue))
		}
	}
}

// State converts the input to a round state, padding short arrays.
func (in RoundInput) State() scoring.RoundState {
	state := scoring.RoundState{CourseID: in.CourseID, TeeBoxID: in.TeeBoxID}
	copy(state.Scores[:], in.Scores)
	copy(state.Putts[:], in.Putts)
	copy(state.GIR[:], in.GIR)
	copy(state.FairwayHits[:], in.Fairways)
	copy(state.BunkerCounts[:], in.Bunkers)
	return state
}

// Round builds the record to persist for user on the normalized date.
func (in RoundInput) Round(userID int64, date string) Round {
	state := in.State()
	return Round{
		UserID:   userID,
		CourseID: in.CourseID,
		TeeBoxID: in.TeeBoxID,
		Date:     date,
		Scores:   append([]int(nil), state.Scores[:]...),
		Putts:    append([]int(nil), state.Putts[:]...),
		GIR:      append([]bool(nil), state.GIR[:]...),
		Fairways: append([]bool(nil), state.FairwayHits[:]...),
		Bunkers:  append([]int(nil), state.BunkerCounts[:]...),
	}
}
