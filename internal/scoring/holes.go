package scoring

import (
	"errors"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// ErrIncompleteRound is returned when a round has too few scored holes to be saved.
var ErrIncompleteRound = errors.New("round must have at least 9 completed holes")

// CurrentHole returns the first hole, by number, that has no score yet.
// The second result is false once all holes are scored.
func CurrentHole(state RoundState, tee courses.TeeBox) (courses.Hole, bool) {
	for _, h := range sortedHoles(tee) {
		idx, ok := holeIndex(h)
		if !ok {
			continue
		}
		if state.Scores[idx] == 0 {
			return h, true
		}
	}
	return courses.Hole{}, false
}

// NextHole returns the hole that follows the current hole, if any.
func NextHole(state RoundState, tee courses.TeeBox) (courses.Hole, bool) {
	current, ok := CurrentHole(state, tee)
	if !ok {
		return courses.Hole{}, false
	}
	return tee.Hole(current.Number + 1)
}

// ValidateForSave enforces the minimum number of scored holes.
func ValidateForSave(state RoundState) error {
	if state.CompletedHoles() < MinHolesToSave {
		return ErrIncompleteRound
	}
	return nil
}

func holeIndex(h courses.Hole) (int, bool) {
	idx := h.Number - 1
	if idx < 0 || idx >= Holes {
		return 0, false
	}
	return idx, true
}

func sortedHoles(tee courses.TeeBox) []courses.Hole {
	holes := make([]courses.Hole, len(tee.Holes))
	copy(holes, tee.Holes)
	courses.SortHoles(holes)
	return holes
}
