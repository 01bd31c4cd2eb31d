package scoring

import "github.com/AlexanderWinters/the-score-card/internal/domain/courses"

// AutoGIR reports whether the green was reached in regulation: the strokes
// taken before putting are at most par minus two. The 2-putt par is the common
// case of this rule. Both score and putts must be entered.
func AutoGIR(score, putts int, h courses.Hole) bool {
	if score <= 0 || putts <= 0 {
		return false
	}
	return score-putts <= h.Par-2
}

// ApplyAutoGIR recomputes the flag for the hole at index once both score and
// putts are entered. Otherwise the current flag, possibly set by the player,
// is kept.
func ApplyAutoGIR(state *RoundState, index int, h courses.Hole) {
	if state == nil || index < 0 || index >= Holes {
		return
	}
	score, putts := state.Scores[index], state.Putts[index]
	if score <= 0 || putts <= 0 {
		return
	}
	state.GIR[index] = AutoGIR(score, putts, h)
}
