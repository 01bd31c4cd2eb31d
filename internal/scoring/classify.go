package scoring

import "github.com/AlexanderWinters/the-score-card/internal/domain/courses"

// ScoreType classifies a hole score relative to par.
type ScoreType string

const (
	ScoreNone               ScoreType = "none"
	ScoreEagleOrBetter      ScoreType = "eagleOrBetter"
	ScoreBirdie             ScoreType = "birdie"
	ScorePar                ScoreType = "par"
	ScoreBogey              ScoreType = "bogey"
	ScoreDoubleBogeyOrWorse ScoreType = "doubleBogeyOrWorse"
)

// ClassifyScore maps a score and par to its display class. A zero score is unentered.
func ClassifyScore(score, par int) ScoreType {
	if score == 0 {
		return ScoreNone
	}
	switch diff := score - par; {
	case diff <= -2:
		return ScoreEagleOrBetter
	case diff == -1:
		return ScoreBirdie
	case diff == 0:
		return ScorePar
	case diff == 1:
		return ScoreBogey
	default:
		return ScoreDoubleBogeyOrWorse
	}
}

// StrokesReceived returns the handicap strokes granted on a hole. At most one
// stroke is given per hole, on the holes whose index is within the handicap.
func StrokesReceived(h courses.Hole, handicap int) int {
	if h.HandicapIndex <= handicap {
		return 1
	}
	return 0
}

// NetPar is the par adjusted by the strokes received.
func NetPar(h courses.Hole, handicap int) int {
	return h.Par + StrokesReceived(h, handicap)
}

// NetScore is the score minus the strokes received. The second result is false
// when the hole has not been entered.
func NetScore(score int, h courses.Hole, handicap int) (int, bool) {
	if score == 0 {
		return 0, false
	}
	return score - StrokesReceived(h, handicap), true
}
