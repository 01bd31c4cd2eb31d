package scoring

import "github.com/AlexanderWinters/the-score-card/internal/domain/courses"

// Holes is the fixed length of every per-hole array in a round.
const Holes = courses.HolesPerRound

// MinHolesToSave is the number of scored holes required before a round can be saved.
const MinHolesToSave = 9

// RoundState is the in-progress round under edit. A zero score means the hole
// has not been entered yet.
type RoundState struct {
	PlayerName   string      `json:"playerName"`
	Handicap     int         `json:"handicap"`
	CourseID     int64       `json:"courseId"`
	TeeBoxID     int64       `json:"teeBoxId"`
	Scores       [Holes]int  `json:"scores"`
	Putts        [Holes]int  `json:"putts"`
	GIR          [Holes]bool `json:"gir"`
	FairwayHits  [Holes]bool `json:"fairways"`
	BunkerCounts [Holes]int  `json:"bunkers"`
}

// CompletedHoles counts holes with a non-zero score.
func (s RoundState) CompletedHoles() int {
	n := 0
	for _, score := range s.Scores {
		if score != 0 {
			n++
		}
	}
	return n
}

// ClearHoles resets every per-hole array, keeping player, handicap and selection.
func (s *RoundState) ClearHoles() {
	s.Scores = [Holes]int{}
	s.Putts = [Holes]int{}
	s.GIR = [Holes]bool{}
	s.FairwayHits = [Holes]bool{}
	s.BunkerCounts = [Holes]int{}
}
