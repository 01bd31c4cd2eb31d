package scoring

import (
	"strconv"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// HoleLine is the per-hole breakdown row.
type HoleLine struct {
	courses.Hole
	Score           int       `json:"score"`
	Putts           int       `json:"putts"`
	GIR             bool      `json:"gir"`
	Fairway         bool      `json:"fairway"`
	Bunkers         int       `json:"bunkers"`
	Type            ScoreType `json:"type"`
	StrokesReceived int       `json:"strokesReceived"`
	NetPar          int       `json:"netPar"`
	NetScore        *int      `json:"netScore,omitempty"`
}

// Card is the full derived view of a round.
type Card struct {
	Totals      Totals        `json:"totals"`
	Holes       []HoleLine    `json:"holes"`
	CurrentHole *courses.Hole `json:"currentHole,omitempty"`
	NextHole    *courses.Hole `json:"nextHole,omitempty"`
	Complete    bool          `json:"complete"`
	CanSave     bool          `json:"canSave"`
}

// Breakdown returns one line per tee box hole in number order.
func Breakdown(state RoundState, tee courses.TeeBox) []HoleLine {
	holes := sortedHoles(tee)
	lines := make([]HoleLine, 0, len(holes))
	for _, h := range holes {
		line := HoleLine{
			Hole:            h,
			Type:            ScoreNone,
			StrokesReceived: StrokesReceived(h, state.Handicap),
			NetPar:          NetPar(h, state.Handicap),
		}
		if idx, ok := holeIndex(h); ok {
			line.Score = state.Scores[idx]
			line.Putts = state.Putts[idx]
			line.GIR = state.GIR[idx]
			line.Fairway = state.FairwayHits[idx]
			line.Bunkers = state.BunkerCounts[idx]
			line.Type = ClassifyScore(line.Score, h.Par)
			if net, ok := NetScore(line.Score, h, state.Handicap); ok {
				line.NetScore = &net
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Build derives the complete card for a round.
func Build(state RoundState, tee courses.TeeBox) Card {
	card := Card{
		Totals:  ComputeTotals(state, tee),
		Holes:   Breakdown(state, tee),
		CanSave: ValidateForSave(state) == nil,
	}
	if h, ok := CurrentHole(state, tee); ok {
		card.CurrentHole = &h
	} else {
		card.Complete = true
	}
	if h, ok := NextHole(state, tee); ok {
		card.NextHole = &h
	}
	return card
}

// FormatVsPar renders a par differential as "+3", "-2" or "E".
func FormatVsPar(diff int) string {
	switch {
	case diff > 0:
		return "+" + strconv.Itoa(diff)
	case diff < 0:
		return strconv.Itoa(diff)
	default:
		return "E"
	}
}

// FormatGross renders the gross total, or "-" before any score is entered.
func FormatGross(t Totals) string {
	if t.Gross == 0 {
		return "-"
	}
	return strconv.Itoa(t.Gross)
}
