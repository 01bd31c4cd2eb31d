package scoring

import "github.com/AlexanderWinters/the-score-card/internal/domain/courses"

// Totals are the aggregate values for a round on a tee box.
type Totals struct {
	Gross          int `json:"gross"`
	TotalPar       int `json:"totalPar"`
	VsPar          int `json:"vsPar"`
	NetTotal       int `json:"netTotal"`
	NetPar         int `json:"netPar"`
	TotalDistance  int `json:"totalDistance"`
	Putts          int `json:"putts"`
	GIRCount       int `json:"gir"`
	FairwayCount   int `json:"fairways"`
	Bunkers        int `json:"bunkers"`
	CompletedHoles int `json:"completedHoles"`
	GIRPercent     int `json:"girPercent"`
	FairwayPercent int `json:"fairwayPercent"`
}

// ComputeTotals aggregates the round. Percentages are taken over completed
// holes only and are 0 when no hole has been scored.
func ComputeTotals(state RoundState, tee courses.TeeBox) Totals {
	var t Totals
	for _, h := range tee.Holes {
		t.TotalPar += h.Par
		t.TotalDistance += h.Distance
		t.NetPar += NetPar(h, state.Handicap)
	}

	girOnCompleted, fairwaysOnCompleted := 0, 0
	for i := 0; i < Holes; i++ {
		t.Gross += state.Scores[i]
		t.Putts += state.Putts[i]
		t.Bunkers += state.BunkerCounts[i]
		if state.GIR[i] {
			t.GIRCount++
		}
		if state.FairwayHits[i] {
			t.FairwayCount++
		}
		if state.Scores[i] == 0 {
			continue
		}
		t.CompletedHoles++
		if state.GIR[i] {
			girOnCompleted++
		}
		if state.FairwayHits[i] {
			fairwaysOnCompleted++
		}
	}

	t.VsPar = t.Gross - t.TotalPar
	t.NetTotal = max(0, t.Gross-state.Handicap)
	t.GIRPercent = percent(girOnCompleted, t.CompletedHoles)
	t.FairwayPercent = percent(fairwaysOnCompleted, t.CompletedHoles)
	return t
}

// percent rounds half up.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*100*2 + whole) / (whole * 2)
}
