package testutil

import (
	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/fixture"
)

// SampleCourseInput returns the first catalog course renamed to name.
func SampleCourseInput(name string) courses.CourseInput {
	in := fixture.Catalog()[0]
	in.Name = name
	in.Normalize()
	return in
}

// SampleTeeBox returns a par 72 tee box with handicap indexes 1..18 in hole order.
func SampleTeeBox(id int64) courses.TeeBox {
	tee := courses.TeeBox{ID: id, Name: "Club", Color: "yellow"}
	for i := 0; i < courses.HolesPerRound; i++ {
		par := 4
		switch i % 9 {
		case 2, 6:
			par = 3
		case 4, 8:
			par = 5
		}
		tee.Holes = append(tee.Holes, courses.Hole{
			Number:        i + 1,
			Distance:      300 + i*10,
			Par:           par,
			HandicapIndex: i + 1,
		})
	}
	return tee
}

// Scores returns a full round array where every hole has score.
func Scores(score int) []int {
	out := make([]int, courses.HolesPerRound)
	for i := range out {
		out[i] = score
	}
	return out
}
