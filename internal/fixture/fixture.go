package fixture

import "github.com/AlexanderWinters/the-score-card/internal/domain/courses"

type sampleCourse struct {
	name        string
	location    string
	description string
}

var sampleCourses = []sampleCourse{
	{"Bro Hof Slott GC", "Stockholm, Sweden", "Championship level course"},
	{"Ullna Golf Club", "Stockholm, Sweden", "Beautiful lakeside course"},
	{"Halmstad GK (North)", "Halmstad, Sweden", "Classic Swedish course"},
	{"Falsterbo GK", "Falsterbo, Sweden", "Stunning coastal links"},
	{"Barsebäck Golf & CC", "Barsebäck, Sweden", "Former European Tour venue"},
}

var sampleTees = []struct {
	name  string
	color string
}{
	{"Championship", "black"},
	{"Club", "yellow"},
	{"Forward", "red"},
}

// Catalog returns the deterministic sample courses used to bootstrap an empty database.
func Catalog() []courses.CourseInput {
	out := make([]courses.CourseInput, 0, len(sampleCourses))
	for _, c := range sampleCourses {
		in := courses.CourseInput{
			Name:        c.name,
			Location:    c.location,
			Description: c.description,
		}
		for teeIdx, tee := range sampleTees {
			in.TeeBoxes = append(in.TeeBoxes, courses.TeeBoxInput{
				Name:  tee.name,
				Color: tee.color,
				Holes: sampleHoles(teeIdx),
			})
		}
		out = append(out, in)
	}
	return out
}

// sampleHoles lays out 18 holes that get shorter for forward tees. The
// handicap index steps by 7 modulo 18, which visits every index once.
func sampleHoles(teeIdx int) []courses.Hole {
	base := 165 - teeIdx*15
	step := 15 - teeIdx*2

	holes := make([]courses.Hole, courses.HolesPerRound)
	for i := range holes {
		n := i + 1
		par := 4
		switch n % 4 {
		case 0:
			par = 5
		case 2:
			par = 3
		}
		holes[i] = courses.Hole{
			Number:        n,
			Distance:      base + i*step,
			Par:           par,
			HandicapIndex: (n*7)%courses.HolesPerRound + 1,
		}
	}
	return holes
}
