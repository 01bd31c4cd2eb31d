package courses

import (
	"errors"
	"strings"
	"testing"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
)

func validHoles() []Hole {
	holes := make([]Hole, HolesPerRound)
	for i := range holes {
		n := i + 1
		holes[i] = Hole{Number: n, Distance: 300 + n, Par: 4, HandicapIndex: n}
	}
	return holes
}

func validInput() CourseInput {
	return CourseInput{
		Name:     " Links ",
		Location: "Coast",
		TeeBoxes: []TeeBoxInput{{Name: "Club", Holes: validHoles()}},
	}
}

func TestNormalizeTrimsAndDefaultsColor(t *testing.T) {
	in := validInput()
	in.TeeBoxes[0].Holes[0], in.TeeBoxes[0].Holes[17] = in.TeeBoxes[0].Holes[17], in.TeeBoxes[0].Holes[0]

	in.Normalize()

	if in.Name != "Links" {
		t.Fatalf("expected trimmed name, got %q", in.Name)
	}
	if in.TeeBoxes[0].Color != "yellow" {
		t.Fatalf("expected derived color yellow, got %q", in.TeeBoxes[0].Color)
	}
	if in.TeeBoxes[0].Holes[0].Number != 1 || in.TeeBoxes[0].Holes[17].Number != 18 {
		t.Fatalf("expected holes sorted by number")
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidateRejectsStructuralProblems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CourseInput)
		field  string
	}{
		{"missing name", func(in *CourseInput) { in.Name = "" }, "name"},
		{"no tee boxes", func(in *CourseInput) { in.TeeBoxes = nil }, "teeBoxes"},
		{"short tee", func(in *CourseInput) { in.TeeBoxes[0].Holes = in.TeeBoxes[0].Holes[:17] }, "teeBoxes[0].holes"},
		{"par too high", func(in *CourseInput) { in.TeeBoxes[0].Holes[3].Par = 6 }, "teeBoxes[0].holes[3].par"},
		{"par too low", func(in *CourseInput) { in.TeeBoxes[0].Holes[3].Par = 2 }, "teeBoxes[0].holes[3].par"},
		{"zero distance", func(in *CourseInput) { in.TeeBoxes[0].Holes[5].Distance = 0 }, "teeBoxes[0].holes[5].distance"},
		{"duplicate index", func(in *CourseInput) { in.TeeBoxes[0].Holes[1].HandicapIndex = 1 }, "teeBoxes[0].holes[1].hcp_index"},
		{"index out of range", func(in *CourseInput) { in.TeeBoxes[0].Holes[2].HandicapIndex = 19 }, "teeBoxes[0].holes[2].hcp_index"},
		{"gap in numbering", func(in *CourseInput) { in.TeeBoxes[0].Holes[4].Number = 19 }, "teeBoxes[0].holes[4].number"},
		{"duplicate tee name", func(in *CourseInput) {
			in.TeeBoxes = append(in.TeeBoxes, TeeBoxInput{Name: "club", Holes: validHoles()})
		}, "teeBoxes[1].name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Normalize()
			tc.mutate(&in)

			err := in.Validate()
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			found := false
			for _, f := range ve.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected failure on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestColorForTee(t *testing.T) {
	cases := map[string]string{
		"Championship": "black",
		"Club":         "yellow",
		"Forward":      "red",
		"Blue Tees":    "blue",
		"Members":      "gray",
	}
	for name, want := range cases {
		if got := ColorForTee(name); got != want {
			t.Fatalf("ColorForTee(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCourseLookups(t *testing.T) {
	c := Course{ID: 7, Name: "Links", Active: true, TeeBoxes: []TeeBox{{ID: 3, Name: "Club", Holes: validHoles()}}}

	if _, ok := c.TeeBox(4); ok {
		t.Fatal("expected missing tee box")
	}
	tee, ok := c.TeeBox(3)
	if !ok {
		t.Fatal("expected tee box 3")
	}
	h, ok := tee.Hole(18)
	if !ok || h.HandicapIndex != 18 {
		t.Fatalf("unexpected hole lookup %+v %v", h, ok)
	}
	if s := c.Summary(); s.ID != 7 || !strings.EqualFold(s.Name, "links") || !s.Active {
		t.Fatalf("unexpected summary %+v", s)
	}
}
