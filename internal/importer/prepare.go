package importer

import (
	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// Skipped names a course that was dropped because it failed validation.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Prepare normalizes every input and splits them into storable courses and
// rejected ones.
func Prepare(ins []courses.CourseInput) ([]courses.CourseInput, []Skipped) {
	valid := make([]courses.CourseInput, 0, len(ins))
	var skipped []Skipped
	for _, in := range ins {
		in.Normalize()
		if err := in.Validate(); err != nil {
			skipped = append(skipped, Skipped{Name: in.Name, Reason: err.Error()})
			continue
		}
		valid = append(valid, in)
	}
	return valid, skipped
}
