package courses

import (
	"fmt"
	"strings"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
)

const (
	minPar = 3
	maxPar = 5
)

// TeeBoxInput is a tee box as submitted by an admin or an import file.
type TeeBoxInput struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Holes []Hole `json:"holes" yaml:"holes"`
}

// CourseInput is a course as submitted by an admin or an import file.
type CourseInput struct {
	Name        string        `json:"name" yaml:"name"`
	Location    string        `json:"location,omitempty" yaml:"location,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	TeeBoxes    []TeeBoxInput `json:"teeBoxes" yaml:"teeBoxes"`
}

// Normalize trims text fields, sorts holes and fills in default tee colours.
func (in *CourseInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	for i := range in.TeeBoxes {
		tee := &in.TeeBoxes[i]
		tee.Name = strings.TrimSpace(tee.Name)
		tee.Color = strings.ToLower(strings.TrimSpace(tee.Color))
		if tee.Color == "" {
			tee.Color = ColorForTee(tee.Name)
		}
		SortHoles(tee.Holes)
	}
}

// Validate checks the structural rules every stored tee box must satisfy.
// It expects Normalize to have been called.
func (in CourseInput) Validate() error {
	var ve domain.ValidationError
	if in.Name == "" {
		ve.Add("name", "required")
	}
	if len(in.TeeBoxes) == 0 {
		ve.Add("teeBoxes", "at least one tee box is required")
	}
	seen := make(map[string]struct{}, len(in.TeeBoxes))
	for i, tee := range in.TeeBoxes {
		prefix := fmt.Sprintf("teeBoxes[%d]", i)
		if tee.Name == "" {
			ve.Add(prefix+".name", "required")
		} else {
			key := strings.ToLower(tee.Name)
			if _, dup := seen[key]; dup {
				ve.Add(prefix+".name", "duplicate tee box name")
			}
			seen[key] = struct{}{}
		}
		validateHoles(&ve, prefix, tee.Holes)
	}
	return ve.Err()
}

func validateHoles(ve *domain.ValidationError, prefix string, holes []Hole) {
	if len(holes) != HolesPerRound {
		ve.Add(prefix+".holes", fmt.Sprintf("expected %d holes, got %d", HolesPerRound, len(holes)))
		return
	}
	indexSeen := make(map[int]bool, HolesPerRound)
	for i, h := range holes {
		field := fmt.Sprintf("%s.holes[%d]", prefix, i)
		if h.Number != i+1 {
			ve.Add(field+".number", fmt.Sprintf("expected hole %d", i+1))
		}
		if h.Distance <= 0 {
			ve.Add(field+".distance", "must be positive")
		}
		if h.Par < minPar || h.Par > maxPar {
			ve.Add(field+".par", fmt.Sprintf("must be between %d and %d", minPar, maxPar))
		}
		if h.HandicapIndex < 1 || h.HandicapIndex > HolesPerRound {
			ve.Add(field+".hcp_index", fmt.Sprintf("must be between 1 and %d", HolesPerRound))
			continue
		}
		if indexSeen[h.HandicapIndex] {
			ve.Add(field+".hcp_index", "duplicate handicap index")
		}
		indexSeen[h.HandicapIndex] = true
	}
}

// ColorForTee derives a display colour tag from a tee box name.
func ColorForTee(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "champion"), strings.Contains(lower, "black"):
		return "black"
	case strings.Contains(lower, "white"), strings.Contains(lower, "back"):
		return "white"
	case strings.Contains(lower, "club"), strings.Contains(lower, "yellow"):
		return "yellow"
	case strings.Contains(lower, "blue"), strings.Contains(lower, "middle"):
		return "blue"
	case strings.Contains(lower, "forward"), strings.Contains(lower, "red"), strings.Contains(lower, "front"):
		return "red"
	default:
		return "gray"
	}
}
