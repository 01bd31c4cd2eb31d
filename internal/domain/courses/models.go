package courses

import "sort"

// HolesPerRound is the number of holes on every tee box.
const HolesPerRound = 18

// Hole is a single hole as played from one tee box.
type Hole struct {
	Number        int `json:"number" yaml:"number"`
	Distance      int `json:"distance" yaml:"distance"`
	Par           int `json:"par" yaml:"par"`
	HandicapIndex int `json:"hcp_index" yaml:"hcp_index"`
}

// TeeBox is a named set of 18 holes on a course.
type TeeBox struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Holes []Hole `json:"holes"`
}

// Course is the canonical course shape exposed by the service.
type Course struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Active      bool     `json:"active"`
	TeeBoxes    []TeeBox `json:"teeBoxes"`
}

// Summary is the list view of a course.
type Summary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Summary returns the list view of c.
func (c Course) Summary() Summary {
	return Summary{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Description: c.Description,
		Active:      c.Active,
	}
}

// TeeBox looks up a tee box of the course by id.
func (c Course) TeeBox(id int64) (TeeBox, bool) {
	for _, t := range c.TeeBoxes {
		if t.ID == id {
			return t, true
		}
	}
	return TeeBox{}, false
}

// Hole returns the hole with the given number.
func (t TeeBox) Hole(number int) (Hole, bool) {
	for _, h := range t.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return Hole{}, false
}

// SortHoles orders holes by number in place.
func SortHoles(holes []Hole) {
	sort.SliceStable(holes, func(i, j int) bool {
		return holes[i].Number < holes[j].Number
	})
}
