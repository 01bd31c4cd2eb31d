package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// Column names understood by the tabular formats.
const (
	ColCourseName  = "course_name"
	ColTeeName     = "tee_name"
	ColHoleNumber  = "hole_number"
	ColDistance    = "distance"
	ColPar         = "par"
	ColHcpIndex    = "hcp_index"
	ColTeeColor    = "tee_color"
	ColLocation    = "location"
	ColDescription = "description"
)

var requiredColumns = []string{ColCourseName, ColTeeName, ColHoleNumber, ColDistance, ColPar, ColHcpIndex}

var (
	// ErrNoDataRows is returned when a sheet has a header but nothing else.
	ErrNoDataRows = errors.New("file must have a header row and at least one data row")
	// ErrMissingColumn is wrapped with the name of the absent column.
	ErrMissingColumn = errors.New("missing required column")
)

type columns map[string]int

func (c columns) cell(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c columns) positive(row []string, name string) (int, bool) {
	v, err := strconv.Atoi(c.cell(row, name))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

func headerColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

// coursesFromRows groups one-hole-per-row records into courses. Rows with a
// blank name or a non-positive number are skipped. Courses and tee boxes keep
// the order in which they first appear.
func coursesFromRows(records [][]string) ([]courses.CourseInput, error) {
	if len(records) < 2 {
		return nil, ErrNoDataRows
	}
	cols, err := headerColumns(records[0])
	if err != nil {
		return nil, err
	}

	var out []courses.CourseInput
	courseIdx := make(map[string]int)
	teeIdx := make(map[string]map[string]int)

	for _, row := range records[1:] {
		courseName := cols.cell(row, ColCourseName)
		teeName := cols.cell(row, ColTeeName)
		if courseName == "" || teeName == "" {
			continue
		}
		number, ok := cols.positive(row, ColHoleNumber)
		if !ok {
			continue
		}
		distance, ok := cols.positive(row, ColDistance)
		if !ok {
			continue
		}
		par, ok := cols.positive(row, ColPar)
		if !ok {
			continue
		}
		hcp, ok := cols.positive(row, ColHcpIndex)
		if !ok {
			continue
		}

		ci, seen := courseIdx[courseName]
		if !seen {
			ci = len(out)
			courseIdx[courseName] = ci
			teeIdx[courseName] = make(map[string]int)
			out = append(out, courses.CourseInput{Name: courseName})
		}
		course := &out[ci]
		if course.Location == "" {
			course.Location = cols.cell(row, ColLocation)
		}
		if course.Description == "" {
			course.Description = cols.cell(row, ColDescription)
		}

		ti, seen := teeIdx[courseName][teeName]
		if !seen {
			ti = len(course.TeeBoxes)
			teeIdx[courseName][teeName] = ti
			course.TeeBoxes = append(course.TeeBoxes, courses.TeeBoxInput{Name: teeName})
		}
		tee := &course.TeeBoxes[ti]
		if tee.Color == "" {
			tee.Color = cols.cell(row, ColTeeColor)
		}
		tee.Holes = append(tee.Holes, courses.Hole{
			Number:        number,
			Distance:      distance,
			Par:           par,
			HandicapIndex: hcp,
		})
	}
	return out, nil
}
