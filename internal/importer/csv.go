package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// CSVParser reads one hole per row with a header naming the columns.
type CSVParser struct{}

// NewCSVParser creates a CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse implements Parser.
func (p *CSVParser) Parse(data []byte) ([]courses.CourseInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV format: %w", err)
	}
	return coursesFromRows(records)
}
