package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// ErrEmptyFile is returned when an upload carries no data.
var ErrEmptyFile = errors.New("file is empty")

// JSONParser reads a course object or an array of them.
type JSONParser struct{}

// NewJSONParser creates a JSON parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse implements Parser.
func (p *JSONParser) Parse(data []byte) ([]courses.CourseInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if data[0] == '[' {
		var list []courses.CourseInput
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}
		return list, nil
	}
	var single courses.CourseInput
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return []courses.CourseInput{single}, nil
}
