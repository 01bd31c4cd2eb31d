package importer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// YAMLParser reads the same shapes as JSONParser written as YAML.
type YAMLParser struct{}

// NewYAMLParser creates a YAML parser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse implements Parser.
func (p *YAMLParser) Parse(data []byte) ([]courses.CourseInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML format: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyFile
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var list []courses.CourseInput
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
		return list, nil
	case yaml.MappingNode:
		var single courses.CourseInput
		if err := root.Decode(&single); err != nil {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
		return []courses.CourseInput{single}, nil
	default:
		return nil, fmt.Errorf("invalid YAML format: expected a course or a list of courses")
	}
}
