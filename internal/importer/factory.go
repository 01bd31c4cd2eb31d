// Package importer turns course catalog files into course inputs ready for
// validation and storage.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

// Supported import formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for unknown file types.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Parser decodes one file into course inputs. Inputs are returned as read;
// callers normalize and validate them with Prepare.
type Parser interface {
	Parse(data []byte) ([]courses.CourseInput, error)
}

// ParserFactory picks a parser for a file.
type ParserFactory interface {
	ForFilename(filename string) (Parser, error)
	ForFormat(format string) (Parser, error)
}

// Factory creates the parser matching a file extension or format name.
type Factory struct{}

// NewFactory creates a parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ForFilename returns the parser for the file's extension.
func (f *Factory) ForFilename(filename string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, filename)
	}
	return f.ForFormat(ext)
}

// ForFormat returns the parser for a format name such as "csv".
func (f *Factory) ForFormat(format string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return NewJSONParser(), nil
	case FormatCSV:
		return NewCSVParser(), nil
	case FormatXLSX:
		return NewXLSXParser(), nil
	case FormatYAML, "yml":
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
