package courses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	domaincourses "github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/fixture"
	"github.com/AlexanderWinters/the-score-card/internal/importer"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
)

// ErrInvalidFile wraps parser failures so handlers can answer 400.
var ErrInvalidFile = errors.New("invalid file")

// Store defines the contract for persisting the course catalog.
type Store interface {
	List(ctx context.Context, includeInactive bool) ([]domaincourses.Summary, error)
	Get(ctx context.Context, id int64) (domaincourses.Course, error)
	Count(ctx context.Context) (int, error)
	Names(ctx context.Context) (map[string]struct{}, error)
	Create(ctx context.Context, in domaincourses.CourseInput) (int64, error)
	CreateMany(ctx context.Context, ins []domaincourses.CourseInput) ([]int64, error)
	Update(ctx context.Context, id int64, in domaincourses.CourseInput) error
	ToggleActive(ctx context.Context, id int64) (bool, error)
}

// Service coordinates catalog operations using a Store.
type Service struct {
	store    Store
	parsers  importer.ParserFactory
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		parsers:  importer.NewFactory(),
		recorder: recorder,
		logger:   logger,
	}
}

// List returns course summaries.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]domaincourses.Summary, error) {
	return s.store.List(ctx, includeInactive)
}

// Get returns a course with its tee boxes.
func (s *Service) Get(ctx context.Context, id int64) (domaincourses.Course, error) {
	return s.store.Get(ctx, id)
}

// Create validates and stores a course, returning the stored version.
func (s *Service) Create(ctx context.Context, in domaincourses.CourseInput) (domaincourses.Course, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return domaincourses.Course{}, err
	}
	id, err := s.store.Create(ctx, in)
	if err != nil {
		return domaincourses.Course{}, err
	}
	logging.Info(s.logger, "course created", logging.FieldCourseID, id)
	return s.store.Get(ctx, id)
}

// Update validates and replaces a course.
func (s *Service) Update(ctx context.Context, id int64, in domaincourses.CourseInput) (domaincourses.Course, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return domaincourses.Course{}, err
	}
	if err := s.store.Update(ctx, id, in); err != nil {
		return domaincourses.Course{}, err
	}
	logging.Info(s.logger, "course updated", logging.FieldCourseID, id)
	return s.store.Get(ctx, id)
}

// ToggleActive flips the active flag and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, id int64) (bool, error) {
	return s.store.ToggleActive(ctx, id)
}

// ImportResult reports what an upload stored.
type ImportResult struct {
	CourseIDs []int64            `json:"course_ids"`
	Skipped   []importer.Skipped `json:"skipped,omitempty"`
}

// Import parses data in format and stores every valid course in one
// transaction. Courses failing validation are reported, not stored.
func (s *Service) Import(ctx context.Context, format string, data []byte) (ImportResult, error) {
	parser, err := s.parsers.ForFormat(format)
	if err != nil {
		return ImportResult{}, err
	}
	return s.importWith(ctx, strings.ToLower(format), parser, data)
}

// ImportFile is Import with the format taken from the file extension.
func (s *Service) ImportFile(ctx context.Context, filename string, data []byte) (ImportResult, error) {
	parser, err := s.parsers.ForFilename(filename)
	if err != nil {
		return ImportResult{}, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return s.importWith(ctx, format, parser, data)
}

func (s *Service) importWith(ctx context.Context, format string, parser importer.Parser, data []byte) (ImportResult, error) {
	parsed, err := parser.Parse(data)
	if err != nil {
		s.recorder.RecordImport(format, 0, err)
		logging.Warn(s.logger, "course import rejected", logging.FieldFormat, format, "error", err)
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	valid, skipped := importer.Prepare(parsed)
	result := ImportResult{CourseIDs: []int64{}, Skipped: skipped}
	if len(valid) > 0 {
		ids, err := s.store.CreateMany(ctx, valid)
		if err != nil {
			s.recorder.RecordImport(format, 0, err)
			return ImportResult{}, err
		}
		result.CourseIDs = ids
	}

	s.recorder.RecordImport(format, len(result.CourseIDs), nil)
	logging.Info(s.logger, "courses imported",
		logging.FieldFormat, format,
		logging.FieldCount, len(result.CourseIDs),
		logging.FieldSkipped, len(skipped),
	)
	return result, nil
}

// Seed inserts the sample catalog courses whose names are not stored yet
// and returns the new ids. Existing courses and their rounds are untouched.
func (s *Service) Seed(ctx context.Context) ([]int64, error) {
	existing, err := s.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	var missing []domaincourses.CourseInput
	for _, in := range fixture.Catalog() {
		if _, ok := existing[strings.ToLower(in.Name)]; ok {
			continue
		}
		in.Normalize()
		missing = append(missing, in)
	}
	if len(missing) == 0 {
		return []int64{}, nil
	}
	ids, err := s.store.CreateMany(ctx, missing)
	if err != nil {
		return nil, err
	}
	logging.Info(s.logger, "sample courses seeded", logging.FieldCount, len(ids))
	return ids, nil
}

// Status describes whether the catalog has been bootstrapped.
type Status struct {
	Initialized bool `json:"initialized"`
	HasCourses  bool `json:"has_courses"`
	CourseCount int  `json:"course_count"`
}

// Status counts stored courses.
func (s *Service) Status(ctx context.Context) (Status, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Initialized: true, HasCourses: n > 0, CourseCount: n}, nil
}
