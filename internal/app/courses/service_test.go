package courses

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
	domaincourses "github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/fixture"
	"github.com/AlexanderWinters/the-score-card/internal/importer"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
)

type stubStore struct {
	courses  map[int64]domaincourses.Course
	names    map[string]struct{}
	nextID   int64
	created  []domaincourses.CourseInput
	updated  map[int64]domaincourses.CourseInput
	toggled  []int64
	createFn func([]domaincourses.CourseInput) error
}

func newStubStore() *stubStore {
	return &stubStore{
		courses: make(map[int64]domaincourses.Course),
		names:   make(map[string]struct{}),
		updated: make(map[int64]domaincourses.CourseInput),
	}
}

func (s *stubStore) List(_ context.Context, includeInactive bool) ([]domaincourses.Summary, error) {
	var out []domaincourses.Summary
	for _, c := range s.courses {
		if c.Active || includeInactive {
			out = append(out, c.Summary())
		}
	}
	return out, nil
}

func (s *stubStore) Get(_ context.Context, id int64) (domaincourses.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return domaincourses.Course{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *stubStore) Count(context.Context) (int, error) { return len(s.courses), nil }

func (s *stubStore) Names(context.Context) (map[string]struct{}, error) { return s.names, nil }

func (s *stubStore) Create(ctx context.Context, in domaincourses.CourseInput) (int64, error) {
	ids, err := s.CreateMany(ctx, []domaincourses.CourseInput{in})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

func (s *stubStore) CreateMany(_ context.Context, ins []domaincourses.CourseInput) ([]int64, error) {
	if s.createFn != nil {
		if err := s.createFn(ins); err != nil {
			return nil, err
		}
	}
	ids := make([]int64, 0, len(ins))
	for _, in := range ins {
		s.nextID++
		s.created = append(s.created, in)
		s.names[strings.ToLower(in.Name)] = struct{}{}
		s.courses[s.nextID] = domaincourses.Course{ID: s.nextID, Name: in.Name, Active: true}
		ids = append(ids, s.nextID)
	}
	return ids, nil
}

func (s *stubStore) Update(_ context.Context, id int64, in domaincourses.CourseInput) error {
	if _, ok := s.courses[id]; !ok {
		return domain.ErrNotFound
	}
	s.updated[id] = in
	c := s.courses[id]
	c.Name = in.Name
	s.courses[id] = c
	return nil
}

func (s *stubStore) ToggleActive(_ context.Context, id int64) (bool, error) {
	c, ok := s.courses[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	c.Active = !c.Active
	s.courses[id] = c
	s.toggled = append(s.toggled, id)
	return c.Active, nil
}

func TestCreateNormalizesAndValidates(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil, nil)

	in := fixture.Catalog()[0]
	in.Name = "  Padded Name  "
	in.TeeBoxes[0].Color = ""
	course, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.Name != "Padded Name" {
		t.Fatalf("expected trimmed name, got %q", course.Name)
	}
	if got := store.created[0].TeeBoxes[0].Color; got != "black" {
		t.Fatalf("expected derived tee colour black, got %q", got)
	}

	bad := fixture.Catalog()[1]
	bad.TeeBoxes[0].Holes[0].Par = 7
	if _, err := svc.Create(context.Background(), bad); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("invalid course must not reach the store")
	}
}

func TestUpdateMissingCourse(t *testing.T) {
	svc := NewService(newStubStore(), nil, nil)
	_, err := svc.Update(context.Background(), 42, fixture.Catalog()[0])
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleActive(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil, nil)
	course, err := svc.Create(context.Background(), fixture.Catalog()[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, err := svc.ToggleActive(context.Background(), course.ID)
	if err != nil || active {
		t.Fatalf("expected course to become inactive, got %v %v", active, err)
	}
	list, _ := svc.List(context.Background(), false)
	if len(list) != 0 {
		t.Fatalf("expected inactive course hidden, got %+v", list)
	}
	list, _ = svc.List(context.Background(), true)
	if len(list) != 1 {
		t.Fatalf("expected inactive course listed with includeInactive, got %+v", list)
	}
}

func TestImportStoresValidCoursesAndRecordsMetrics(t *testing.T) {
	store := newStubStore()
	rec := metrics.NewRecorder()
	svc := NewService(store, rec, nil)

	data := "course_name,tee_name,hole_number,distance,par,hcp_index\n"
	for n := 1; n <= 18; n++ {
		data += "Links,White," + strconv.Itoa(n) + ",300,4," + strconv.Itoa(n) + "\n"
	}
	data += "Short,White,1,100,3,1\n"

	res, err := svc.Import(context.Background(), importer.FormatCSV, []byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.CourseIDs) != 1 {
		t.Fatalf("expected one stored course, got %v", res.CourseIDs)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Name != "Short" {
		t.Fatalf("expected Short to be skipped, got %+v", res.Skipped)
	}
	snap := rec.Snapshot()
	if snap.Imports != 1 || snap.CoursesImported != 1 || snap.ImportErrors != 0 {
		t.Fatalf("unexpected import metrics %+v", snap)
	}
}

func TestImportRejectsMalformedPayloadBeforeWriting(t *testing.T) {
	store := newStubStore()
	rec := metrics.NewRecorder()
	svc := NewService(store, rec, nil)

	_, err := svc.Import(context.Background(), importer.FormatJSON, []byte(`[{"name":`))
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("malformed payload must not write")
	}
	if rec.Snapshot().ImportErrors != 1 {
		t.Fatalf("expected import error metric")
	}

	if _, err := svc.Import(context.Background(), "toml", []byte("x")); !errors.Is(err, importer.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestImportFileUsesExtension(t *testing.T) {
	store := newStubStore()
	rec := metrics.NewRecorder()
	svc := NewService(store, rec, nil)

	res, err := svc.ImportFile(context.Background(), "catalog.yml", []byte("- name: Empty\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.CourseIDs) != 0 || len(res.Skipped) != 1 {
		t.Fatalf("expected the tee-less course to be skipped, got %+v", res)
	}
	if rec.ImportsFor("yml") != 1 {
		t.Fatalf("expected import recorded under yml")
	}

	if _, err := svc.ImportFile(context.Background(), "exports.2024/Catalog.JSON", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ImportsFor("json") != 1 {
		t.Fatalf("expected import recorded under json for a dotted directory path")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newStubStore()
	svc := NewService(store, nil, nil)

	ids, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != len(fixture.Catalog()) {
		t.Fatalf("expected %d seeded courses, got %d", len(fixture.Catalog()), len(ids))
	}
	ids, err = svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected second seed to add nothing, got %v", ids)
	}

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Initialized || !status.HasCourses || status.CourseCount != len(fixture.Catalog()) {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestSeedPropagatesStoreError(t *testing.T) {
	store := newStubStore()
	store.createFn = func([]domaincourses.CourseInput) error { return errors.New("disk full") }
	svc := NewService(store, nil, nil)
	if _, err := svc.Seed(context.Background()); err == nil {
		t.Fatalf("expected store error")
	}
}
