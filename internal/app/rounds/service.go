package rounds

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/AlexanderWinters/the-score-card/internal/charts"
	"github.com/AlexanderWinters/the-score-card/internal/domain"
	domaincourses "github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	domainrounds "github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
	"github.com/AlexanderWinters/the-score-card/internal/timeutil"
)

// Store defines the contract for persisting saved rounds.
type Store interface {
	Create(ctx context.Context, round domainrounds.Round) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domainrounds.HistoryEntry, error)
}

// CourseReader loads the course a round is played on.
type CourseReader interface {
	Get(ctx context.Context, id int64) (domaincourses.Course, error)
}

// Service saves rounds and derives scorecards.
type Service struct {
	store    Store
	courses  CourseReader
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(store Store, courses CourseReader, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		courses:  courses,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Save validates the input, runs the save gate and stores the round.
// Shape problems are returned as *domain.ValidationError; rounds with too few
// holes return scoring.ErrIncompleteRound.
func (s *Service) Save(ctx context.Context, userID int64, in domainrounds.RoundInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	date, err := timeutil.NormalizeRoundDate(in.Date, s.now())
	if err != nil {
		ve := &domain.ValidationError{}
		ve.Add("date", "expected YYYY-MM-DD or a phrase such as \"yesterday\"")
		return 0, ve
	}

	state := in.State()
	if err := scoring.ValidateForSave(state); err != nil {
		return 0, err
	}
	if _, err := s.teeBox(ctx, in.CourseID, in.TeeBoxID); err != nil {
		return 0, err
	}

	id, err := s.store.Create(ctx, in.Round(userID, date))
	if err != nil {
		return 0, err
	}
	s.recorder.RecordRoundSaved(state.CompletedHoles())
	logging.Info(s.logger, "round saved",
		logging.FieldRoundID, id,
		logging.FieldUserID, userID,
		logging.FieldCourseID, in.CourseID,
	)
	return id, nil
}

// History returns the user's rounds, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]domainrounds.HistoryEntry, error) {
	return s.store.ListByUser(ctx, userID)
}

// Chart renders the user's history as a PNG.
func (s *Service) Chart(ctx context.Context, userID int64, w io.Writer) error {
	entries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	return charts.RenderHistory(w, entries)
}

// Card builds the derived scorecard for state on its selected course and tee.
func (s *Service) Card(ctx context.Context, state scoring.RoundState) (scoring.Card, error) {
	tee, err := s.teeBox(ctx, state.CourseID, state.TeeBoxID)
	if err != nil {
		return scoring.Card{}, err
	}
	return scoring.Build(state, tee), nil
}

// TeeBox returns the tee box when it belongs to the course.
func (s *Service) TeeBox(ctx context.Context, courseID, teeBoxID int64) (domaincourses.TeeBox, error) {
	return s.teeBox(ctx, courseID, teeBoxID)
}

func (s *Service) teeBox(ctx context.Context, courseID, teeBoxID int64) (domaincourses.TeeBox, error) {
	ve := &domain.ValidationError{}
	course, err := s.courses.Get(ctx, courseID)
	if errors.Is(err, domain.ErrNotFound) {
		ve.Add("course_id", "course not found")
		return domaincourses.TeeBox{}, ve
	}
	if err != nil {
		return domaincourses.TeeBox{}, err
	}
	tee, ok := course.TeeBox(teeBoxID)
	if !ok {
		ve.Add("tee_box_id", "tee box does not belong to course")
		return domaincourses.TeeBox{}, ve
	}
	return tee, nil
}
