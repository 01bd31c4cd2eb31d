// Package sessions keeps one in-progress round per user on top of a
// namespaced key-value store.
package sessions

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
	domaincourses "github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	domainrounds "github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/kvstore"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
	"github.com/AlexanderWinters/the-score-card/internal/session"
)

// ErrNoTeeBox is returned when hole data needs a tee box and none is selected.
var ErrNoTeeBox = errors.New("select a course and tee box first")

// CourseReader loads courses for selection checks.
type CourseReader interface {
	Get(ctx context.Context, id int64) (domaincourses.Course, error)
}

// CourseLister is implemented by readers that can also list the catalog. The
// session falls back to the first active course when its selection is gone.
type CourseLister interface {
	List(ctx context.Context, includeInactive bool) ([]domaincourses.Summary, error)
}

// RoundSaver stores a finished round.
type RoundSaver interface {
	Save(ctx context.Context, userID int64, in domainrounds.RoundInput) (int64, error)
}

// View is the session as returned to clients.
type View struct {
	State       scoring.RoundState  `json:"state"`
	Preferences session.Preferences `json:"preferences"`
	Card        *scoring.Card       `json:"card,omitempty"`
}

// Update changes the round setup. Nil fields are left alone.
type Update struct {
	PlayerName  *string              `json:"playerName,omitempty"`
	Handicap    *int                 `json:"handicap,omitempty"`
	CourseID    *int64               `json:"courseId,omitempty"`
	TeeBoxID    *int64               `json:"teeBoxId,omitempty"`
	Preferences *session.Preferences `json:"preferences,omitempty"`
}

// HoleUpdate changes the data of one hole. Nil fields are left alone.
type HoleUpdate struct {
	Score   *int  `json:"score,omitempty"`
	Putts   *int  `json:"putts,omitempty"`
	GIR     *bool `json:"gir,omitempty"`
	Fairway *bool `json:"fairway,omitempty"`
	Bunkers *int  `json:"bunkers,omitempty"`
}

// Service serializes session reads and writes per process.
type Service struct {
	mu      sync.Mutex
	opener  kvstore.Opener
	courses CourseReader
	rounds  RoundSaver
	logger  *slog.Logger
}

// NewService constructs a Service.
func NewService(opener kvstore.Opener, courses CourseReader, rounds RoundSaver, logger *slog.Logger) *Service {
	return &Service{opener: opener, courses: courses, rounds: rounds, logger: logger}
}

// Namespace is the store namespace holding userID's session.
func Namespace(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}

// Get returns the current session.
func (s *Service) Get(ctx context.Context, userID int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, tee, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return view(sess, tee), nil
}

// Update applies setup changes in order: player, handicap, course, tee box,
// preferences. Selecting a different course clears hole data.
func (s *Service) Update(ctx context.Context, userID int64, u Update) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, tee, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	if u.PlayerName != nil {
		if err := sess.SetPlayerName(*u.PlayerName); err != nil {
			return View{}, err
		}
	}
	if u.Handicap != nil {
		if err := sess.SetHandicap(*u.Handicap); err != nil {
			return View{}, err
		}
	}
	if u.CourseID != nil {
		if _, err := s.course(ctx, *u.CourseID); err != nil {
			return View{}, err
		}
		if *u.CourseID != sess.LastCourseID() {
			tee = nil
		}
		if err := sess.SelectCourse(*u.CourseID); err != nil {
			return View{}, err
		}
	}
	if u.TeeBoxID != nil {
		course, err := s.course(ctx, sess.State().CourseID)
		if err != nil {
			return View{}, err
		}
		selected, ok := course.TeeBox(*u.TeeBoxID)
		if !ok {
			ve := &domain.ValidationError{}
			ve.Add("teeBoxId", "tee box does not belong to course")
			return View{}, ve
		}
		if err := sess.SelectTeeBox(selected); err != nil {
			return View{}, err
		}
		tee = &selected
	}
	if u.Preferences != nil {
		if err := sess.SetPreferences(*u.Preferences); err != nil {
			return View{}, err
		}
	}
	return view(sess, tee), nil
}

// SetHole records data for hole number. A tee box must be selected so that
// GIR can be derived.
func (s *Service) SetHole(ctx context.Context, userID int64, number int, u HoleUpdate) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, tee, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	if tee == nil {
		return View{}, ErrNoTeeBox
	}
	if u.Score != nil {
		if err := sess.SetScore(number, *u.Score); err != nil {
			return View{}, err
		}
	}
	if u.Putts != nil {
		if err := sess.SetPutts(number, *u.Putts); err != nil {
			return View{}, err
		}
	}
	if u.GIR != nil {
		if err := sess.SetGIR(number, *u.GIR); err != nil {
			return View{}, err
		}
	}
	if u.Fairway != nil {
		if err := sess.SetFairway(number, *u.Fairway); err != nil {
			return View{}, err
		}
	}
	if u.Bunkers != nil {
		if err := sess.SetBunkers(number, *u.Bunkers); err != nil {
			return View{}, err
		}
	}
	return view(sess, tee), nil
}

// Reset clears hole data and keeps the setup.
func (s *Service) Reset(ctx context.Context, userID int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, tee, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	if err := sess.Reset(); err != nil {
		return View{}, err
	}
	return view(sess, tee), nil
}

// Submit saves the session round and clears its hole data on success.
// A rejected round leaves the session untouched.
func (s *Service) Submit(ctx context.Context, userID int64, date string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, tee, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if tee == nil {
		return 0, ErrNoTeeBox
	}
	id, err := s.rounds.Save(ctx, userID, domainrounds.FromState(sess.State(), date))
	if err != nil {
		return 0, err
	}
	if err := sess.Reset(); err != nil {
		logging.Error(s.logger, "clear submitted session failed", err, logging.FieldUserID, userID)
	}
	return id, nil
}

func (s *Service) load(ctx context.Context, userID int64) (*session.Session, *domaincourses.TeeBox, error) {
	kv, err := s.opener.Open(Namespace(userID))
	if err != nil {
		return nil, nil, err
	}
	sess := session.Load(kv)
	state := sess.State()
	if state.CourseID == 0 || state.TeeBoxID == 0 {
		return sess, nil, nil
	}
	course, err := s.courses.Get(ctx, state.CourseID)
	if errors.Is(err, domain.ErrNotFound) {
		logging.Warn(s.logger, "selected course no longer exists", logging.FieldUserID, userID, logging.FieldCourseID, state.CourseID)
		if err := s.fallback(ctx, sess); err != nil {
			return nil, nil, err
		}
		return sess, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	tee, ok := course.TeeBox(state.TeeBoxID)
	if !ok {
		if err := sess.ClearTeeBox(); err != nil {
			return nil, nil, err
		}
		return sess, nil, nil
	}
	sess.UseTeeBox(tee)
	return sess, &tee, nil
}

// fallback clears a stale selection and picks the first active course when
// the catalog can be listed. The tee box is left for the player to choose.
func (s *Service) fallback(ctx context.Context, sess *session.Session) error {
	if err := sess.ClearSelection(); err != nil {
		return err
	}
	lister, ok := s.courses.(CourseLister)
	if !ok {
		return nil
	}
	list, err := lister.List(ctx, false)
	if err != nil {
		return err
	}
	for _, c := range list {
		if c.Active {
			return sess.SelectCourse(c.ID)
		}
	}
	return nil
}

func (s *Service) course(ctx context.Context, id int64) (domaincourses.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		ve := &domain.ValidationError{}
		ve.Add("courseId", "course not found")
		return domaincourses.Course{}, ve
	}
	return course, err
}

func view(sess *session.Session, tee *domaincourses.TeeBox) View {
	v := View{State: sess.State(), Preferences: sess.Preferences()}
	if tee != nil {
		card := scoring.Build(v.State, *tee)
		v.Card = &card
	}
	return v
}
