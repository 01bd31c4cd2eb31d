package testutil

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/app/auth"
	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	approunds "github.com/AlexanderWinters/the-score-card/internal/app/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/app/sessions"
	"github.com/AlexanderWinters/the-score-card/internal/domain/users"
	"github.com/AlexanderWinters/the-score-card/internal/kvstore"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
	"github.com/AlexanderWinters/the-score-card/internal/store"
)

// TestSecret signs tokens issued by NewApp.
const TestSecret = "test-secret-key"

// App bundles the services backed by one in-memory database.
type App struct {
	DB       *bun.DB
	Recorder *metrics.Recorder
	Logger   *slog.Logger
	Tokens   *auth.Tokens
	Courses  *appcourses.Service
	Rounds   *approunds.Service
	Auth     *auth.Service
	Sessions *sessions.Service
}

// NewTestDB opens a migrated in-memory SQLite database closed at test end.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := store.Open(store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

// NewApp wires every service over a fresh database and memory session store.
func NewApp(t *testing.T) *App {
	t.Helper()
	db := NewTestDB(t)
	logger, _ := NewBufferLogger()
	rec := metrics.NewRecorder()
	tokens := auth.NewTokens(TestSecret, time.Hour)

	courseSvc := appcourses.NewService(store.NewCourses(db), rec, logger)
	roundSvc := approunds.NewService(store.NewRounds(db), courseSvc, rec, logger)
	authSvc := auth.NewService(store.NewUsers(db), tokens, rec, logger)
	sessionSvc := sessions.NewService(kvstore.NewMemory(), courseSvc, roundSvc, logger)

	return &App{
		DB:       db,
		Recorder: rec,
		Logger:   logger,
		Tokens:   tokens,
		Courses:  courseSvc,
		Rounds:   roundSvc,
		Auth:     authSvc,
		Sessions: sessionSvc,
	}
}

// FakeCredentials returns a random valid email and password.
func FakeCredentials() users.Credentials {
	return users.Credentials{
		Email:    users.NormalizeEmail(gofakeit.Email()),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}

// Register creates a user with random credentials and returns a bearer token.
func (a *App) Register(t *testing.T) string {
	t.Helper()
	tok, err := a.Auth.Register(context.Background(), FakeCredentials())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return tok.AccessToken
}

// CreateCourse stores a sample course and returns its id and first tee box id.
func (a *App) CreateCourse(t *testing.T, name string) (id int64, teeBoxID int64) {
	t.Helper()
	course, err := a.Courses.Create(context.Background(), SampleCourseInput(name))
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course.ID, course.TeeBoxes[0].ID
}
