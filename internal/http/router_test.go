package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/AlexanderWinters/the-score-card/internal/domain/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/http/handlers"
	"github.com/AlexanderWinters/the-score-card/internal/http/middleware"
	"github.com/AlexanderWinters/the-score-card/internal/testutil"
)

func newTestRouter(t *testing.T, limiter *middleware.IPRateLimiter) (http.Handler, *testutil.App) {
	t.Helper()
	app := testutil.NewApp(t)
	h := Handlers{
		Health:    handlers.NewHealthHandler(app.DB.PingContext, app.Logger),
		Courses:   handlers.NewCourseHandler(app.Courses, app.Logger),
		Bootstrap: handlers.NewBootstrapHandler(app.Courses, app.Logger),
		Auth:      handlers.NewAuthHandler(app.Auth, app.Logger),
		Rounds:    handlers.NewRoundHandler(app.Rounds, app.Logger),
		Sessions:  handlers.NewSessionHandler(app.Sessions, app.Logger),
	}
	router := NewRouter(h, Options{
		Logger:         app.Logger,
		Recorder:       app.Recorder,
		Authenticator:  app.Auth,
		AllowedOrigins: []string{"https://scorecard.example.com"},
		AuthLimiter:    limiter,
	})
	return router, app
}

func TestRouterPublicRoutes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/api/courses", http.StatusOK},
		{http.MethodGet, "/api/courses/42", http.StatusNotFound},
		{http.MethodGet, "/api/check-database", http.StatusOK},
		{http.MethodPost, "/api/seed", http.StatusOK},
		{http.MethodGet, "/does-not-exist", http.StatusNotFound},
		{http.MethodDelete, "/health", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rr := testutil.Serve(router, tc.method, tc.path, nil)
		if rr.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/courses"},
		{http.MethodPut, "/api/courses/1"},
		{http.MethodPatch, "/api/courses/1/toggle-active"},
		{http.MethodPost, "/api/courses/json-upload"},
		{http.MethodPost, "/api/courses/csv-upload"},
		{http.MethodPost, "/api/courses/xlsx-upload"},
		{http.MethodPost, "/api/courses/yaml-upload"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPost, "/api/rounds"},
		{http.MethodGet, "/api/rounds"},
		{http.MethodGet, "/api/rounds/chart.png"},
		{http.MethodGet, "/api/session"},
		{http.MethodPut, "/api/session"},
		{http.MethodDelete, "/api/session"},
		{http.MethodPatch, "/api/session/holes/1"},
		{http.MethodPost, "/api/session/submit"},
	}
	for _, p := range protected {
		rr := testutil.Serve(router, p.method, p.path, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, rr.Code)
		}
		req := testutil.WithBearer(httptest.NewRequest(p.method, p.path, nil), "not-a-jwt")
		if rr := testutil.ServeRequest(router, req); rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s with bad token: expected 401, got %d", p.method, p.path, rr.Code)
		}
	}
}

func TestRouterRoundTripWithToken(t *testing.T) {
	router, app := newTestRouter(t, nil)
	token := app.Register(t)
	courseID, teeID := app.CreateCourse(t, "Links")

	in := rounds.RoundInput{CourseID: courseID, TeeBoxID: teeID, Date: "2024-06-01", Scores: testutil.Scores(4)}
	rr := testutil.ServeRequest(router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/api/rounds", in), token))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.ServeRequest(router, testutil.WithBearer(httptest.NewRequest(http.MethodGet, "/api/rounds", nil), token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var history []rounds.HistoryEntry
	testutil.DecodeJSON(t, rr, &history)
	if len(history) != 1 {
		t.Fatalf("expected one round, got %d", len(history))
	}

	if got := app.Recorder.Snapshot().RoundsSaved; got != 1 {
		t.Fatalf("expected saved round metric, got %d", got)
	}
	if got := app.Recorder.Snapshot().Requests; got < 2 {
		t.Fatalf("expected requests recorded, got %d", got)
	}
}

func TestRouterCORS(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/rounds", nil)
	req.Header.Set("Origin", "https://scorecard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := testutil.ServeRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusNoContent)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://scorecard.example.com" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
}

func TestRouterRateLimitsAuthRoutes(t *testing.T) {
	router, _ := newTestRouter(t, middleware.NewIPRateLimiter(rate.Every(rate.InfDuration), 1))

	first := testutil.ServeRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/token", map[string]string{}))
	if first.Code == http.StatusTooManyRequests {
		t.Fatalf("expected first request through")
	}
	second := testutil.ServeRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/register", map[string]string{}))
	testutil.AssertStatus(t, second, http.StatusTooManyRequests)

	// other routes are not throttled
	rr := testutil.Serve(router, http.MethodGet, "/api/courses", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}
