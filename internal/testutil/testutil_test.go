package testutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
)

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	_ = b.Handler()
	if b.Addr() != b.AddrVal {
		t.Fatalf("expected blocking server addr passthrough")
	}
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	_ = e.ListenAndServe()
	_ = e.Shutdown(context.Background())
	_ = e.Handler()
	if e.Addr() == "" {
		t.Fatalf("expected addr from ErrHTTPServer")
	}
	if e.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for ErrHTTPServer")
	}

	c := &CloseableHTTPServer{}
	_ = c.ListenAndServe()
	_ = c.Shutdown(context.Background())
	_ = c.Handler()
	if c.Addr() == "" {
		t.Fatalf("expected addr from CloseableHTTPServer")
	}
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestRequestBuilders(t *testing.T) {
	req := NewJSONRequest(t, http.MethodPost, "/api/rounds", map[string]int{"course_id": 1})
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	body, _ := io.ReadAll(req.Body)
	if !strings.Contains(string(body), `"course_id":1`) {
		t.Fatalf("unexpected body %s", body)
	}

	up := WithBearer(NewUploadRequest(t, "/api/courses/csv-upload", "c.csv", []byte("a,b")), "tok")
	if got := up.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("unexpected authorization %q", got)
	}
	if err := up.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	f, fh, err := up.FormFile("file")
	if err != nil {
		t.Fatalf("expected file field: %v", err)
	}
	defer f.Close()
	if fh.Filename != "c.csv" {
		t.Fatalf("unexpected filename %q", fh.Filename)
	}
}

func TestFixtures(t *testing.T) {
	tee := SampleTeeBox(7)
	if len(tee.Holes) != courses.HolesPerRound {
		t.Fatalf("expected %d holes, got %d", courses.HolesPerRound, len(tee.Holes))
	}
	par := 0
	for _, h := range tee.Holes {
		par += h.Par
	}
	if par != 72 {
		t.Fatalf("expected par 72, got %d", par)
	}
	if in := SampleCourseInput("Links"); in.Name != "Links" || in.Validate() != nil {
		t.Fatalf("expected valid renamed input, got %+v", in)
	}
	if s := Scores(4); len(s) != courses.HolesPerRound || s[17] != 4 {
		t.Fatalf("unexpected scores %v", s)
	}
}

func TestNewApp(t *testing.T) {
	app := NewApp(t)
	token := app.Register(t)
	if _, err := app.Auth.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("expected token to authenticate: %v", err)
	}
	courseID, teeID := app.CreateCourse(t, "Links")
	course, err := app.Courses.Get(context.Background(), courseID)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if _, ok := course.TeeBox(teeID); !ok {
		t.Fatalf("expected tee %d on course", teeID)
	}
	if creds := FakeCredentials(); creds.ValidateRegistration() != nil {
		t.Fatalf("expected fake credentials to be valid: %+v", creds)
	}
}
