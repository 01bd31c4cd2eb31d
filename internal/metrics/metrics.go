package metrics

import (
	"sync"
	"time"
)

type importStats struct {
	imports  int
	errors   int
	imported int
}

// Recorder captures lightweight, in-memory counters for the service and
// forwards them to OpenTelemetry instruments when those are configured.
type Recorder struct {
	mu sync.Mutex

	requests        int
	lastRequest     time.Duration
	roundsSaved     int
	completedHoles  int
	authAttempts    map[string]int
	authFailures    map[string]int
	importsByFormat map[string]*importStats

	otel *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		authAttempts:    make(map[string]int),
		authFailures:    make(map[string]int),
		importsByFormat: make(map[string]*importStats),
		otel:            otel,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.requests++
	r.lastRequest = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// RecordRoundSaved counts a stored round and how many holes it had.
func (r *Recorder) RecordRoundSaved(completedHoles int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.roundsSaved++
	r.completedHoles += completedHoles
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRoundSaved(completedHoles)
	}
}

// RecordImport counts an upload in format. imported is the number of courses
// stored; err marks the upload as failed.
func (r *Recorder) RecordImport(format string, imported int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.importsByFormat[format]
	if !ok {
		stats = &importStats{}
		r.importsByFormat[format] = stats
	}
	stats.imports++
	stats.imported += imported
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordImport(format, imported, err)
	}
}

// RecordAuthAttempt counts a register or login attempt.
func (r *Recorder) RecordAuthAttempt(action string, ok bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.authAttempts[action]++
	if !ok {
		r.authFailures[action]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAuthAttempt(action, ok)
	}
}

// Snapshot is a copy of the in-memory counters.
type Snapshot struct {
	Requests        int
	LastRequest     time.Duration
	RoundsSaved     int
	CompletedHoles  int
	Imports         int
	ImportErrors    int
	CoursesImported int
	AuthAttempts    int
	AuthFailures    int
}

// Snapshot returns totals across all formats and auth actions.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Requests:       r.requests,
		LastRequest:    r.lastRequest,
		RoundsSaved:    r.roundsSaved,
		CompletedHoles: r.completedHoles,
	}
	for _, s := range r.importsByFormat {
		snap.Imports += s.imports
		snap.ImportErrors += s.errors
		snap.CoursesImported += s.imported
	}
	for _, n := range r.authAttempts {
		snap.AuthAttempts += n
	}
	for _, n := range r.authFailures {
		snap.AuthFailures += n
	}
	return snap
}

// ImportsFor returns the number of uploads seen for format.
func (r *Recorder) ImportsFor(format string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.importsByFormat[format]; ok {
		return s.imports
	}
	return 0
}

// AuthFailures returns failed attempts recorded for action.
func (r *Recorder) AuthFailures(action string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authFailures[action]
}
