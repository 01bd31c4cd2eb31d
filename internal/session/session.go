// Package session keeps the in-progress round of one player. The state lives
// in memory and every change is written through to a key-value store so that
// the round can be resumed after a restart.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/scoring"
)

// KV is the storage the session writes through to.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Persisted keys.
const (
	KeyHandicap     = "handicap"
	KeyPlayerName   = "playerName"
	KeyCourseID     = "selectedCourseId"
	KeyTeeBoxID     = "selectedTeeBoxId"
	KeyLastCourseID = "lastCourseId"
	KeyScores       = "scores"
	KeyPutts        = "putts"
	KeyGIR          = "gir"
	KeyFairways     = "fairways"
	KeyBunkers      = "bunkers"
	KeyTheme        = "theme"
	KeyShowDetails  = "showDetails"
)

// Value limits accepted per hole.
const (
	MaxHandicap = 54
	MaxScore    = 20
	MaxPutts    = 10
	MaxBunkers  = 10
)

var (
	ErrInvalidHole  = errors.New("hole number out of range")
	ErrInvalidValue = errors.New("value out of range")
)

// Preferences are display settings stored alongside the round.
type Preferences struct {
	Theme       string `json:"theme"`
	ShowDetails bool   `json:"showDetails"`
}

// Session is a player's in-progress round.
type Session struct {
	kv           KV
	state        scoring.RoundState
	lastCourseID int64
	prefs        Preferences
	tee          *courses.TeeBox
}

// Load rebuilds a session from kv. Missing or malformed keys fall back to defaults.
func Load(kv KV) *Session {
	s := &Session{kv: kv}
	s.state.PlayerName, _ = kv.Get(KeyPlayerName)
	s.state.Handicap = int(readInt(kv, KeyHandicap))
	if s.state.Handicap < 0 || s.state.Handicap > MaxHandicap {
		s.state.Handicap = 0
	}
	s.state.CourseID = readInt(kv, KeyCourseID)
	s.state.TeeBoxID = readInt(kv, KeyTeeBoxID)
	s.lastCourseID = readInt(kv, KeyLastCourseID)
	readArray(kv, KeyScores, &s.state.Scores)
	readArray(kv, KeyPutts, &s.state.Putts)
	readArray(kv, KeyGIR, &s.state.GIR)
	readArray(kv, KeyFairways, &s.state.FairwayHits)
	readArray(kv, KeyBunkers, &s.state.BunkerCounts)
	s.prefs.Theme, _ = kv.Get(KeyTheme)
	if raw, ok := kv.Get(KeyShowDetails); ok {
		s.prefs.ShowDetails, _ = strconv.ParseBool(raw)
	}
	return s
}

// State returns a copy of the round.
func (s *Session) State() scoring.RoundState {
	return s.state
}

// Preferences returns the stored display settings.
func (s *Session) Preferences() Preferences {
	return s.prefs
}

// LastCourseID is the course the per-hole data belongs to.
func (s *Session) LastCourseID() int64 {
	return s.lastCourseID
}

// UseTeeBox attaches the tee box definition used for auto GIR. It is not persisted.
func (s *Session) UseTeeBox(tee courses.TeeBox) {
	s.tee = &tee
}

// SetPlayerName stores the display name of the player.
func (s *Session) SetPlayerName(name string) error {
	s.state.PlayerName = name
	return s.kv.Set(KeyPlayerName, name)
}

// SetHandicap stores the playing handicap.
func (s *Session) SetHandicap(handicap int) error {
	if handicap < 0 || handicap > MaxHandicap {
		return fmt.Errorf("handicap %d: %w", handicap, ErrInvalidValue)
	}
	s.state.Handicap = handicap
	return s.kv.Set(KeyHandicap, strconv.Itoa(handicap))
}

// SelectCourse switches the course. Per-hole data is cleared when the course
// differs from the one the data was entered on.
func (s *Session) SelectCourse(courseID int64) error {
	if courseID != s.lastCourseID {
		s.state.ClearHoles()
		s.state.TeeBoxID = 0
		s.tee = nil
		if err := s.writeHoles(); err != nil {
			return err
		}
		if err := s.kv.Remove(KeyTeeBoxID); err != nil {
			return err
		}
	}
	s.state.CourseID = courseID
	s.lastCourseID = courseID
	if err := s.kv.Set(KeyCourseID, formatID(courseID)); err != nil {
		return err
	}
	return s.kv.Set(KeyLastCourseID, formatID(courseID))
}

// SelectTeeBox picks the tee box played from the selected course.
func (s *Session) SelectTeeBox(tee courses.TeeBox) error {
	s.state.TeeBoxID = tee.ID
	s.UseTeeBox(tee)
	return s.kv.Set(KeyTeeBoxID, formatID(tee.ID))
}

// ClearSelection drops the course and tee box selection together with the
// per-hole data entered on them. Used when the selected course no longer exists.
func (s *Session) ClearSelection() error {
	s.state.ClearHoles()
	s.state.CourseID = 0
	s.lastCourseID = 0
	if err := s.writeHoles(); err != nil {
		return err
	}
	if err := s.kv.Remove(KeyCourseID); err != nil {
		return err
	}
	if err := s.kv.Remove(KeyLastCourseID); err != nil {
		return err
	}
	return s.ClearTeeBox()
}

// ClearTeeBox forgets the selected tee box, keeping the course and hole data.
func (s *Session) ClearTeeBox() error {
	s.state.TeeBoxID = 0
	s.tee = nil
	return s.kv.Remove(KeyTeeBoxID)
}

// SetScore records the strokes for a hole and re-derives its GIR flag.
func (s *Session) SetScore(number, score int) error {
	idx, err := holeIndex(number)
	if err != nil {
		return err
	}
	if score < 0 || score > MaxScore {
		return fmt.Errorf("score %d: %w", score, ErrInvalidValue)
	}
	s.state.Scores[idx] = score
	if err := writeArray(s.kv, KeyScores, s.state.Scores); err != nil {
		return err
	}
	return s.applyAutoGIR(idx, number)
}

// SetPutts records the putts for a hole and re-derives its GIR flag.
func (s *Session) SetPutts(number, putts int) error {
	idx, err := holeIndex(number)
	if err != nil {
		return err
	}
	if putts < 0 || putts > MaxPutts {
		return fmt.Errorf("putts %d: %w", putts, ErrInvalidValue)
	}
	s.state.Putts[idx] = putts
	if err := writeArray(s.kv, KeyPutts, s.state.Putts); err != nil {
		return err
	}
	return s.applyAutoGIR(idx, number)
}

// SetGIR overrides the GIR flag for a hole.
func (s *Session) SetGIR(number int, hit bool) error {
	idx, err := holeIndex(number)
	if err != nil {
		return err
	}
	s.state.GIR[idx] = hit
	return writeArray(s.kv, KeyGIR, s.state.GIR)
}

// SetFairway records whether the fairway was hit on a hole.
func (s *Session) SetFairway(number int, hit bool) error {
	idx, err := holeIndex(number)
	if err != nil {
		return err
	}
	s.state.FairwayHits[idx] = hit
	return writeArray(s.kv, KeyFairways, s.state.FairwayHits)
}

// SetBunkers records the bunker count for a hole.
func (s *Session) SetBunkers(number, count int) error {
	idx, err := holeIndex(number)
	if err != nil {
		return err
	}
	if count < 0 || count > MaxBunkers {
		return fmt.Errorf("bunkers %d: %w", count, ErrInvalidValue)
	}
	s.state.BunkerCounts[idx] = count
	return writeArray(s.kv, KeyBunkers, s.state.BunkerCounts)
}

// SetPreferences stores display settings. They do not affect scoring.
func (s *Session) SetPreferences(p Preferences) error {
	s.prefs = p
	if err := s.kv.Set(KeyTheme, p.Theme); err != nil {
		return err
	}
	return s.kv.Set(KeyShowDetails, strconv.FormatBool(p.ShowDetails))
}

// Reset clears the per-hole data, keeping player, handicap and selections.
func (s *Session) Reset() error {
	s.state.ClearHoles()
	return s.writeHoles()
}

func (s *Session) applyAutoGIR(idx, number int) error {
	if s.tee == nil {
		return nil
	}
	hole, ok := s.tee.Hole(number)
	if !ok {
		return nil
	}
	before := s.state.GIR[idx]
	scoring.ApplyAutoGIR(&s.state, idx, hole)
	if s.state.GIR[idx] == before {
		return nil
	}
	return writeArray(s.kv, KeyGIR, s.state.GIR)
}

func (s *Session) writeHoles() error {
	if err := writeArray(s.kv, KeyScores, s.state.Scores); err != nil {
		return err
	}
	if err := writeArray(s.kv, KeyPutts, s.state.Putts); err != nil {
		return err
	}
	if err := writeArray(s.kv, KeyGIR, s.state.GIR); err != nil {
		return err
	}
	if err := writeArray(s.kv, KeyFairways, s.state.FairwayHits); err != nil {
		return err
	}
	return writeArray(s.kv, KeyBunkers, s.state.BunkerCounts)
}

func holeIndex(number int) (int, error) {
	if number < 1 || number > scoring.Holes {
		return 0, fmt.Errorf("hole %d: %w", number, ErrInvalidHole)
	}
	return number - 1, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func readInt(kv KV, key string) int64 {
	raw, ok := kv.Get(key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// readArray decodes a JSON array into dest. Shorter arrays fill a prefix;
// anything malformed leaves dest untouched.
func readArray[T int | bool](kv KV, key string, dest *[scoring.Holes]T) {
	raw, ok := kv.Get(key)
	if !ok {
		return
	}
	var values []T
	if err := json.Unmarshal([]byte(raw), &values); err != nil || len(values) > scoring.Holes {
		return
	}
	var out [scoring.Holes]T
	copy(out[:], values)
	*dest = out
}

func writeArray[T int | bool](kv KV, key string, values [scoring.Holes]T) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return kv.Set(key, string(data))
}
