package timeutil

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ErrUnrecognizedDate is returned when a round date cannot be understood.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

var phraseParser = newPhraseParser()

func newPhraseParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// NormalizeRoundDate accepts YYYY-MM-DD, RFC3339 or a phrase such as
// "yesterday" and returns the canonical date. Empty input means today.
func NormalizeRoundDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return FormatDate(now), nil
	}
	if parsed, err := ParseDate(value); err == nil {
		return FormatDate(parsed), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return FormatDate(parsed), nil
	}
	r, err := phraseParser.Parse(strings.ToLower(value), now)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", ErrUnrecognizedDate
	}
	return FormatDate(r.Time), nil
}
