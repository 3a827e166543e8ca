package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
)

// DateOf returns the calendar date of t (in t's own location) as midnight UTC.
// All day arithmetic happens on these values so DST transitions never shift a day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the local calendar date of now.
func Today(now time.Time) time.Time {
	return DateOf(now.Local())
}

// ParseDate parses a YYYY-MM-DD date. Full ISO-8601 timestamps are accepted too
// and truncated to their date part, matching records written by older versions.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperrors.InvalidArgumentf("empty date")
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, apperrors.InvalidArgumentf("invalid date %q (expected YYYY-MM-DD)", s)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatTimestamp formats an instant for the *_at fields.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampFormat)
}

// AddDays moves a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// WithinWindow reports whether day lies in the inclusive range [today, today+windowDays]
// and returns its distance from today.
func WithinWindow(today, day time.Time, windowDays int) (int, bool) {
	d := DaysBetween(today, day)
	return d, d >= 0 && d <= windowDays
}

// MustParseDate is ParseDate for literals in tests and static tables.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseDate(%q): %v", s, err))
	}
	return t
}
