package core

import (
	"fmt"
	"time"
)

// DayFormat is the ISO calendar date layout used on record date fields.
const DayFormat = "2006-01-02"

// DayUTC truncates t to its UTC calendar day.
// Calendar-day comparisons are always evaluated on the UTC day; a record
// stamped 23:59Z belongs to that UTC day no matter the writer's zone.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDayUTC reports whether a and b fall on the same UTC calendar day.
func SameDayUTC(a, b time.Time) bool {
	return DayUTC(a).Equal(DayUTC(b))
}

// ParseDay parses a date field value, accepting a bare ISO date or a full
// RFC 3339 timestamp, and normalizes it to the UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayUTC(t), nil
	}
	return time.Time{}, NewValidationError(fmt.Errorf("invalid date %q", s))
}

// FormatDay renders t as the ISO calendar date of its UTC day.
func FormatDay(t time.Time) string {
	return DayUTC(t).Format(DayFormat)
}
