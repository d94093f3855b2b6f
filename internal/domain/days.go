package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// MaxTripDays is the longest date range an itinerary may span, counting
// both ends. Longer ranges are rejected with ErrInvalidRange.
const MaxTripDays = 3660

const secondsPerDay = 24 * 60 * 60

// Date truncates t to midnight UTC of its calendar day.
// All itinerary dates are normalized with Date before use.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetweenInclusive returns the number of calendar days from start to end,
// counting both ends, never less than 1. Both dates are normalized first, so
// the difference is a whole number of days for any year time.Time can hold.
func DaysBetweenInclusive(start, end time.Time) int {
	diff := Date(end).Unix() - Date(start).Unix()
	n := diff/secondsPerDay + 1
	if n < 1 {
		return 1
	}
	return int(n)
}

// ValidateRange reports whether [start, end] is a usable itinerary range.
// It returns ErrInvalidRange when start is after end or when the range spans
// more than MaxTripDays days.
func ValidateRange(start, end time.Time) error {
	start, end = Date(start), Date(end)
	if start.After(end) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange,
			start.Format(DateLayout), end.Format(DateLayout))
	}
	if n := DaysBetweenInclusive(start, end); n > MaxTripDays {
		return fmt.Errorf("%w: %d days exceeds the maximum of %d", ErrInvalidRange, n, MaxTripDays)
	}
	return nil
}

// ComputeDays partitions the range [start, end] into consecutive calendar days.
// Each returned Day has a 1-based Number, a Date starting at start, and an
// empty (non-nil) place list. At least one day is always returned; callers
// are expected to check the range with ValidateRange beforehand.
func ComputeDays(start, end time.Time) []Day {
	first := Date(start)
	n := DaysBetweenInclusive(start, end)

	days := make([]Day, n)
	for i := range days {
		days[i] = Day{
			Number: i + 1,
			Date:   first.AddDate(0, 0, i),
			Places: []Place{},
		}
	}
	return days
}
