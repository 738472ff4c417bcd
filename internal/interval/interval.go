// Package interval contains the pure overlap arithmetic every booking
// manager consults before committing a reservation. All intervals are
// half-open: an interval ending exactly when another begins does not
// overlap, which is what allows back-to-back bookings of the same booth.
package interval

import (
	"regexp"
	"time"
)

var timeRe = regexp.MustCompile(`^([0-1]\d|2[0-3]):([0-5]\d)$`)

// Overlaps reports whether [startA, endA) intersects [startB, endB).
// Zero-length intervals never overlap anything.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	if !endA.After(startA) || !endB.After(startB) {
		return false
	}
	return !(endA.Compare(startB) <= 0 || startA.Compare(endB) >= 0)
}

// TimesOverlap applies the same half-open predicate to "HH:mm" strings.
// Zero-padded 24h times compare correctly as plain strings, so no parsing
// is needed; callers validate the format with ValidTime first.
func TimesOverlap(startA, endA, startB, endB string) bool {
	if endA <= startA || endB <= startB {
		return false
	}
	return !(endA <= startB || startA >= endB)
}

// ValidTime reports whether s is a zero-padded 24h "HH:mm" time.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween enumerates every calendar day from from to to, inclusive.
// Returns nil when to precedes from.
func DaysBetween(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
