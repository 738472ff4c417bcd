package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     int
		want                           bool
	}{
		{"touching intervals do not overlap", 1, 5, 5, 9, false},
		{"partial overlap", 1, 5, 4, 9, true},
		{"containment", 1, 5, 2, 3, true},
		{"identical", 1, 5, 1, 5, true},
		{"disjoint", 1, 3, 6, 9, false},
		{"zero-length inside", 1, 5, 3, 3, false},
		{"zero-length at start", 1, 5, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.startA), date(tt.endA), date(tt.startB), date(tt.endB))
			assert.Equal(t, tt.want, got)

			// symmetry must hold for every pair
			sym := Overlaps(date(tt.startB), date(tt.endB), date(tt.startA), date(tt.endA))
			assert.Equal(t, got, sym, "overlaps must be symmetric")
		})
	}
}

func TestTimesOverlap(t *testing.T) {
	assert.False(t, TimesOverlap("10:00", "11:00", "11:00", "12:00"), "back-to-back sessions are allowed")
	assert.True(t, TimesOverlap("10:00", "11:00", "10:30", "11:30"))
	assert.True(t, TimesOverlap("09:00", "17:00", "12:00", "13:00"))
	assert.False(t, TimesOverlap("09:00", "10:00", "14:00", "15:00"))
	assert.False(t, TimesOverlap("10:00", "10:00", "09:00", "18:00"), "zero-length never overlaps")
}

func TestValidTime(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59", "10:05"} {
		assert.True(t, ValidTime(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "10:5", "10-30", "", "10:60", "aa:bb"} {
		assert.False(t, ValidTime(bad), bad)
	}
}

func TestDaysBetween(t *testing.T) {
	days := DaysBetween(date(1), date(3))
	assert.Len(t, days, 3)
	assert.Equal(t, date(1), days[0])
	assert.Equal(t, date(3), days[2])

	assert.Len(t, DaysBetween(date(5), date(5)), 1, "single-day range yields one day")
	assert.Nil(t, DaysBetween(date(5), date(4)), "inverted range yields nothing")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/06/2025")
	assert.Error(t, err)
}
