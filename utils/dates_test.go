package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	in := time.Date(2026, time.March, 15, 18, 45, 12, 999, loc)

	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, DaysBetween(day(20), day(20)))
	assert.Equal(t, 5, DaysBetween(day(15), day(20)))
	assert.Equal(t, -1, DaysBetween(day(21), day(20)))
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.June, 19, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 20, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(start, end))
}

func TestSameMonthDayIgnoresYear(t *testing.T) {
	a := time.Date(1987, time.March, 15, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 15, 8, 30, 0, 0, time.UTC)
	c := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameMonthDay(a, b))
	assert.False(t, SameMonthDay(a, c))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, time.June, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", RelativeTime(now, now))
	assert.Equal(t, "Yesterday", RelativeTime(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "3 days ago", RelativeTime(now.AddDate(0, 0, -3), now))
}
