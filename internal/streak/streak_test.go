// ABOUTME: Tests for current and longest streak calculation.
// ABOUTME: Builds daily aggregates directly from local-time dates.
package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/nutrition/internal/eventlog"
)

func jan(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.Local)
}

func daysOf(ds ...int) []eventlog.DailyAggregate {
	out := make([]eventlog.DailyAggregate, 0, len(ds))
	for _, d := range ds {
		out = append(out, eventlog.DailyAggregate{Date: jan(d), MealCount: 1})
	}
	return out
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name  string
		days  []eventlog.DailyAggregate
		today time.Time
		want  int
	}{
		{"three consecutive days", daysOf(1, 2, 3), jan(3), 3},
		{"gap before today", daysOf(1, 3), jan(3), 1},
		{"nothing today", daysOf(1, 2), jan(3), 0},
		{"empty log", nil, jan(3), 0},
		{"future dates ignored", daysOf(2, 3, 5), jan(3), 2},
		{"unordered input", daysOf(3, 1, 2), jan(3), 3},
		{"duplicate days count once", daysOf(2, 3, 3), jan(3), 2},
		{"today given mid-afternoon", daysOf(2, 3), jan(3).Add(15 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Current(tt.days, tt.today))
		})
	}
}

func TestLongest(t *testing.T) {
	tests := []struct {
		name string
		days []eventlog.DailyAggregate
		want int
	}{
		{"two runs", daysOf(1, 2, 3, 10, 11), 3},
		{"later run longer", daysOf(1, 5, 6, 7, 8), 4},
		{"single day", daysOf(9), 1},
		{"empty", nil, 0},
		{"duplicates", daysOf(1, 1, 2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Longest(tt.days))
		})
	}
}

func TestLongestAcrossMonthBoundary(t *testing.T) {
	days := []eventlog.DailyAggregate{
		{Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)},
	}
	assert.Equal(t, 3, Longest(days))
	assert.Equal(t, 3, Current(days, time.Date(2024, 3, 1, 20, 0, 0, 0, time.Local)))
}

func TestHasToday(t *testing.T) {
	assert.True(t, HasToday(daysOf(1, 3), jan(3).Add(9*time.Hour)))
	assert.False(t, HasToday(daysOf(1, 2), jan(3)))
}

func TestMilestones(t *testing.T) {
	m, ok := MilestoneFor(7)
	assert.True(t, ok)
	assert.Equal(t, "One Week", m.Title)

	_, ok = MilestoneFor(8)
	assert.False(t, ok)

	next, ok := NextMilestone(8)
	assert.True(t, ok)
	assert.Equal(t, 14, next.Days)

	_, ok = NextMilestone(100)
	assert.False(t, ok)
}
