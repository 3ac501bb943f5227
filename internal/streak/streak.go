// ABOUTME: Streak analyzer: current and longest runs of consecutive logged days.
// ABOUTME: Operates on daily aggregates so a day counts once however many meals it has.
package streak

import (
	"sort"
	"time"

	"github.com/harperreed/nutrition/internal/eventlog"
)

// distinctDays returns the unique calendar days present in days, ascending.
func distinctDays(days []eventlog.DailyAggregate) []time.Time {
	seen := make(map[time.Time]bool, len(days))
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		day := eventlog.Day(d.Date)
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Current counts consecutive logged days ending today. A day without a meal
// today yields 0. Dates after today are ignored.
func Current(days []eventlog.DailyAggregate, today time.Time) int {
	dates := distinctDays(days)
	cursor := eventlog.Day(today)
	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		d := dates[i]
		if d.After(cursor) {
			continue
		}
		if !d.Equal(cursor) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// Longest returns the longest run of consecutive calendar days in the log.
func Longest(days []eventlog.DailyAggregate) int {
	dates := distinctDays(days)
	if len(dates) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// HasToday reports whether any meal was logged on today's date.
func HasToday(days []eventlog.DailyAggregate, today time.Time) bool {
	for _, d := range days {
		if eventlog.SameDay(d.Date, today) {
			return true
		}
	}
	return false
}

// Milestone is a streak length worth celebrating.
type Milestone struct {
	Days    int    `json:"days"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Milestones lists the celebrated streak lengths in ascending order.
var Milestones = []Milestone{
	{Days: 1, Title: "First Day", Message: "You logged your first day. Keep it going!"},
	{Days: 3, Title: "Three in a Row", Message: "Three days straight. A habit is forming."},
	{Days: 7, Title: "One Week", Message: "A full week of tracking."},
	{Days: 14, Title: "Two Weeks", Message: "Two weeks without a gap."},
	{Days: 30, Title: "One Month", Message: "A whole month of consistent logging."},
	{Days: 60, Title: "Two Months", Message: "Sixty days. This is who you are now."},
	{Days: 100, Title: "Century", Message: "One hundred days in a row."},
}

// MilestoneFor returns the milestone reached exactly at streak days.
func MilestoneFor(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Days == streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// NextMilestone returns the first milestone above streak.
func NextMilestone(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Days > streak {
			return m, true
		}
	}
	return Milestone{}, false
}
