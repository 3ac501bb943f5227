// ABOUTME: Derived daily summaries: averages, best and worst days, and calendar buckets.
// ABOUTME: Buckets group daily aggregates by day, ISO week (Monday start) or month.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
)

// Averages are per-tracked-day means, rounded to whole units.
type Averages struct {
	Calories int `json:"avg_calories"`
	ProteinG int `json:"avg_protein_g"`
	CarbsG   int `json:"avg_carbs_g"`
	FatG     int `json:"avg_fat_g"`
}

// AverageNutrition averages each macro over the tracked days of the trailing window.
func AverageNutrition(meals []*models.Meal, days int, today time.Time) Averages {
	from, to := eventlog.TrailingWindow(today, days)
	agg := eventlog.DailyAggregates(meals, from, to)
	if len(agg) == 0 {
		return Averages{}
	}
	var cal, p, c, f float64
	for _, d := range agg {
		cal += d.Calories
		p += d.ProteinG
		c += d.CarbsG
		f += d.FatG
	}
	n := float64(len(agg))
	return Averages{
		Calories: numeric.Round(cal / n),
		ProteinG: numeric.Round(p / n),
		CarbsG:   numeric.Round(c / n),
		FatG:     numeric.Round(f / n),
	}
}

// DayCalories is one day's calorie total.
type DayCalories struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
}

// BestAndWorstDays returns the days closest to and furthest from the calorie
// target. Ties keep date order. Both are nil for an empty series.
func BestAndWorstDays(days []eventlog.DailyAggregate, targetCalories int) (best, worst *DayCalories) {
	if len(days) == 0 {
		return nil, nil
	}
	ranked := make([]eventlog.DailyAggregate, len(days))
	copy(ranked, days)
	target := float64(targetCalories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Calories-target) < math.Abs(ranked[j].Calories-target)
	})
	first, last := ranked[0], ranked[len(ranked)-1]
	return &DayCalories{Date: first.Date, Calories: first.Calories},
		&DayCalories{Date: last.Date, Calories: last.Calories}
}

// Granularity selects the bucket size for Buckets.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
)

// ParseGranularity validates a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case ByDay, ByWeek, ByMonth:
		return g, nil
	}
	return "", fmt.Errorf("invalid granularity %q: must be day, week, or month", s)
}

// Bucket is a period summary for one calendar bucket.
type Bucket struct {
	Start time.Time `json:"start"`
	PeriodStats
}

// Buckets groups daily aggregates into calendar buckets, ascending by start.
// Empty buckets are omitted.
func Buckets(days []eventlog.DailyAggregate, g Granularity) []Bucket {
	groups := make(map[time.Time][]eventlog.DailyAggregate)
	var starts []time.Time
	for _, d := range days {
		start := bucketStart(d.Date, g)
		if _, ok := groups[start]; !ok {
			starts = append(starts, start)
		}
		groups[start] = append(groups[start], d)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	out := make([]Bucket, 0, len(starts))
	for _, s := range starts {
		out = append(out, Bucket{Start: s, PeriodStats: Summarize(groups[s])})
	}
	return out
}

func bucketStart(t time.Time, g Granularity) time.Time {
	d := eventlog.Day(t)
	switch g {
	case ByWeek:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case ByMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.Local)
	default:
		return d
	}
}
