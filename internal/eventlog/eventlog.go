// ABOUTME: Event log reader over the meal and weight collections.
// ABOUTME: Provides calendar-day truncation, date-range queries and per-day aggregation.
package eventlog

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/nutrition/internal/models"
)

// Source is the read side of the log store.
type Source interface {
	ListMeals(mealType *models.MealType, limit int) ([]*models.Meal, error)
	ListWeights(limit int) ([]*models.WeightEntry, error)
}

// Log is a full snapshot of both collections.
type Log struct {
	Meals   []*models.Meal
	Weights []*models.WeightEntry
}

// Load reads every meal and weight entry from src.
func Load(src Source) (*Log, error) {
	meals, err := src.ListMeals(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	weights, err := src.ListWeights(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}
	return &Log{Meals: meals, Weights: weights}, nil
}

// Day truncates t to local calendar midnight.
func Day(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// EndOfDay returns the last instant of t's local calendar day.
func EndOfDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// TrailingWindow spans local midnight days before today through the end of today.
func TrailingWindow(today time.Time, days int) (start, end time.Time) {
	return Day(today).AddDate(0, 0, -days), EndOfDay(today)
}

// DailyAggregate sums one calendar day's meals.
type DailyAggregate struct {
	Date      time.Time `json:"date"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	MealCount int       `json:"meal_count"`
}

// DailyAggregates groups meals eaten within [start, end] by calendar day.
// Only days with at least one meal appear, in ascending date order.
func DailyAggregates(meals []*models.Meal, start, end time.Time) []DailyAggregate {
	return aggregate(meals, func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	})
}

// AggregateAll groups every meal by calendar day.
func AggregateAll(meals []*models.Meal) []DailyAggregate {
	return aggregate(meals, func(time.Time) bool { return true })
}

func aggregate(meals []*models.Meal, keep func(time.Time) bool) []DailyAggregate {
	byDay := make(map[time.Time]*DailyAggregate)
	for _, m := range meals {
		if m == nil || !keep(m.EatenAt) {
			continue
		}
		d := Day(m.EatenAt)
		agg, ok := byDay[d]
		if !ok {
			agg = &DailyAggregate{Date: d}
			byDay[d] = agg
		}
		agg.Calories += m.Calories
		agg.ProteinG += m.ProteinG
		agg.CarbsG += m.CarbsG
		agg.FatG += m.FatG
		agg.MealCount++
	}

	days := make([]DailyAggregate, 0, len(byDay))
	for _, agg := range byDay {
		days = append(days, *agg)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// MealsInRange returns meals eaten within [start, end], ascending by time.
func MealsInRange(meals []*models.Meal, start, end time.Time) []*models.Meal {
	var out []*models.Meal
	for _, m := range meals {
		if m != nil && !m.EatenAt.Before(start) && !m.EatenAt.After(end) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EatenAt.Before(out[j].EatenAt)
	})
	return out
}

// WeightsInRange returns entries recorded within [start, end], ascending by time.
func WeightsInRange(weights []*models.WeightEntry, start, end time.Time) []*models.WeightEntry {
	var out []*models.WeightEntry
	for _, w := range weights {
		if w != nil && !w.RecordedAt.Before(start) && !w.RecordedAt.After(end) {
			out = append(out, w)
		}
	}
	sortWeights(out)
	return out
}

// SortedWeights returns a copy of weights in ascending time order.
func SortedWeights(weights []*models.WeightEntry) []*models.WeightEntry {
	out := make([]*models.WeightEntry, 0, len(weights))
	for _, w := range weights {
		if w != nil {
			out = append(out, w)
		}
	}
	sortWeights(out)
	return out
}

// LatestWeight returns the most recently recorded entry, or nil.
func LatestWeight(weights []*models.WeightEntry) *models.WeightEntry {
	var latest *models.WeightEntry
	for _, w := range weights {
		if w != nil && (latest == nil || w.RecordedAt.After(latest.RecordedAt)) {
			latest = w
		}
	}
	return latest
}

func sortWeights(ws []*models.WeightEntry) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].RecordedAt.Before(ws[j].RecordedAt)
	})
}
