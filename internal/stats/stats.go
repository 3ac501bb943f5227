// ABOUTME: Statistics engine: period summaries, macro shares, meal-type counts and trends.
// ABOUTME: Every summary is built from the eventlog daily aggregation primitive.
package stats

import (
	"time"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
)

// Window lengths for the fixed summaries.
const (
	WeekDays  = 7
	MonthDays = 30
)

// TrendBand is the kcal change that must be exceeded before a trend is reported.
const TrendBand = 50

// PeriodStats summarizes the meals eaten over a date range.
type PeriodStats struct {
	TotalCalories float64 `json:"total_calories"`
	AvgCalories   int     `json:"avg_calories"`
	TotalProtein  float64 `json:"total_protein_g"`
	TotalCarbs    float64 `json:"total_carbs_g"`
	TotalFat      float64 `json:"total_fat_g"`
	TotalMeals    int     `json:"total_meals"`
	DaysTracked   int     `json:"days_tracked"`
}

// Period summarizes meals eaten within [from, to].
func Period(meals []*models.Meal, from, to time.Time) PeriodStats {
	return Summarize(eventlog.DailyAggregates(meals, from, to))
}

// Weekly summarizes the trailing 7-day window.
func Weekly(meals []*models.Meal, today time.Time) PeriodStats {
	from, to := eventlog.TrailingWindow(today, WeekDays)
	return Period(meals, from, to)
}

// Monthly summarizes the trailing 30-day window.
func Monthly(meals []*models.Meal, today time.Time) PeriodStats {
	from, to := eventlog.TrailingWindow(today, MonthDays)
	return Period(meals, from, to)
}

// Summarize folds daily aggregates into period totals.
func Summarize(days []eventlog.DailyAggregate) PeriodStats {
	var s PeriodStats
	for _, d := range days {
		s.TotalCalories += d.Calories
		s.TotalProtein += d.ProteinG
		s.TotalCarbs += d.CarbsG
		s.TotalFat += d.FatG
		s.TotalMeals += d.MealCount
		s.DaysTracked++
	}
	if s.DaysTracked > 0 {
		s.AvgCalories = numeric.Round(s.TotalCalories / float64(s.DaysTracked))
	}
	return s
}

// MacroShare is each macro's percentage of total macro energy.
type MacroShare struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

// MacroDistribution converts gram totals to energy percentages. The three
// values are rounded independently and need not sum to 100.
func MacroDistribution(proteinG, carbsG, fatG float64) MacroShare {
	protein := proteinG * energy.ProteinKcalPerGram
	carbs := carbsG * energy.CarbsKcalPerGram
	fat := fatG * energy.FatKcalPerGram
	total := protein + carbs + fat
	if total == 0 {
		return MacroShare{}
	}
	return MacroShare{
		ProteinPct: numeric.Round(protein / total * 100),
		CarbsPct:   numeric.Round(carbs / total * 100),
		FatPct:     numeric.Round(fat / total * 100),
	}
}

// MealTypeCounts counts meals by type.
type MealTypeCounts struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Snack     int `json:"snack"`
}

// Total returns the number of counted meals.
func (c MealTypeCounts) Total() int {
	return c.Breakfast + c.Lunch + c.Dinner + c.Snack
}

// Get returns the count for one meal type.
func (c MealTypeCounts) Get(t models.MealType) int {
	switch t {
	case models.MealBreakfast:
		return c.Breakfast
	case models.MealLunch:
		return c.Lunch
	case models.MealDinner:
		return c.Dinner
	case models.MealSnack:
		return c.Snack
	}
	return 0
}

// MealTypeDistribution counts meals by type over the trailing window of days.
// Meals with an unknown type are not counted.
func MealTypeDistribution(meals []*models.Meal, days int, today time.Time) MealTypeCounts {
	from, to := eventlog.TrailingWindow(today, days)
	var c MealTypeCounts
	for _, m := range eventlog.MealsInRange(meals, from, to) {
		switch m.MealType {
		case models.MealBreakfast:
			c.Breakfast++
		case models.MealLunch:
			c.Lunch++
		case models.MealDinner:
			c.Dinner++
		case models.MealSnack:
			c.Snack++
		}
	}
	return c
}

// Direction is the sign of a trend.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// Trend compares the later half of a series with the earlier half.
type Trend struct {
	Direction Direction `json:"trend"`
	Change    int       `json:"change"`
}

// CalorieTrend splits the days at n/2 by index and compares mean calories.
// Fewer than two days is always stable with no change.
func CalorieTrend(days []eventlog.DailyAggregate) Trend {
	if len(days) < 2 {
		return Trend{Direction: Stable}
	}
	mid := len(days) / 2
	change := numeric.Round(meanCalories(days[mid:]) - meanCalories(days[:mid]))
	return Trend{Direction: classify(float64(change), TrendBand), Change: change}
}

func meanCalories(days []eventlog.DailyAggregate) float64 {
	var sum float64
	for _, d := range days {
		sum += d.Calories
	}
	return sum / float64(len(days))
}

func classify(change, band float64) Direction {
	switch {
	case change > band:
		return Increasing
	case change < -band:
		return Decreasing
	default:
		return Stable
	}
}
