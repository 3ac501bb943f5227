// ABOUTME: Reporting surface: pure query functions over a profile and a loaded event log.
// ABOUTME: Adapters (CLI, MCP, HTTP) call these directly or through Service.
package report

import (
	"time"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/plan"
	"github.com/harperreed/nutrition/internal/stats"
	"github.com/harperreed/nutrition/internal/streak"
)

// UserGoals derives calorie and macro goals. ok is false for an incomplete profile.
func UserGoals(p *models.Profile) (energy.Goals, bool) {
	return energy.ComputeGoals(p)
}

// WeightPlans projects plans over the default horizons.
func WeightPlans(currentKg, targetKg float64, tdee int, sex models.Sex, today time.Time) plan.Projection {
	return plan.Project(currentKg, targetKg, tdee, sex, today)
}

// CurrentStreak counts consecutive logged days ending today.
func CurrentStreak(log *eventlog.Log, today time.Time) int {
	return streak.Current(eventlog.AggregateAll(mealsOf(log)), today)
}

// LongestStreak returns the longest run of consecutive logged days.
func LongestStreak(log *eventlog.Log) int {
	return streak.Longest(eventlog.AggregateAll(mealsOf(log)))
}

// PeriodStats summarizes meals eaten within [from, to].
func PeriodStats(log *eventlog.Log, from, to time.Time) stats.PeriodStats {
	return stats.Period(mealsOf(log), from, to)
}

// CalorieTrend classifies the calorie trend over the trailing window of days.
func CalorieTrend(log *eventlog.Log, days int, today time.Time) stats.Trend {
	from, to := eventlog.TrailingWindow(today, days)
	return stats.CalorieTrend(eventlog.DailyAggregates(mealsOf(log), from, to))
}

// MealTypeDistribution counts meals by type over the trailing window of days.
func MealTypeDistribution(log *eventlog.Log, days int, today time.Time) stats.MealTypeCounts {
	return stats.MealTypeDistribution(mealsOf(log), days, today)
}

// MacroDistribution converts gram totals to energy percentages.
func MacroDistribution(proteinG, carbsG, fatG float64) stats.MacroShare {
	return stats.MacroDistribution(proteinG, carbsG, fatG)
}

func mealsOf(log *eventlog.Log) []*models.Meal {
	if log == nil {
		return nil
	}
	return log.Meals
}

func weightsOf(log *eventlog.Log) []*models.WeightEntry {
	if log == nil {
		return nil
	}
	return log.Weights
}
