// ABOUTME: Tests for averages, best/worst days, buckets and weight statistics.
// ABOUTME: Weight fixtures stay in January to avoid daylight-saving shifts.
package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
)

func TestAverageNutrition(t *testing.T) {
	today := jan(10, 12)
	meals := []*models.Meal{
		models.NewMeal("a", models.MealLunch, 1000).WithMacros(50, 100, 30).WithEatenAt(jan(9, 12)),
		models.NewMeal("b", models.MealLunch, 1001).WithMacros(51, 101, 31).WithEatenAt(jan(10, 12)),
	}

	got := AverageNutrition(meals, 7, today)
	assert.Equal(t, Averages{Calories: 1001, ProteinG: 51, CarbsG: 101, FatG: 31}, got)
	assert.Equal(t, Averages{}, AverageNutrition(nil, 7, today))
}

func TestBestAndWorstDays(t *testing.T) {
	days := series(1500, 2100, 2600, 1950)

	best, worst := BestAndWorstDays(days, 2000)
	require.NotNil(t, best)
	require.NotNil(t, worst)
	assert.Equal(t, 1950.0, best.Calories)
	assert.Equal(t, jan(4, 0), best.Date)
	assert.Equal(t, 2600.0, worst.Calories)

	best, _ = BestAndWorstDays(days, 1500)
	assert.Equal(t, 1500.0, best.Calories)

	best, worst = BestAndWorstDays(nil, 2000)
	assert.Nil(t, best)
	assert.Nil(t, worst)
}

func TestBuckets(t *testing.T) {
	// 2024-01-01 is a Monday.
	days := series(1000, 1000, 1000, 1000, 1000, 1000, 1000, 2000)
	days = append(days, eventlog.DailyAggregate{Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.Local), Calories: 1500, MealCount: 2})

	weeks := Buckets(days, ByWeek)
	require.Len(t, weeks, 3)
	assert.Equal(t, jan(1, 0), weeks[0].Start)
	assert.Equal(t, 7, weeks[0].DaysTracked)
	assert.Equal(t, 7000.0, weeks[0].TotalCalories)
	assert.Equal(t, jan(8, 0), weeks[1].Start)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.Local), weeks[2].Start)

	months := Buckets(days, ByMonth)
	require.Len(t, months, 2)
	assert.Equal(t, 8, months[0].DaysTracked)
	assert.Equal(t, 1125, months[0].AvgCalories)
	assert.Equal(t, 2, months[1].TotalMeals)

	assert.Len(t, Buckets(days, ByDay), 9)
	assert.Empty(t, Buckets(nil, ByWeek))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("week")
	require.NoError(t, err)
	assert.Equal(t, ByWeek, g)

	_, err = ParseGranularity("year")
	assert.Error(t, err)
}

func weighIn(kg float64, t time.Time) *models.WeightEntry {
	return models.NewWeightEntry(kg).WithRecordedAt(t)
}

func TestWeightChange(t *testing.T) {
	weights := []*models.WeightEntry{
		weighIn(78, jan(8, 7)),
		weighIn(80, jan(1, 7)),
		weighIn(76, jan(15, 7)),
	}

	s := WeightChange(weights)
	require.NotNil(t, s.StartKg)
	require.NotNil(t, s.CurrentKg)
	assert.Equal(t, 80.0, *s.StartKg)
	assert.Equal(t, 76.0, *s.CurrentKg)
	assert.Equal(t, -4.0, s.TotalChangeKg)
	assert.Equal(t, -5.0, s.ChangePct)
	assert.Equal(t, Decreasing, s.Trend)
	assert.Equal(t, 3, s.Entries)
}

func TestWeightChangeTrendBand(t *testing.T) {
	s := WeightChange([]*models.WeightEntry{weighIn(80, jan(1, 7)), weighIn(80.4, jan(2, 7))})
	assert.Equal(t, Stable, s.Trend)
	assert.Equal(t, 0.4, s.TotalChangeKg)

	s = WeightChange([]*models.WeightEntry{weighIn(80, jan(1, 7)), weighIn(81, jan(2, 7))})
	assert.Equal(t, Increasing, s.Trend)

	empty := WeightChange(nil)
	assert.Nil(t, empty.StartKg)
	assert.Equal(t, Stable, empty.Trend)
}

func TestAverageWeeklyWeightChange(t *testing.T) {
	weights := []*models.WeightEntry{weighIn(80, jan(1, 7)), weighIn(79, jan(15, 7))}
	assert.Equal(t, -0.5, AverageWeeklyWeightChange(weights))

	assert.Equal(t, 0.0, AverageWeeklyWeightChange(weights[:1]))
	same := []*models.WeightEntry{weighIn(80, jan(1, 7)), weighIn(81, jan(1, 7))}
	assert.Equal(t, 0.0, AverageWeeklyWeightChange(same))
}
