// ABOUTME: Tests for the pure report functions and the store-backed Service.
// ABOUTME: Uses an in-memory store and a fixed clock.
package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/stats"
)

type memStore struct {
	profile *models.Profile
	meals   []*models.Meal
	weights []*models.WeightEntry
	err     error
	reads   int
}

func (m *memStore) ListMeals(_ *models.MealType, _ int) ([]*models.Meal, error) {
	m.reads++
	return m.meals, m.err
}

func (m *memStore) ListWeights(_ int) ([]*models.WeightEntry, error) {
	return m.weights, m.err
}

func (m *memStore) GetProfile() (*models.Profile, error) {
	return m.profile, nil
}

func jan(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.Local)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func completeProfile() *models.Profile {
	return &models.Profile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           30,
		Sex:           models.SexMale,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalLoseWeight,
	}
}

func lunch(calories float64, t time.Time) *models.Meal {
	return models.NewMeal("lunch", models.MealLunch, calories).WithMacros(50, 50, 0).WithEatenAt(t)
}

func TestPureFunctions(t *testing.T) {
	log := &eventlog.Log{Meals: []*models.Meal{
		lunch(2000, jan(1, 12)),
		lunch(2060, jan(2, 12)),
		lunch(1900, jan(3, 12)),
		lunch(1800, jan(10, 12)),
		lunch(1800, jan(11, 12)),
	}}

	assert.Equal(t, 3, CurrentStreak(log, jan(3, 20)))
	assert.Equal(t, 0, CurrentStreak(log, jan(4, 20)))
	assert.Equal(t, 3, LongestStreak(log))

	p := PeriodStats(log, jan(1, 0), eventlog.EndOfDay(jan(3, 0)))
	assert.Equal(t, 3, p.DaysTracked)
	assert.Equal(t, 1987, p.AvgCalories)

	assert.Equal(t, stats.MacroShare{ProteinPct: 50, CarbsPct: 50}, MacroDistribution(50, 50, 0))
	assert.Equal(t, stats.MealTypeCounts{Lunch: 2}, MealTypeDistribution(log, 7, jan(11, 20)))
}

func TestEmptyLogIsIdempotent(t *testing.T) {
	empty := &eventlog.Log{}
	assert.Equal(t, 0, CurrentStreak(empty, jan(1, 0)))
	assert.Equal(t, 0, CurrentStreak(nil, jan(1, 0)))
	assert.Equal(t, stats.PeriodStats{}, PeriodStats(empty, jan(1, 0), jan(31, 0)))
	assert.Equal(t, stats.Trend{Direction: stats.Stable}, CalorieTrend(empty, 7, jan(10, 0)))
}

func TestUserGoals(t *testing.T) {
	g, ok := UserGoals(completeProfile())
	require.True(t, ok)
	assert.Equal(t, 1780, g.BMR)
	assert.Equal(t, 2259, g.TargetCalories)

	_, ok = UserGoals(&models.Profile{WeightKg: 80})
	assert.False(t, ok)
}

func TestServiceGoals(t *testing.T) {
	svc := NewService(&memStore{profile: completeProfile()})
	r, err := svc.Goals()
	require.NoError(t, err)
	assert.True(t, r.Complete)
	require.NotNil(t, r.Goals)
	assert.Equal(t, 2759, r.Goals.TDEE)

	svc = NewService(&memStore{})
	r, err = svc.Goals()
	require.NoError(t, err)
	assert.False(t, r.Complete)
	assert.Nil(t, r.Goals)
}

func TestServicePlans(t *testing.T) {
	store := &memStore{
		profile: completeProfile().WithTargetWeight(70),
		weights: []*models.WeightEntry{
			models.NewWeightEntry(82).WithRecordedAt(jan(1, 7)),
			models.NewWeightEntry(81).WithRecordedAt(jan(8, 7)),
		},
	}
	svc := NewService(store, WithClock(fixedClock(jan(10, 9))))

	proj, err := svc.Plans(nil)
	require.NoError(t, err)
	assert.Equal(t, 81.0, proj.CurrentWeightKg)
	assert.Equal(t, 70.0, proj.TargetWeightKg)
	assert.True(t, proj.IsLosing)
	assert.Equal(t, jan(10, 9).AddDate(0, 0, 90), proj.Plans[0].ProjectedEndDate)

	target := 85.0
	proj, err = svc.Plans(&target)
	require.NoError(t, err)
	assert.False(t, proj.IsLosing)

	store.profile.TargetWeightKg = nil
	_, err = svc.Plans(nil)
	assert.ErrorIs(t, err, ErrNoTargetWeight)

	svc = NewService(&memStore{profile: &models.Profile{WeightKg: 80}})
	_, err = svc.Plans(&target)
	assert.ErrorIs(t, err, energy.ErrIncompleteProfile)
}

func TestServiceStreak(t *testing.T) {
	store := &memStore{meals: []*models.Meal{
		lunch(500, jan(5, 12)),
		lunch(500, jan(6, 12)),
		lunch(500, jan(7, 12)),
	}}
	svc := NewService(store, WithClock(fixedClock(jan(7, 21))))

	r, err := svc.Streak()
	require.NoError(t, err)
	assert.Equal(t, 3, r.Current)
	assert.Equal(t, 3, r.Longest)
	assert.True(t, r.HasToday)
	require.NotNil(t, r.Milestone)
	assert.Equal(t, 3, r.Milestone.Days)
	require.NotNil(t, r.Next)
	assert.Equal(t, 7, r.Next.Days)
}

func TestServiceRereadsStore(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, WithClock(fixedClock(jan(7, 21))))

	r, err := svc.Week()
	require.NoError(t, err)
	assert.Equal(t, 0, r.DaysTracked)

	store.meals = append(store.meals, lunch(700, jan(7, 12)))
	r, err = svc.Week()
	require.NoError(t, err)
	assert.Equal(t, 1, r.DaysTracked)
	assert.Equal(t, 2, store.reads)
}

func TestServiceStoreError(t *testing.T) {
	boom := errors.New("store offline")
	svc := NewService(&memStore{err: boom})

	_, err := svc.Streak()
	assert.ErrorIs(t, err, boom)
	_, err = svc.Trend(7)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Dashboard(7)
	assert.ErrorIs(t, err, boom)
}

func TestServiceDay(t *testing.T) {
	store := &memStore{
		profile: completeProfile(),
		meals: []*models.Meal{
			lunch(600, jan(7, 12)),
			lunch(400, jan(7, 19)),
			lunch(900, jan(6, 12)),
		},
	}
	svc := NewService(store, WithClock(fixedClock(jan(7, 21))))

	d, err := svc.Day()
	require.NoError(t, err)
	assert.Len(t, d.Meals, 2)
	assert.Equal(t, 1000.0, d.Totals.Calories)
	assert.Equal(t, 2259, d.TargetCalories)
	assert.Equal(t, 1259, d.RemainingCalories)
}

func TestServiceDashboard(t *testing.T) {
	store := &memStore{
		profile: completeProfile(),
		meals: []*models.Meal{
			lunch(2000, jan(5, 12)),
			lunch(2300, jan(6, 12)),
			lunch(2600, jan(7, 12)),
		},
		weights: []*models.WeightEntry{
			models.NewWeightEntry(80).WithRecordedAt(jan(1, 7)),
			models.NewWeightEntry(79).WithRecordedAt(jan(8, 7)),
		},
	}
	svc := NewService(store, WithClock(fixedClock(jan(7, 21))))

	d, err := svc.Dashboard(7)
	require.NoError(t, err)
	assert.True(t, d.Goals.Complete)
	assert.Equal(t, 3, d.Streak.Current)
	assert.Equal(t, 3, d.Period.DaysTracked)
	assert.Equal(t, stats.Increasing, d.Trend.Direction)
	assert.Equal(t, 3, d.MealTypes.Lunch)
	require.NotNil(t, d.BestDay)
	assert.Equal(t, 2300.0, d.BestDay.Calories)
	assert.Equal(t, 2600.0, d.WorstDay.Calories)
	assert.Equal(t, -1.0, d.Weight.WeeklyChangeKg)
	assert.Equal(t, 7, d.WindowDays)
}

func TestServiceBuckets(t *testing.T) {
	store := &memStore{meals: []*models.Meal{
		lunch(1000, jan(1, 12)),
		lunch(1000, jan(2, 12)),
		lunch(1000, jan(9, 12)),
	}}
	svc := NewService(store, WithClock(fixedClock(jan(10, 12))))

	buckets, err := svc.Buckets(30, stats.ByWeek)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, 2, buckets[0].DaysTracked)
}
