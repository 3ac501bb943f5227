// ABOUTME: Tests for the energy calculator.
// ABOUTME: Covers worked examples, ordering properties, and incomplete profiles.
package energy

import (
	"math"
	"testing"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		age      int
		sex      models.Sex
		want     int
	}{
		{"male", 80, 180, 30, models.SexMale, 1780},
		{"female", 60, 165, 28, models.SexFemale, 1330},
		{"other uses female constant", 60, 165, 28, models.SexOther, 1330},
		{"rounds half up", 70, 170, 40, models.SexMale, 1568},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BMR(tt.weightKg, tt.heightCm, tt.age, tt.sex))
		})
	}
}

func TestBMRMonotonic(t *testing.T) {
	for _, sex := range models.AllSexes {
		prev := BMR(40, 170, 35, sex)
		for w := 41.0; w <= 200; w++ {
			cur := BMR(w, 170, 35, sex)
			require.Greater(t, cur, prev, "BMR should increase with weight (sex=%s, w=%v)", sex, w)
			prev = cur
		}

		prev = BMR(75, 170, 18, sex)
		for age := 19; age <= 90; age++ {
			cur := BMR(75, 170, age, sex)
			require.Less(t, cur, prev, "BMR should decrease with age (sex=%s, age=%d)", sex, age)
			prev = cur
		}
	}
}

func TestTDEE(t *testing.T) {
	assert.Equal(t, 2136, TDEE(1780, models.ActivitySedentary))
	assert.Equal(t, 2759, TDEE(1780, models.ActivityModerate))
	assert.Equal(t, 3382, TDEE(1780, models.ActivityVeryActive))
	assert.Equal(t, TDEE(1780, models.ActivityModerate), TDEE(1780, "unknown"))
}

func TestTDEEOrdering(t *testing.T) {
	for bmr := 800; bmr <= 3000; bmr += 37 {
		for i := 1; i < len(models.AllActivityLevels); i++ {
			lower := TDEE(bmr, models.AllActivityLevels[i-1])
			higher := TDEE(bmr, models.AllActivityLevels[i])
			require.Less(t, lower, higher, "bmr=%d tiers %s < %s",
				bmr, models.AllActivityLevels[i-1], models.AllActivityLevels[i])
		}
	}
}

func TestTargetCalories(t *testing.T) {
	tests := []struct {
		goal models.Goal
		want int
	}{
		{models.GoalLoseWeight, 2259},
		{models.GoalMaintain, 2759},
		{models.GoalGainWeight, 3059},
		{models.GoalGainMuscle, 3259},
		{"", 2759},
	}
	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			assert.Equal(t, tt.want, TargetCalories(2759, tt.goal))
		})
	}
}

func TestMacroSplit(t *testing.T) {
	assert.Equal(t, Macros{ProteinG: 198, CarbsG: 226, FatG: 63}, MacroSplit(2259, models.GoalLoseWeight))
	assert.Equal(t, Macros{ProteinG: 120, CarbsG: 160, FatG: 53}, MacroSplit(1596, models.GoalMaintain))
	assert.Equal(t, Macros{ProteinG: 200, CarbsG: 175, FatG: 56}, MacroSplit(2000, models.GoalGainMuscle))
	assert.Equal(t, Macros{ProteinG: 125, CarbsG: 250, FatG: 56}, MacroSplit(2000, models.GoalGainWeight))
}

func TestMacroRoundingBound(t *testing.T) {
	// Each gram value is off by at most half a gram: 2 + 2 + 4.5 kcal.
	const bound = 8.5 + 1e-9
	for _, goal := range models.AllGoals {
		for target := 1000; target <= 4500; target++ {
			m := MacroSplit(target, goal)
			kcal := MacroKcal(float64(m.ProteinG), float64(m.CarbsG), float64(m.FatG))
			diff := math.Abs(kcal - float64(target))
			require.LessOrEqual(t, diff, bound, "goal=%s target=%d macros=%+v", goal, target, m)
		}
	}
}

func TestComputeGoals(t *testing.T) {
	p := &models.Profile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           30,
		Sex:           models.SexMale,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalLoseWeight,
	}

	goals, ok := ComputeGoals(p)
	require.True(t, ok)
	assert.Equal(t, Goals{
		BMR:            1780,
		TDEE:           2759,
		TargetCalories: 2259,
		ProteinG:       198,
		CarbsG:         226,
		FatG:           63,
	}, goals)
	assert.Equal(t, Macros{ProteinG: 198, CarbsG: 226, FatG: 63}, goals.Macros())
}

func TestComputeGoalsDefaults(t *testing.T) {
	p := &models.Profile{WeightKg: 60, HeightCm: 165, Age: 28, Sex: models.SexFemale}

	goals, ok := ComputeGoals(p)
	require.True(t, ok)
	assert.Equal(t, 1330, goals.BMR)
	assert.Equal(t, TDEE(1330, models.ActivityModerate), goals.TDEE)
	assert.Equal(t, goals.TDEE, goals.TargetCalories)
}

func TestComputeGoalsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
	}{
		{"nil", nil},
		{"empty", &models.Profile{}},
		{"no weight", &models.Profile{HeightCm: 180, Age: 30, Sex: models.SexMale}},
		{"no height", &models.Profile{WeightKg: 80, Age: 30, Sex: models.SexMale}},
		{"no age", &models.Profile{WeightKg: 80, HeightCm: 180, Sex: models.SexMale}},
		{"no sex", &models.Profile{WeightKg: 80, HeightCm: 180, Age: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals, ok := ComputeGoals(tt.profile)
			assert.False(t, ok)
			assert.Equal(t, Goals{}, goals)
		})
	}
}

func TestWeeklyWeightChange(t *testing.T) {
	assert.Equal(t, -0.5, WeeklyWeightChange(models.GoalLoseWeight))
	assert.Equal(t, 0.3, WeeklyWeightChange(models.GoalGainWeight))
	assert.Equal(t, 0.5, WeeklyWeightChange(models.GoalGainMuscle))
	assert.Equal(t, 0.0, WeeklyWeightChange(models.GoalMaintain))
}
