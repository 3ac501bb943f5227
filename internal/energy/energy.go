// ABOUTME: Energy calculator: BMR, TDEE, goal-adjusted calories, and macro split.
// ABOUTME: Pure functions over profile values; rounding order matches displayed goals.
package energy

import (
	"errors"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
)

// Energy density of each macronutrient in kcal per gram.
const (
	ProteinKcalPerGram = 4
	CarbsKcalPerGram   = 4
	FatKcalPerGram     = 9
)

// ErrIncompleteProfile is returned by adapters that must report why no goals exist.
var ErrIncompleteProfile = errors.New("incomplete profile: weight, height, age and sex are required")

// ActivityMultipliers maps each activity tier to its TDEE multiplier.
var ActivityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// goalCalorieDelta is the fixed daily surplus or deficit per goal.
var goalCalorieDelta = map[models.Goal]int{
	models.GoalLoseWeight: -500,
	models.GoalMaintain:   0,
	models.GoalGainWeight: 300,
	models.GoalGainMuscle: 500,
}

// MacroRatios is the share of calories assigned to each macronutrient.
type MacroRatios struct {
	Protein float64
	Fat     float64
	Carbs   float64
}

// GoalMacroRatios holds the protein/fat/carbs split for each goal.
var GoalMacroRatios = map[models.Goal]MacroRatios{
	models.GoalLoseWeight: {Protein: 0.35, Fat: 0.25, Carbs: 0.40},
	models.GoalGainMuscle: {Protein: 0.40, Fat: 0.25, Carbs: 0.35},
	models.GoalGainWeight: {Protein: 0.25, Fat: 0.25, Carbs: 0.50},
	models.GoalMaintain:   {Protein: 0.30, Fat: 0.30, Carbs: 0.40},
}

// Macros is a daily macronutrient target in grams.
type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// Goals is the full set of derived daily targets.
type Goals struct {
	BMR            int `json:"bmr"`
	TDEE           int `json:"tdee"`
	TargetCalories int `json:"target_calories"`
	ProteinG       int `json:"protein_g"`
	CarbsG         int `json:"carbs_g"`
	FatG           int `json:"fat_g"`
}

// Macros returns the gram targets of g.
func (g Goals) Macros() Macros {
	return Macros{ProteinG: g.ProteinG, CarbsG: g.CarbsG, FatG: g.FatG}
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Female and other use the -161 constant; male uses +5.
func BMR(weightKg, heightCm float64, age int, sex models.Sex) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == models.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return numeric.Round(bmr)
}

// TDEE scales bmr by the activity multiplier. Unknown levels use moderate.
func TDEE(bmr int, level models.ActivityLevel) int {
	mult, ok := ActivityMultipliers[level]
	if !ok {
		mult = ActivityMultipliers[models.ActivityModerate]
	}
	return numeric.Round(float64(bmr) * mult)
}

// TargetCalories applies the goal's fixed daily delta to tdee.
func TargetCalories(tdee int, goal models.Goal) int {
	return tdee + goalCalorieDelta[goal]
}

// MacroSplit converts a calorie target into gram targets using the goal's ratios.
// Each gram value is rounded on its own, so the kcal sum may drift from the target.
func MacroSplit(targetCalories int, goal models.Goal) Macros {
	r, ok := GoalMacroRatios[goal]
	if !ok {
		r = GoalMacroRatios[models.GoalMaintain]
	}
	cal := float64(targetCalories)
	return Macros{
		ProteinG: numeric.Round(cal * r.Protein / ProteinKcalPerGram),
		CarbsG:   numeric.Round(cal * r.Carbs / CarbsKcalPerGram),
		FatG:     numeric.Round(cal * r.Fat / FatKcalPerGram),
	}
}

// MacroKcal returns the energy content of the given gram amounts.
func MacroKcal(proteinG, carbsG, fatG float64) float64 {
	return proteinG*ProteinKcalPerGram + carbsG*CarbsKcalPerGram + fatG*FatKcalPerGram
}

// ComputeGoals derives all targets from a profile. It returns false when the
// profile is missing weight, height, age or sex. Activity level and goal
// default to moderate and maintain.
func ComputeGoals(p *models.Profile) (Goals, bool) {
	if !p.IsComplete() {
		return Goals{}, false
	}

	level := p.ActivityLevel
	if level == "" {
		level = models.ActivityModerate
	}
	goal := p.Goal
	if goal == "" {
		goal = models.GoalMaintain
	}

	bmr := BMR(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	tdee := TDEE(bmr, level)
	target := TargetCalories(tdee, goal)
	macros := MacroSplit(target, goal)

	return Goals{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		ProteinG:       macros.ProteinG,
		CarbsG:         macros.CarbsG,
		FatG:           macros.FatG,
	}, true
}

// WeeklyWeightChange is the expected kg change per week implied by each goal's
// fixed calorie delta. Losing is negative.
func WeeklyWeightChange(goal models.Goal) float64 {
	switch goal {
	case models.GoalLoseWeight:
		return -0.5
	case models.GoalGainWeight:
		return 0.3
	case models.GoalGainMuscle:
		return 0.5
	default:
		return 0
	}
}
