// ABOUTME: Weight plan projector: per-horizon calorie targets with feasibility labels.
// ABOUTME: Uses the 7700 kcal per kg heuristic and the energy package's macro split.
package plan

import (
	"math"
	"time"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
)

const (
	// KcalPerKg approximates the energy stored in one kilogram of adipose tissue.
	KcalPerKg = 7700
	// WeeksPerMonth is the month length used to turn horizons into weeks.
	WeeksPerMonth = 4
	// DaysPerMonth is the month length used for projected end dates.
	DaysPerMonth = 30

	// HealthyMinKgPerWeek and HealthyMaxKgPerWeek bound the healthy rate, inclusive.
	HealthyMinKgPerWeek = 0.25
	HealthyMaxKgPerWeek = 1.0

	// fallbackIndex picks the 9-month plan when no horizon is healthy.
	fallbackIndex = 2
)

// DefaultHorizons are the plan lengths in months.
var DefaultHorizons = []int{3, 6, 9, 12}

// Feasibility labels a plan's weekly rate.
type Feasibility string

const (
	Healthy Feasibility = "healthy"
	TooFast Feasibility = "too_fast"
	TooSlow Feasibility = "too_slow"
)

// Classify returns the label for a weekly change in kg. Exactly one label applies.
func Classify(weeklyChangeKg float64) Feasibility {
	switch {
	case weeklyChangeKg > HealthyMaxKgPerWeek:
		return TooFast
	case weeklyChangeKg < HealthyMinKgPerWeek:
		return TooSlow
	default:
		return Healthy
	}
}

// WeightPlan is one horizon's projection. It is never persisted.
type WeightPlan struct {
	HorizonMonths      int           `json:"horizon_months"`
	Weeks              int           `json:"weeks"`
	WeeklyChangeKg     float64       `json:"weekly_change_kg"`
	DailyCalories      int           `json:"daily_calories"`
	CalorieDeltaPerDay int           `json:"calorie_delta_per_day"`
	Macros             energy.Macros `json:"macros"`
	Feasibility        Feasibility   `json:"feasibility"`
	ProjectedEndDate   time.Time     `json:"projected_end_date"`
}

// IsHealthy reports whether the plan's rate is within the healthy band.
func (p WeightPlan) IsHealthy() bool { return p.Feasibility == Healthy }

// IsTooFast reports whether the plan's rate exceeds the healthy band.
func (p WeightPlan) IsTooFast() bool { return p.Feasibility == TooFast }

// IsTooSlow reports whether the plan's rate is below the healthy band.
func (p WeightPlan) IsTooSlow() bool { return p.Feasibility == TooSlow }

// Projection is the full plan set for one current/target pair.
type Projection struct {
	CurrentWeightKg float64      `json:"current_weight_kg"`
	TargetWeightKg  float64      `json:"target_weight_kg"`
	WeightDiffKg    float64      `json:"weight_diff_kg"`
	IsLosing        bool         `json:"is_losing"`
	Plans           []WeightPlan `json:"plans"`
	Recommended     WeightPlan   `json:"recommended"`
}

// Projector builds plans for a configurable set of horizons.
type Projector struct {
	Horizons []int
}

// NewProjector returns a projector over DefaultHorizons.
func NewProjector() *Projector {
	return &Projector{Horizons: DefaultHorizons}
}

// Project builds one plan per horizon with the default horizons.
func Project(currentKg, targetKg float64, tdee int, sex models.Sex, today time.Time) Projection {
	return NewProjector().Project(currentKg, targetKg, tdee, sex, today)
}

// Project builds one plan per horizon. current == target is not special-cased:
// every plan then has a zero weekly change and is labelled too slow.
// sex does not change the projection.
func (pr *Projector) Project(currentKg, targetKg float64, tdee int, sex models.Sex, today time.Time) Projection {
	diff := targetKg - currentKg
	losing := diff < 0
	absDiff := math.Abs(diff)

	goal := models.GoalGainWeight
	if losing {
		goal = models.GoalLoseWeight
	}

	plans := make([]WeightPlan, 0, len(pr.Horizons))
	for _, months := range pr.Horizons {
		weeks := months * WeeksPerMonth

		var weekly float64
		if weeks > 0 {
			weekly = absDiff / float64(weeks)
		}
		dailyChange := weekly * KcalPerKg / 7

		var target int
		if losing {
			target = numeric.Round(float64(tdee) - dailyChange)
		} else {
			target = numeric.Round(float64(tdee) + dailyChange)
		}

		plans = append(plans, WeightPlan{
			HorizonMonths:      months,
			Weeks:              weeks,
			WeeklyChangeKg:     weekly,
			DailyCalories:      target,
			CalorieDeltaPerDay: numeric.Round(dailyChange),
			Macros:             energy.MacroSplit(target, goal),
			Feasibility:        Classify(weekly),
			ProjectedEndDate:   today.AddDate(0, 0, months*DaysPerMonth),
		})
	}

	return Projection{
		CurrentWeightKg: currentKg,
		TargetWeightKg:  targetKg,
		WeightDiffKg:    diff,
		IsLosing:        losing,
		Plans:           plans,
		Recommended:     recommend(plans),
	}
}

// recommend returns the first healthy plan, else the plan at fallbackIndex.
// Horizon sets shorter than fallbackIndex+1 fall back to their last plan.
func recommend(plans []WeightPlan) WeightPlan {
	for _, p := range plans {
		if p.IsHealthy() {
			return p
		}
	}
	if len(plans) == 0 {
		return WeightPlan{}
	}
	if len(plans) > fallbackIndex {
		return plans[fallbackIndex]
	}
	return plans[len(plans)-1]
}

// WeeksToGoal estimates how many weeks the goal's fixed calorie delta needs to
// close the gap between current and target. Maintain returns 0.
func WeeksToGoal(currentKg, targetKg float64, goal models.Goal) int {
	weekly := math.Abs(energy.WeeklyWeightChange(goal))
	if weekly == 0 {
		return 0
	}
	return int(math.Ceil(math.Abs(targetKg-currentKg) / weekly))
}

// SimpleEstimateMonths estimates months to target at 0.5 kg per week.
func SimpleEstimateMonths(currentKg, targetKg float64) int {
	diff := math.Abs(targetKg - currentKg)
	if diff == 0 {
		return 0
	}
	weeks := math.Ceil(diff / 0.5)
	return int(math.Ceil(weeks / WeeksPerMonth))
}
