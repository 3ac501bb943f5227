// ABOUTME: Plausibility checks applied by input layers before writing records.
// ABOUTME: The analytics packages never call these; they trust their inputs.
package models

import (
	"fmt"
	"math"
)

// Plausible ranges for user-entered body measurements.
const (
	MinWeightKg = 30
	MaxWeightKg = 300
	MinHeightCm = 50
	MaxHeightCm = 272
	MaxAge      = 130
)

// finite reports whether v is neither NaN nor an infinity.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateWeight rejects weights outside the plausible human range.
func ValidateWeight(kg float64) error {
	if !finite(kg) || kg < MinWeightKg || kg > MaxWeightKg {
		return fmt.Errorf("weight must be between %d and %d kg, got %.1f", MinWeightKg, MaxWeightKg, kg)
	}
	return nil
}

// ValidateMeal checks the name, meal type, and that no nutrition value is negative.
func ValidateMeal(m *Meal) error {
	if m.Name == "" {
		return fmt.Errorf("meal name is required")
	}
	if !IsValidMealType(string(m.MealType)) {
		return fmt.Errorf("unknown meal type: %s", m.MealType)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"calories", m.Calories},
		{"protein", m.ProteinG},
		{"carbs", m.CarbsG},
		{"fat", m.FatG},
	}
	for _, f := range fields {
		if !finite(f.value) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0", f.name)
		}
	}
	return nil
}

// ValidateProfile checks every field that is set. Unset fields are allowed;
// an incomplete profile is a normal state, not an input error.
func ValidateProfile(p *Profile) error {
	if p.WeightKg != 0 {
		if err := ValidateWeight(p.WeightKg); err != nil {
			return err
		}
	}
	if p.HeightCm != 0 && (!finite(p.HeightCm) || p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm) {
		return fmt.Errorf("height must be between %d and %d cm, got %.1f", MinHeightCm, MaxHeightCm, p.HeightCm)
	}
	if p.Age < 0 || p.Age > MaxAge {
		return fmt.Errorf("age must be between 1 and %d, got %d", MaxAge, p.Age)
	}
	if p.Sex != "" && !IsValidSex(string(p.Sex)) {
		return fmt.Errorf("unknown sex: %s", p.Sex)
	}
	if p.ActivityLevel != "" && !IsValidActivityLevel(string(p.ActivityLevel)) {
		return fmt.Errorf("unknown activity level: %s", p.ActivityLevel)
	}
	if p.Goal != "" && !IsValidGoal(string(p.Goal)) {
		return fmt.Errorf("unknown goal: %s", p.Goal)
	}
	if p.TargetWeightKg != nil {
		if err := ValidateWeight(*p.TargetWeightKg); err != nil {
			return fmt.Errorf("target %w", err)
		}
	}
	return nil
}
