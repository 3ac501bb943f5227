// ABOUTME: Meal model and MealType enum for the nutrition log.
// ABOUTME: Meals are immutable once created; edits are delete + recreate.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType is the declared slot a meal was eaten in.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns all valid meal types in day order.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// IsValidMealType checks if a string is a valid meal type.
func IsValidMealType(s string) bool {
	for _, mt := range AllMealTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Meal represents a single logged meal.
type Meal struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Calories  float64   `json:"calories" yaml:"calories"`
	ProteinG  float64   `json:"protein_g" yaml:"protein_g"`
	CarbsG    float64   `json:"carbs_g" yaml:"carbs_g"`
	FatG      float64   `json:"fat_g" yaml:"fat_g"`
	MealType  MealType  `json:"meal_type" yaml:"meal_type"`
	EatenAt   time.Time `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewMeal creates a new Meal with generated UUID and current timestamp.
func NewMeal(name string, mealType MealType, calories float64) *Meal {
	now := time.Now()
	return &Meal{
		ID:        uuid.New(),
		Name:      name,
		Calories:  calories,
		MealType:  mealType,
		EatenAt:   now,
		CreatedAt: now,
	}
}

// WithMacros sets protein, carbs and fat in grams.
func (m *Meal) WithMacros(proteinG, carbsG, fatG float64) *Meal {
	m.ProteinG = proteinG
	m.CarbsG = carbsG
	m.FatG = fatG
	return m
}

// WithEatenAt sets a custom eaten_at timestamp.
func (m *Meal) WithEatenAt(t time.Time) *Meal {
	m.EatenAt = t
	return m
}
