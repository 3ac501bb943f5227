// ABOUTME: Tests for Meal and WeightEntry models.
// ABOUTME: Validates constructors, builders, and meal type checks.
package models

import (
	"testing"
	"time"
)

func TestNewMeal(t *testing.T) {
	m := NewMeal("oatmeal", MealBreakfast, 350)

	if m.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if m.Name != "oatmeal" {
		t.Errorf("Name = %s, want oatmeal", m.Name)
	}
	if m.MealType != MealBreakfast {
		t.Errorf("MealType = %s, want breakfast", m.MealType)
	}
	if m.Calories != 350 {
		t.Errorf("Calories = %f, want 350", m.Calories)
	}
	if m.EatenAt.IsZero() {
		t.Error("expected EatenAt to be set")
	}
}

func TestMealBuilders(t *testing.T) {
	at := time.Date(2024, 1, 3, 12, 30, 0, 0, time.Local)
	m := NewMeal("salad", MealLunch, 420).WithMacros(30, 25, 18).WithEatenAt(at)

	if m.ProteinG != 30 || m.CarbsG != 25 || m.FatG != 18 {
		t.Errorf("macros = %v/%v/%v, want 30/25/18", m.ProteinG, m.CarbsG, m.FatG)
	}
	if !m.EatenAt.Equal(at) {
		t.Errorf("EatenAt = %v, want %v", m.EatenAt, at)
	}
}

func TestIsValidMealType(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"breakfast", true},
		{"lunch", true},
		{"dinner", true},
		{"snack", true},
		{"brunch", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidMealType(tt.input); got != tt.want {
				t.Errorf("IsValidMealType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWeightEntry(t *testing.T) {
	w := NewWeightEntry(82.5).WithNotes("after run")

	if w.WeightKg != 82.5 {
		t.Errorf("WeightKg = %f, want 82.5", w.WeightKg)
	}
	if w.Notes == nil || *w.Notes != "after run" {
		t.Error("expected Notes to be 'after run'")
	}
	if w.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to be set")
	}
}
