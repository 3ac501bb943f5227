// ABOUTME: WeightEntry model for body-weight samples.
// ABOUTME: Same append/delete-only lifecycle as meals.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightEntry represents a single body-weight measurement in kilograms.
type WeightEntry struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	RecordedAt time.Time `json:"date" yaml:"date"`
	Notes      *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// NewWeightEntry creates a new WeightEntry with generated UUID and current timestamp.
func NewWeightEntry(weightKg float64) *WeightEntry {
	now := time.Now()
	return &WeightEntry{
		ID:         uuid.New(),
		WeightKg:   weightKg,
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp.
func (w *WeightEntry) WithRecordedAt(t time.Time) *WeightEntry {
	w.RecordedAt = t
	return w
}

// WithNotes sets notes on the entry.
func (w *WeightEntry) WithNotes(notes string) *WeightEntry {
	w.Notes = &notes
	return w
}
