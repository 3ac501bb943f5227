// ABOUTME: Weight change statistics over the recorded weight history.
// ABOUTME: Reports start and current weight, total change, percentage and weekly rate.
package stats

import (
	"time"

	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
)

// WeightTrendBand is the kg change that must be exceeded before a trend is reported.
const WeightTrendBand = 0.5

const week = 7 * 24 * time.Hour

// WeightStats compares the first and latest weight entries.
type WeightStats struct {
	StartKg       *float64  `json:"start_weight_kg"`
	CurrentKg     *float64  `json:"current_weight_kg"`
	TotalChangeKg float64   `json:"total_change_kg"`
	ChangePct     float64   `json:"change_percentage"`
	Trend         Direction `json:"trend"`
	Entries       int       `json:"entries"`
}

// WeightChange compares the earliest and latest entries. Change and percentage
// are rounded to one decimal place; the trend uses the unrounded change.
func WeightChange(weights []*models.WeightEntry) WeightStats {
	sorted := eventlog.SortedWeights(weights)
	if len(sorted) == 0 {
		return WeightStats{Trend: Stable}
	}
	start := sorted[0].WeightKg
	current := sorted[len(sorted)-1].WeightKg
	change := current - start

	var pct float64
	if start != 0 {
		pct = change / start * 100
	}
	return WeightStats{
		StartKg:       &start,
		CurrentKg:     &current,
		TotalChangeKg: numeric.RoundTo(change, 1),
		ChangePct:     numeric.RoundTo(pct, 1),
		Trend:         classify(change, WeightTrendBand),
		Entries:       len(sorted),
	}
}

// AverageWeeklyWeightChange is the kg per week between the earliest and latest
// entries, rounded to two decimal places.
func AverageWeeklyWeightChange(weights []*models.WeightEntry) float64 {
	sorted := eventlog.SortedWeights(weights)
	if len(sorted) < 2 {
		return 0
	}
	first, last := sorted[0], sorted[len(sorted)-1]
	weeks := float64(last.RecordedAt.Sub(first.RecordedAt)) / float64(week)
	if weeks == 0 {
		return 0
	}
	return numeric.RoundTo((last.WeightKg-first.WeightKg)/weeks, 2)
}
