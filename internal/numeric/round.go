// ABOUTME: Rounding helpers shared by the energy, plan, and stats packages.
// ABOUTME: Halves round toward positive infinity so displayed values stay stable.
package numeric

import "math"

// Round rounds x to the nearest integer, with halves rounded up (2.5 -> 3, -2.5 -> -2).
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTo rounds x to the given number of decimal places using the same half-up rule.
func RoundTo(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(x*scale+0.5) / scale
}
