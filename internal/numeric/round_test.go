// ABOUTME: Tests for half-up rounding helpers.
// ABOUTME: Pins behaviour at .5 boundaries for positive and negative values.
package numeric

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{-1.4, -1},
		{-2.5, -2},
		{-2.6, -3},
		{1780.0000001, 1780},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{0.4166666, 2, 0.42},
		{1.25, 1, 1.3},
		{-3.14159, 1, -3.1},
		{7, 2, 7},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.in, tt.places); got != tt.want {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}
