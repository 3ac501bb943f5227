// ABOUTME: Tests for timestamp and date parsing.
// ABOUTME: Covers RFC 3339, short local formats and rejection of garbage.
package models

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-05 08:30", time.Date(2024, 3, 5, 8, 30, 0, 0, time.Local)},
		{"2024-03-05T08:30", time.Date(2024, 3, 5, 8, 30, 0, 0, time.Local)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		{"2024-03-05T08:30:00Z", time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, s := range []string{"", "yesterday", "05/03/2024"} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("ParseDate should reject an impossible date")
	}
	if _, err := ParseDate("2024-02-29 10:00"); err == nil {
		t.Error("ParseDate should reject a time component")
	}
}
