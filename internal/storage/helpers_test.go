// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Opens throwaway SQLite and markdown stores under t.TempDir.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/nutrition/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nutrition.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestMarkdown(t *testing.T) *MarkdownStore {
	t.Helper()

	store, err := NewMarkdownStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create MarkdownStore: %v", err)
	}
	return store
}

// backends lists every Repository implementation under test.
func backends() []struct {
	name string
	open func(t *testing.T) Repository
} {
	return []struct {
		name string
		open func(t *testing.T) Repository
	}{
		{"sqlite", func(t *testing.T) Repository { return setupTestDB(t) }},
		{"markdown", func(t *testing.T) Repository { return setupTestMarkdown(t) }},
	}
}

func day(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 30, 0, 0, time.Local)
}

func testProfile() *models.Profile {
	return (&models.Profile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           30,
		Sex:           models.SexMale,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalLoseWeight,
	}).WithTargetWeight(72.5)
}
