// ABOUTME: Data migration between nutrition storage backends.
// ABOUTME: Copies the profile, meals, and weight entries from source to destination.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Profile bool
	Meals   int
	Weights int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	profile, err := src.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("get source profile: %w", err)
	}
	if profile != nil {
		if err := dst.SaveProfile(profile); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
		summary.Profile = true
	}

	meals, err := src.ListMeals(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source meals: %w", err)
	}
	for _, m := range meals {
		if err := dst.CreateMeal(m); err != nil {
			return nil, fmt.Errorf("create meal %s: %w", m.ID, err)
		}
		summary.Meals++
	}

	weights, err := src.ListWeights(0)
	if err != nil {
		return nil, fmt.Errorf("list source weights: %w", err)
	}
	for _, w := range weights {
		if err := dst.CreateWeight(w); err != nil {
			return nil, fmt.Errorf("create weight %s: %w", w.ID, err)
		}
		summary.Weights++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
