// ABOUTME: Repository interface for the nutrition log store.
// ABOUTME: Defines the contract for meals, weight entries, and the profile.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/nutrition/internal/models"
)

// ErrNotFound is wrapped by lookups that match no record.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is wrapped by creates whose record ID is already stored.
var ErrDuplicateID = errors.New("duplicate id")

// ErrAmbiguousPrefix is wrapped by lookups whose ID prefix matches several records.
var ErrAmbiguousPrefix = errors.New("ambiguous prefix")

// Repository defines the storage interface for nutrition data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Meal operations
	CreateMeal(m *models.Meal) error
	GetMeal(idOrPrefix string) (*models.Meal, error)
	ListMeals(mealType *models.MealType, limit int) ([]*models.Meal, error)
	DeleteMeal(idOrPrefix string) error

	// Weight operations
	CreateWeight(w *models.WeightEntry) error
	GetWeight(idOrPrefix string) (*models.WeightEntry, error)
	ListWeights(limit int) ([]*models.WeightEntry, error)
	DeleteWeight(idOrPrefix string) error
	GetLatestWeight() (*models.WeightEntry, error)

	// Profile operations. GetProfile returns nil, nil when no profile is stored.
	GetProfile() (*models.Profile, error)
	SaveProfile(p *models.Profile) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// IsFullUUID reports whether s has the shape of a complete UUID.
func IsFullUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

// NotFoundError returns the error for an ID or prefix with no match.
func NotFoundError(idOrPrefix string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

// AmbiguousError returns the error for a prefix with several matches.
func AmbiguousError(idOrPrefix string) error {
	return fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idOrPrefix)
}

// ResolveID picks the single ID in candidates that equals or starts with idOrPrefix.
func ResolveID(idOrPrefix string, candidates []string) (string, error) {
	full := IsFullUUID(idOrPrefix)
	var matches []string
	for _, id := range candidates {
		if id == idOrPrefix {
			return id, nil
		}
		if !full && strings.HasPrefix(id, idOrPrefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", NotFoundError(idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", AmbiguousError(idOrPrefix)
	}
}
