// ABOUTME: Meal CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/nutrition/internal/models"
)

// CreateMeal stores a new meal in the KV store.
func (c *Client) CreateMeal(m *models.Meal) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	return c.set(MealPrefix+m.ID.String(), data)
}

// GetMeal retrieves a meal by ID or ID prefix.
func (c *Client) GetMeal(idOrPrefix string) (*models.Meal, error) {
	data, err := c.getByIDPrefix(MealPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}

	m, err := unmarshalJSON[models.Meal](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal meal: %w", err)
	}
	return m, nil
}

// ListMeals retrieves meals with optional filtering by type.
// Results are sorted by EatenAt descending (most recent first).
func (c *Client) ListMeals(mealType *models.MealType, limit int) ([]*models.Meal, error) {
	allData, err := c.listByPrefix(MealPrefix)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	var meals []*models.Meal
	for _, data := range allData {
		m, err := unmarshalJSON[models.Meal](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if mealType != nil && m.MealType != *mealType {
			continue
		}
		meals = append(meals, m)
	}

	sort.Slice(meals, func(i, j int) bool {
		return meals[i].EatenAt.After(meals[j].EatenAt)
	})

	if limit > 0 && len(meals) > limit {
		meals = meals[:limit]
	}
	return meals, nil
}

// DeleteMeal removes a meal by ID or prefix.
func (c *Client) DeleteMeal(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(MealPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}
