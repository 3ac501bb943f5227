// ABOUTME: Meal CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for meals.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/nutrition/internal/models"
)

const mealColumns = `id, name, calories, protein_g, carbs_g, fat_g, meal_type, eaten_at, created_at`

// CreateMeal stores a new meal in the database.
func (d *DB) CreateMeal(m *models.Meal) error {
	query := `INSERT INTO meals (` + mealColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		m.ID.String(),
		m.Name,
		m.Calories,
		m.ProteinG,
		m.CarbsG,
		m.FatG,
		string(m.MealType),
		formatTime(m.EatenAt),
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return insertErr("meal", err)
	}
	return nil
}

// GetMeal retrieves a meal by ID or ID prefix.
func (d *DB) GetMeal(idOrPrefix string) (*models.Meal, error) {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)
	m, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError(idOrPrefix)
		}
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return m, nil
}

// ListMeals retrieves meals with optional filtering by type.
// Results are sorted by EatenAt descending (most recent first).
func (d *DB) ListMeals(mealType *models.MealType, limit int) ([]*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals`
	var args []interface{}

	if mealType != nil {
		query += ` WHERE meal_type = ?`
		args = append(args, string(*mealType))
	}
	query += ` ORDER BY eaten_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// DeleteMeal removes a meal by ID or prefix.
func (d *DB) DeleteMeal(idOrPrefix string) error {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete meal: %w", NotFoundError(idOrPrefix))
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (*models.Meal, error) {
	var m models.Meal
	var idStr, mealType, eatenAt, createdAt string

	err := row.Scan(&idStr, &m.Name, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG, &mealType, &eatenAt, &createdAt)
	if err != nil {
		return nil, err
	}

	m.ID, _ = uuid.Parse(idStr)
	m.MealType = models.MealType(mealType)
	m.EatenAt = parseTime(eatenAt)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}
