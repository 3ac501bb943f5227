// ABOUTME: Profile persistence for SQLite storage.
// ABOUTME: The profile is a single row replaced wholesale on save.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/nutrition/internal/models"
)

// GetProfile returns the stored profile, or nil if none has been saved.
func (d *DB) GetProfile() (*models.Profile, error) {
	row := d.db.QueryRow(`
		SELECT weight_kg, height_cm, age, sex, activity_level, goal, target_weight_kg, updated_at
		FROM profile WHERE id = 1
	`)

	var p models.Profile
	var sex, level, goal, updatedAt string
	var target sql.NullFloat64
	err := row.Scan(&p.WeightKg, &p.HeightCm, &p.Age, &sex, &level, &goal, &target, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Sex = models.Sex(sex)
	p.ActivityLevel = models.ActivityLevel(level)
	p.Goal = models.Goal(goal)
	p.UpdatedAt = parseTime(updatedAt)
	if target.Valid {
		v := target.Float64
		p.TargetWeightKg = &v
	}
	return &p, nil
}

// SaveProfile replaces the stored profile.
func (d *DB) SaveProfile(p *models.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO profile
			(id, weight_kg, height_cm, age, sex, activity_level, goal, target_weight_kg, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.WeightKg,
		p.HeightCm,
		p.Age,
		string(p.Sex),
		string(p.ActivityLevel),
		string(p.Goal),
		p.TargetWeightKg,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
