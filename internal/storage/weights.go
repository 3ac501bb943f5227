// ABOUTME: Weight entry CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for weight entries.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/nutrition/internal/models"
)

const weightColumns = `id, weight_kg, recorded_at, notes, created_at`

// CreateWeight stores a new weight entry in the database.
func (d *DB) CreateWeight(w *models.WeightEntry) error {
	query := `INSERT INTO weights (` + weightColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		w.ID.String(),
		w.WeightKg,
		formatTime(w.RecordedAt),
		w.Notes,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return insertErr("weight", err)
	}
	return nil
}

// GetWeight retrieves a weight entry by ID or ID prefix.
func (d *DB) GetWeight(idOrPrefix string) (*models.WeightEntry, error) {
	id, err := d.resolveID("weights", idOrPrefix)
	if err != nil {
		return nil, err
	}

	w, err := scanWeight(d.db.QueryRow(`SELECT `+weightColumns+` FROM weights WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError(idOrPrefix)
		}
		return nil, fmt.Errorf("get weight: %w", err)
	}
	return w, nil
}

// ListWeights retrieves weight entries sorted by RecordedAt descending.
func (d *DB) ListWeights(limit int) ([]*models.WeightEntry, error) {
	query := `SELECT ` + weightColumns + ` FROM weights ORDER BY recorded_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	defer rows.Close()

	var weights []*models.WeightEntry
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}

// DeleteWeight removes a weight entry by ID or prefix.
func (d *DB) DeleteWeight(idOrPrefix string) error {
	id, err := d.resolveID("weights", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM weights WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete weight: %w", NotFoundError(idOrPrefix))
	}
	return nil
}

// GetLatestWeight returns the most recently recorded weight entry.
func (d *DB) GetLatestWeight() (*models.WeightEntry, error) {
	weights, err := d.ListWeights(1)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weight entries", ErrNotFound)
	}
	return weights[0], nil
}

func scanWeight(row rowScanner) (*models.WeightEntry, error) {
	var w models.WeightEntry
	var idStr, recordedAt, createdAt string
	var notes sql.NullString

	if err := row.Scan(&idStr, &w.WeightKg, &recordedAt, &notes, &createdAt); err != nil {
		return nil, err
	}

	w.ID, _ = uuid.Parse(idStr)
	w.RecordedAt = parseTime(recordedAt)
	w.CreatedAt = parseTime(createdAt)
	if notes.Valid {
		w.Notes = &notes.String
	}
	return &w, nil
}
