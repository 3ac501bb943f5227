// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for meals, weights, and the single-row profile.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		calories REAL NOT NULL,
		protein_g REAL NOT NULL DEFAULT 0,
		carbs_g REAL NOT NULL DEFAULT 0,
		fat_g REAL NOT NULL DEFAULT 0,
		meal_type TEXT NOT NULL,
		eaten_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS weights (
		id TEXT PRIMARY KEY,
		weight_kg REAL NOT NULL,
		recorded_at TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		weight_kg REAL NOT NULL DEFAULT 0,
		height_cm REAL NOT NULL DEFAULT 0,
		age INTEGER NOT NULL DEFAULT 0,
		sex TEXT NOT NULL DEFAULT '',
		activity_level TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		target_weight_kg REAL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_meals_eaten ON meals(eaten_at DESC);
	CREATE INDEX IF NOT EXISTS idx_meals_type_eaten ON meals(meal_type, eaten_at DESC);
	CREATE INDEX IF NOT EXISTS idx_weights_recorded ON weights(recorded_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
