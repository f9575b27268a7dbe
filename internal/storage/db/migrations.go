package db

import "fmt"

const currentVersion = 1

func (d *DB) migrate() error {
	// Create migrations table if it doesn't exist
	if _, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	// Get current version
	var version int
	err := d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	// Apply migrations
	migrations := []func(*DB) error{
		migrateV1,
	}

	for i := version; i < currentVersion; i++ {
		if err := migrations[i](d); err != nil {
			return fmt.Errorf("migration v%d: %w", i+1, err)
		}
		if _, err := d.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			return fmt.Errorf("recording migration v%d: %w", i+1, err)
		}
	}

	return nil
}

func migrateV1(d *DB) error {
	_, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS touched_files (
			mod_dir TEXT NOT NULL,
			relative_path TEXT NOT NULL,
			kind TEXT NOT NULL,
			touched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (mod_dir, relative_path)
		)
	`)
	return err
}
