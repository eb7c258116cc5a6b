package db

import (
	"fmt"
	"log/slog"
)

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}
	return nil
}

// runUpdatedAtMigration upgrades databases created before contacts tracked
// their last modification time
func (db *DB) runUpdatedAtMigration() error {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('contacts')
		WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	if count > 0 {
		return nil
	}

	slog.Info("running migration", "migration", "updated_at")

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// SQLite refuses non-constant defaults on ADD COLUMN, so backfill instead
	if _, err := tx.Exec(`ALTER TABLE contacts ADD COLUMN updated_at DATETIME`); err != nil {
		return fmt.Errorf("adding updated_at column: %w", err)
	}
	if _, err := tx.Exec(`UPDATE contacts SET updated_at = COALESCE(created_at, CURRENT_TIMESTAMP)`); err != nil {
		return fmt.Errorf("backfilling updated_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	slog.Info("migration completed", "migration", "updated_at")
	return nil
}
