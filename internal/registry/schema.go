package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the registry tables if they don't exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if err := createSchemaVersionTable(ctx, db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createClassesTable(ctx, db); err != nil {
		return fmt.Errorf("creating classes table: %w", err)
	}

	if err := createFilesTable(ctx, db); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}

	if err := createClassFilesTable(ctx, db); err != nil {
		return fmt.Errorf("creating class_files table: %w", err)
	}

	return nil
}

// dropSchema removes every registry table, link table first.
func dropSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"class_files", "files", "classes", "schema_version"} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("dropping %s: %w", table, err)
		}
	}
	return nil
}

func createSchemaVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createClassesTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS classes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			css TEXT NOT NULL,
			replacement TEXT,
			used INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

func createFilesTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			hash TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func createClassFilesTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS class_files (
			class_id INTEGER NOT NULL REFERENCES classes(id),
			file_id INTEGER NOT NULL REFERENCES files(id),
			PRIMARY KEY (class_id, file_id)
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_class_files_file_id ON class_files(file_id)
	`)
	return err
}
