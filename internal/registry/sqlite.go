package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite registry at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection serializes writers from concurrent file workers.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// UpsertClass creates or updates a class. A nil replacement keeps the existing one.
func (s *SQLiteStore) UpsertClass(ctx context.Context, name, css string, replacement *string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classes (name, css, replacement) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			css = excluded.css,
			replacement = COALESCE(excluded.replacement, classes.replacement)
	`, name, css, nullable(replacement))
	if err != nil {
		return fmt.Errorf("upserting class %s: %w", name, err)
	}
	return nil
}

// SetMapping sets or clears the replacement of an existing class.
func (s *SQLiteStore) SetMapping(ctx context.Context, name string, replacement *string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE classes SET replacement = ? WHERE name = ?", nullable(replacement), name)
	if err != nil {
		return fmt.Errorf("setting mapping for %s: %w", name, err)
	}
	return requireAffected(res, name)
}

// MarkUsed flags a class as referenced.
func (s *SQLiteStore) MarkUsed(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE classes SET used = 1 WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("marking %s used: %w", name, err)
	}
	return requireAffected(res, name)
}

// RecordFile stores a scanned file with its content hash.
func (s *SQLiteStore) RecordFile(ctx context.Context, path, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (path, hash) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET hash = excluded.hash
	`, path, hash)
	if err != nil {
		return fmt.Errorf("recording file %s: %w", path, err)
	}
	return nil
}

// LinkFileToClass records that a file references a class.
func (s *SQLiteStore) LinkFileToClass(ctx context.Context, path, name string) error {
	var classID int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM classes WHERE name = ?", name).Scan(&classID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	if err != nil {
		return fmt.Errorf("looking up class %s: %w", name, err)
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO files (path) VALUES (?) ON CONFLICT(path) DO NOTHING", path); err != nil {
		return fmt.Errorf("inserting file %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO class_files (class_id, file_id)
		SELECT ?, id FROM files WHERE path = ?
	`, classID, path)
	if err != nil {
		return fmt.Errorf("linking %s to %s: %w", path, name, err)
	}
	return nil
}

// UnlinkFile drops every class link of a file.
func (s *SQLiteStore) UnlinkFile(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM class_files
		WHERE file_id IN (SELECT id FROM files WHERE path = ?)
	`, path)
	if err != nil {
		return fmt.Errorf("unlinking %s: %w", path, err)
	}
	return nil
}

// Classes returns all classes ordered by name.
func (s *SQLiteStore) Classes(ctx context.Context) ([]Class, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.css, c.replacement, c.used, COUNT(cf.file_id)
		FROM classes c
		LEFT JOIN class_files cf ON cf.class_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var classes []Class
	for rows.Next() {
		var (
			c           Class
			replacement sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.CSS, &replacement, &c.Used, &c.Files); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		if replacement.Valid {
			repl := replacement.String
			c.Replacement = &repl
		}
		classes = append(classes, c)
	}

	return classes, rows.Err()
}

// ClassesMissingMapping returns used classes without a replacement.
func (s *SQLiteStore) ClassesMissingMapping(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM classes WHERE used = 1 AND replacement IS NULL ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying unmapped classes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning class name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Files returns files linked to at least one class.
func (s *SQLiteStore) Files(ctx context.Context) ([]File, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT f.path, f.hash
		FROM files f
		JOIN class_files cf ON cf.file_id = f.id
		ORDER BY f.path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.Path, &f.Hash); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// Snapshot captures the current classes and mappings.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	classes, err := s.Classes(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(classes), nil
}

// Reset drops all tables and recreates the schema.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if err := dropSchema(ctx, s.db); err != nil {
		return err
	}
	return CreateSchema(ctx, s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func requireAffected(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return nil
}
