// Package registry persists the known classes, their replacements, and the
// files that reference them.
package registry

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownClass is returned when an operation names a class that was never registered.
var ErrUnknownClass = errors.New("unknown class")

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"

// Class is a registered class and its migration state.
type Class struct {
	ID          int64
	Name        string  // "pa3"
	CSS         string  // "padding: 1rem;"
	Replacement *string // "p-4", nil while unmapped
	Used        bool    // Referenced by at least one scanned file
	Files       int     // Number of linked files
}

// Mapped reports whether the class has a replacement.
func (c Class) Mapped() bool {
	return c.Replacement != nil
}

// File is a scanned source file that references registered classes.
type File struct {
	Path string
	Hash string // Content hash recorded at scan time
}

// Store provides persistence for the class registry.
//
// Every mutation is an idempotent upsert so concurrent file workers can call
// MarkUsed and LinkFileToClass for the same class or file without coordination.
type Store interface {
	// UpsertClass creates or updates a class. A nil replacement keeps the existing one.
	UpsertClass(ctx context.Context, name, css string, replacement *string) error

	// SetMapping sets or clears (nil) the replacement of an existing class.
	SetMapping(ctx context.Context, name string, replacement *string) error

	// MarkUsed flags a class as referenced.
	MarkUsed(ctx context.Context, name string) error

	// RecordFile stores a scanned file with its content hash.
	RecordFile(ctx context.Context, path, hash string) error

	// LinkFileToClass records that a file references a class.
	LinkFileToClass(ctx context.Context, path, name string) error

	// UnlinkFile drops every class link of a file, ahead of re-linking it after a rescan.
	UnlinkFile(ctx context.Context, path string) error

	// Classes returns all classes ordered by name.
	Classes(ctx context.Context) ([]Class, error)

	// ClassesMissingMapping returns used classes without a replacement, ordered by name.
	ClassesMissingMapping(ctx context.Context) ([]string, error)

	// Files returns files linked to at least one class, ordered by path.
	Files(ctx context.Context) ([]File, error)

	// Snapshot captures the current classes and mappings for one run.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Reset drops all registry data.
	Reset(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for a non-persistent registry.
	Path string
}

// Open creates a Store for the configured path.
func Open(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("registry path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
