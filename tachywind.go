// Package tachywind migrates Tachyons class names to Tailwind equivalents.
//
// A run has two halves. Parse registers every flat `.name { … }` rule of the
// Tachyons stylesheets and records which source files use which classes:
//
//	reg, err := tachywind.OpenRegistry("tachywind.sqlite")
//	result, err := tachywind.Parse(ctx, reg, tachywind.ParseConfig{
//		Stylesheets: []string{"css/tachyons.css"},
//		SourceDir:   "src",
//	})
//
// Once every used class has a replacement (set with `tachywind map` or
// restored from a backup), Replace writes a rewritten copy of each file next
// to the original:
//
//	result, err := tachywind.Replace(ctx, reg, tachywind.ReplaceConfig{})
//
// Only class names inside string literals are rewritten. Comments and code
// are copied byte for byte.
//
// # CLI Tool
//
//	go install github.com/yacobolo/tachywind/cmd/tachywind@latest
package tachywind

import (
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/yacobolo/tachywind/internal/classes"
	"github.com/yacobolo/tachywind/internal/registry"
	"github.com/yacobolo/tachywind/internal/textscan"
	"github.com/yacobolo/tachywind/internal/walk"
)

// Registry stores classes, their replacements and the files using them.
type Registry = registry.Store

// Class is a registered class and its migration state.
type Class = registry.Class

// FileError is a failure tied to a single source file.
type FileError = walk.FileError

// Rejection is a string rewrite refused by the prose guard.
type Rejection = classes.Rejection

// ErrUnknownClass is returned when an operation names a class that was never registered.
var ErrUnknownClass = registry.ErrUnknownClass

// Span is a string literal or comment region of a scanned file.
type Span = textscan.Span

const (
	// DefaultRegistryPath is the SQLite file used when none is configured.
	DefaultRegistryPath = "tachywind.sqlite"
	// MemoryRegistry selects a registry that lives only for the process.
	MemoryRegistry = registry.MemoryPath
	// DefaultBackupFile is the mapping document written by Backup.
	DefaultBackupFile = "mapping.json"
	// NewFileSuffix is appended to a source path to name its rewritten copy.
	NewFileSuffix = ".new"
)

// OpenRegistry opens the registry at path, creating it if needed.
func OpenRegistry(path string) (Registry, error) {
	return registry.Open(registry.Config{Path: path})
}

// hashContent fingerprints file content so Replace can spot edits made after Parse.
func hashContent(content string) string {
	return strconv.FormatUint(xxh3.HashString(content), 16)
}
