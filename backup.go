package tachywind

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/yacobolo/tachywind/internal/backup"
	"github.com/yacobolo/tachywind/internal/logging"
)

// Backup writes the registered classes and their replacements to path.
// With mappedOnly, unmapped classes are left out. It returns the number of
// classes written.
func Backup(ctx context.Context, reg Registry, path string, mappedOnly bool) (int, error) {
	all, err := reg.Classes(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading classes: %w", err)
	}

	var buf bytes.Buffer
	n, err := backup.Encode(&buf, all, mappedOnly)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // mapping files are meant to be shared
		return 0, fmt.Errorf("writing backup: %w", err)
	}

	logging.FromContext(ctx).Debug("wrote backup", logging.FieldOutput, path, logging.FieldClasses, n)
	return n, nil
}

// Restore loads a backup into the registry. Classes are created when missing;
// a null or absent replacement keeps the one already stored. It returns the
// number of classes restored.
func Restore(ctx context.Context, reg Registry, path string) (int, error) {
	// #nosec G304 - backup path comes from trusted configuration
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	doc, err := backup.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := doc[name]
		if err := reg.UpsertClass(ctx, name, entry.CSS, entry.Tailwind); err != nil {
			return 0, err
		}
	}

	logging.FromContext(ctx).Debug("restored backup", logging.FieldPath, path, logging.FieldClasses, len(names))
	return len(names), nil
}
