package tachywind

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yacobolo/tachywind/internal/classes"
	"github.com/yacobolo/tachywind/internal/logging"
	"github.com/yacobolo/tachywind/internal/stylesheet"
	"github.com/yacobolo/tachywind/internal/textscan"
	"github.com/yacobolo/tachywind/internal/walk"
)

// Parse registers the stylesheet rules and records which source files use them.
//
// Known classes are fixed by a registry snapshot taken after the stylesheets
// are loaded; the source files are then scanned concurrently. A file that
// cannot be read is logged, listed in the result, and skipped.
func Parse(ctx context.Context, reg Registry, config ParseConfig) (*ParseResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if config.SourceDir == "" {
		return nil, errors.New("source directory is required")
	}
	// Recorded paths are absolute so replace works from any directory.
	sourceDir, err := filepath.Abs(config.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}

	sheets, err := resolveStylesheets(config.Stylesheets)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Stylesheets: sheets,
		Languages:   make(map[string]int),
	}

	for _, path := range sheets {
		rules, err := stylesheet.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, rule := range rules {
			if err := reg.UpsertClass(ctx, rule.Class, rule.Declarations, nil); err != nil {
				return nil, err
			}
		}
		result.ClassesDefined += len(rules)
		logger.Debug("registered stylesheet", logging.FieldStylesheet, path, logging.FieldClasses, len(rules))
	}

	snap, err := reg.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	files, walkFailures, err := walk.Collect(ctx, walk.Options{
		Root:         sourceDir,
		IgnoreDirs:   config.IgnoreDirs,
		Extensions:   config.Extensions,
		Exclude:      config.Exclude,
		UseGitignore: config.UseGitignore,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("collected source files", logging.FieldSource, sourceDir, logging.FieldFiles, len(files))

	var (
		mu   sync.Mutex
		used = make(map[string]struct{})
	)

	scanFailures, err := walk.ForEach(ctx, files, config.Jobs, func(ctx context.Context, f walk.File) error {
		found, err := scanFile(ctx, reg, snap, f.Path)
		if err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		result.FilesScanned++
		result.Languages[f.Language]++
		if len(found) > 0 {
			result.FilesWithClasses++
		}
		for _, name := range found {
			used[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Failures = append(walkFailures, scanFailures...)
	for _, failure := range result.Failures {
		logger.Warn("skipping file", logging.FieldPath, failure.Path, logging.FieldError, failure.Err)
	}

	result.ClassesUsed = make([]string, 0, len(used))
	for name := range used {
		result.ClassesUsed = append(result.ClassesUsed, name)
	}
	sort.Strings(result.ClassesUsed)

	result.Duration = time.Since(start)
	return result, nil
}

// scanFile extracts the registered classes of one file and records the usage.
// The file's links from an earlier parse are replaced, so a file that no longer
// uses any registered class drops out of the next replace.
func scanFile(ctx context.Context, reg Registry, known classes.KnownClasses, path string) ([]string, error) {
	// #nosec G304 - path comes from the source tree walk
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	text := string(content)

	found := classes.Extract(textscan.Scan(text).Strings, known)

	if err := reg.RecordFile(ctx, path, hashContent(text)); err != nil {
		return nil, err
	}
	if err := reg.UnlinkFile(ctx, path); err != nil {
		return nil, err
	}
	for _, name := range found {
		if err := reg.MarkUsed(ctx, name); err != nil {
			return nil, err
		}
		if err := reg.LinkFileToClass(ctx, path, name); err != nil {
			return nil, err
		}
	}

	return found, nil
}

// resolveStylesheets expands globs and drops duplicates, keeping first-seen order.
func resolveStylesheets(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.New("at least one stylesheet is required")
	}

	seen := make(map[string]struct{})
	var sheets []string

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		var matches []string
		if strings.ContainsAny(pattern, "*?[{") {
			found, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid stylesheet pattern %q: %w", pattern, err)
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("stylesheet pattern %q matched no files", pattern)
			}
			matches = found
		} else {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("stylesheet: %w", err)
			}
			matches = []string{pattern}
		}

		for _, path := range matches {
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			sheets = append(sheets, path)
		}
	}

	if len(sheets) == 0 {
		return nil, errors.New("at least one stylesheet is required")
	}
	return sheets, nil
}
