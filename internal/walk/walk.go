// Package walk collects source files and processes them concurrently.
package walk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

// Default traversal settings.
var (
	DefaultIgnoreDirs = []string{"node_modules", "obj", "bin", "wwwroot", "Migrations"}
	DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".html", ".cs", ".cshtml"}
)

// Options controls which files Collect returns.
type Options struct {
	Root         string
	IgnoreDirs   []string // directory names pruned anywhere in the tree
	Extensions   []string // allowed extensions including the dot
	Exclude      []string // doublestar patterns relative to Root
	UseGitignore bool     // honor Root/.gitignore
}

// File is a collected source file.
type File struct {
	Path     string
	Language string
}

// FileError is a failure tied to a single path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Collect walks opts.Root and returns eligible files sorted by path.
// Unreadable entries are reported as FileErrors without stopping the walk.
func Collect(ctx context.Context, opts Options) ([]File, []*FileError, error) {
	if opts.Root == "" {
		return nil, nil, errors.New("walk: root directory is required")
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("source directory: %s is not a directory", opts.Root)
	}

	var gi *ignore.GitIgnore
	if opts.UseGitignore {
		// A missing .gitignore is fine
		if compiled, err := ignore.CompileIgnoreFile(filepath.Join(opts.Root, ".gitignore")); err == nil {
			gi = compiled
		}
	}

	ignoreDirs := toSet(opts.IgnoreDirs)
	extensions := toSet(opts.Extensions)

	var (
		files    []File
		failures []*FileError
	)

	err = filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			failures = append(failures, &FileError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == opts.Root {
			return nil
		}

		rel, err := filepath.Rel(opts.Root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if _, skip := ignoreDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if excluded(opts.Exclude, rel) || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := extensions[filepath.Ext(path)]; !ok {
			return nil
		}
		if excluded(opts.Exclude, rel) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		files = append(files, File{Path: path, Language: Language(path)})
		return nil
	})
	if err != nil {
		return nil, failures, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, failures, nil
}

// Language names the language of path for statistics. Ambiguous extensions
// resolve to enry's first candidate.
func Language(path string) string {
	if lang, _ := enry.GetLanguageByExtension(path); lang != "" {
		return lang
	}
	return "Other"
}

func excluded(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
