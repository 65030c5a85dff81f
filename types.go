package tachywind

import "time"

// ParseConfig holds configuration for Parse.
type ParseConfig struct {
	Stylesheets  []string // Stylesheet paths or doublestar globs
	SourceDir    string   // Root of the source tree to scan
	IgnoreDirs   []string // Directory names skipped anywhere in the tree
	Extensions   []string // File extensions to scan, with the dot
	Exclude      []string // doublestar patterns relative to SourceDir
	UseGitignore bool
	Jobs         int // Concurrent file workers (0 = NumCPU)
}

// ParseResult contains statistics from a Parse run.
type ParseResult struct {
	Stylesheets      []string       // Resolved stylesheet files
	ClassesDefined   int            // Rules registered from the stylesheets
	FilesScanned     int            // Source files read successfully
	FilesWithClasses int            // Scanned files referencing a registered class
	ClassesUsed      []string       // Distinct registered classes found, sorted
	Languages        map[string]int // Scanned files per language
	Failures         []*FileError   // Files that could not be walked or scanned
	Duration         time.Duration
}

// ReplaceConfig holds configuration for Replace.
type ReplaceConfig struct {
	Jobs   int  // Concurrent file workers (0 = NumCPU)
	DryRun bool // Compute rewrites without writing .new files
}

// FileRewrite is the outcome of rewriting one file.
type FileRewrite struct {
	Path       string
	Output     string // Path of the rewritten copy
	Spans      int    // String literals whose content changed
	Stale      bool   // Content changed since it was parsed
	Written    bool
	Rejections []Rejection
}

// Changed reports whether any string literal was rewritten.
func (f FileRewrite) Changed() bool {
	return f.Spans > 0
}

// ReplaceResult contains statistics from a Replace run.
type ReplaceResult struct {
	DryRun   bool
	Files    []FileRewrite // Sorted by path
	Failures []*FileError
	Duration time.Duration
}

// FilesChanged counts files with at least one rewritten string literal.
func (r *ReplaceResult) FilesChanged() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed() {
			n++
		}
	}
	return n
}

// SpansChanged counts rewritten string literals across all files.
func (r *ReplaceResult) SpansChanged() int {
	n := 0
	for _, f := range r.Files {
		n += f.Spans
	}
	return n
}

// RejectionCount counts guard rejections across all files.
func (r *ReplaceResult) RejectionCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Rejections)
	}
	return n
}

// StaleFiles lists files edited after they were parsed.
func (r *ReplaceResult) StaleFiles() []string {
	var paths []string
	for _, f := range r.Files {
		if f.Stale {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// StatusResult summarizes the registry.
type StatusResult struct {
	Classes  int      // Registered classes
	Mapped   int      // Classes with a replacement
	Used     int      // Classes referenced by scanned files
	Files    int      // Files referencing at least one class
	Unmapped []string // Used classes without a replacement
}

// Ready reports whether Replace would pass its pre-flight check.
func (s *StatusResult) Ready() bool {
	return len(s.Unmapped) == 0
}

// ScanReport is the diagnostic view of a single file.
type ScanReport struct {
	Path       string
	Strings    []Span
	Comments   []Span
	Classes    []string // Registered classes referenced by the file
	Rewritten  string   // Rewritten text, set when requested
	Rewrite    bool
	Rejections []Rejection
}
