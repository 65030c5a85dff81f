package tachywind

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yacobolo/tachywind/internal/classes"
	"github.com/yacobolo/tachywind/internal/logging"
	"github.com/yacobolo/tachywind/internal/walk"
)

// UnmappedClassesError aborts a Replace run while used classes lack a replacement.
type UnmappedClassesError struct {
	Classes []string
}

func (e *UnmappedClassesError) Error() string {
	noun := "classes have"
	if len(e.Classes) == 1 {
		noun = "class has"
	}
	return fmt.Sprintf("%d used %s no mapping: %s", len(e.Classes), noun, strings.Join(e.Classes, ", "))
}

// Replace writes a rewritten copy (path + ".new") of every file linked to a
// registered class. Originals are never modified.
//
// The run is refused with *UnmappedClassesError when any used class has no
// replacement. A file that fails is logged, listed in the result, and does not
// stop the others.
func Replace(ctx context.Context, reg Registry, config ReplaceConfig) (*ReplaceResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	missing, err := reg.ClassesMissingMapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking mappings: %w", err)
	}
	if len(missing) > 0 {
		return nil, &UnmappedClassesError{Classes: missing}
	}

	snap, err := reg.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	recorded, err := reg.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading files: %w", err)
	}

	hashes := make(map[string]string, len(recorded))
	targets := make([]walk.File, 0, len(recorded))
	for _, f := range recorded {
		hashes[f.Path] = f.Hash
		targets = append(targets, walk.File{Path: f.Path})
	}

	rewriter := classes.NewRewriter(snap)
	result := &ReplaceResult{DryRun: config.DryRun}
	var mu sync.Mutex

	failures, err := walk.ForEach(ctx, targets, config.Jobs, func(_ context.Context, f walk.File) error {
		rewrite, err := rewriteFile(rewriter, f.Path, hashes[f.Path], config.DryRun)
		if err != nil {
			return err
		}
		mu.Lock()
		result.Files = append(result.Files, rewrite)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	result.Failures = failures

	for _, f := range result.Files {
		if f.Stale {
			logger.Warn("file changed since parse", logging.FieldPath, f.Path)
		}
		for _, r := range f.Rejections {
			logger.Warn("rewrite rejected",
				logging.FieldPath, f.Path,
				logging.FieldOriginal, r.Original,
				logging.FieldAttempted, r.Attempted,
				logging.FieldWords, r.Words,
				logging.FieldReplaced, r.Replaced)
		}
	}
	for _, failure := range failures {
		logger.Warn("skipping file", logging.FieldPath, failure.Path, logging.FieldError, failure.Err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func rewriteFile(rewriter *classes.Rewriter, path, recordedHash string, dryRun bool) (FileRewrite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileRewrite{}, err
	}

	// #nosec G304 - path was recorded by a previous parse
	content, err := os.ReadFile(path)
	if err != nil {
		return FileRewrite{}, fmt.Errorf("read: %w", err)
	}
	text := string(content)

	res := rewriter.RewriteDetailed(text)
	rewrite := FileRewrite{
		Path:       path,
		Output:     path + NewFileSuffix,
		Spans:      res.Rewritten,
		Stale:      recordedHash != "" && recordedHash != hashContent(text),
		Rejections: res.Rejections,
	}

	if dryRun {
		return rewrite, nil
	}

	if err := os.WriteFile(rewrite.Output, []byte(res.Text), info.Mode().Perm()); err != nil {
		return FileRewrite{}, fmt.Errorf("write: %w", err)
	}
	rewrite.Written = true

	return rewrite, nil
}
