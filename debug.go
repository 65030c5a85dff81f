package tachywind

import (
	"context"
	"fmt"
	"os"

	"github.com/yacobolo/tachywind/internal/classes"
	"github.com/yacobolo/tachywind/internal/textscan"
)

// Debug scans a single file and reports its string and comment spans together
// with the registered classes it references. With rewrite, the rewritten text
// and any guard rejections are included. The registry is only read.
func Debug(ctx context.Context, reg Registry, path string, rewrite bool) (*ScanReport, error) {
	// #nosec G304 - path is given on the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(content)

	snap, err := reg.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	scanned := textscan.Scan(text)
	report := &ScanReport{
		Path:     path,
		Strings:  scanned.Strings,
		Comments: scanned.Comments,
		Classes:  classes.Extract(scanned.Strings, snap),
		Rewrite:  rewrite,
	}

	if rewrite {
		res := classes.NewRewriter(snap, classes.WithCacheSize(0)).RewriteDetailed(text)
		report.Rewritten = res.Text
		report.Rejections = res.Rejections
	}

	return report, nil
}
