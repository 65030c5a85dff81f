package walk

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for every file using at most jobs goroutines
// (runtime.NumCPU when jobs < 1). A failing file never cancels its siblings;
// failures come back as FileErrors in input order. Only context cancellation
// is returned as an error.
func ForEach(ctx context.Context, files []File, jobs int, fn func(ctx context.Context, f File) error) ([]*FileError, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	var (
		mu     sync.Mutex
		errsAt = make(map[int]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, f); err != nil {
				mu.Lock()
				errsAt[i] = err
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return collectErrors(files, errsAt), err
	}
	// Cancellation noticed after every worker finished
	if err := ctx.Err(); err != nil {
		return collectErrors(files, errsAt), err
	}

	return collectErrors(files, errsAt), nil
}

func collectErrors(files []File, errsAt map[int]error) []*FileError {
	var failures []*FileError
	for i, f := range files {
		if err, ok := errsAt[i]; ok {
			failures = append(failures, &FileError{Path: f.Path, Err: err})
		}
	}
	return failures
}
