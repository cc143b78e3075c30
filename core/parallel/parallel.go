// Package parallel runs index-addressed work on a bounded pool of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves an n_jobs style setting: values <= 0 mean one worker per
// CPU. The result never exceeds items and is at least 1.
func Workers(nJobs, items int) int {
	workers := nJobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ForEach calls fn for every index in [0, n) with at most Workers(nJobs, n)
// calls in flight. The first error cancels the context passed to the
// remaining calls and is returned. A nil fn error for every index returns
// ctx.Err() if ctx was cancelled meanwhile.
func ForEach(ctx context.Context, n, nJobs int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return ctx.Err()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(nJobs, n))

	for i := 0; i < n; i++ {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			return fn(gCtx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Parallelize divides items into contiguous ranges, one per worker, and calls
// fn(start, end) for each range concurrently.
func Parallelize(items, nJobs int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	workers := Workers(nJobs, items)
	chunkSize := (items + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < items; start += chunkSize {
		end := min(start+chunkSize, items)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items is at most threshold, and Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold, nJobs int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, nJobs, fn)
}
