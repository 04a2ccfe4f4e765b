package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-mdstrike"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadMarkdown  = errors.New("failed to read markdown file")
	ErrWriteMarkdown = errors.New("failed to write file")
	ErrBatchFailed   = errors.New("some files failed")
)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	Path     string
	Output   string // formatted document, or the written path for html
	Changed  bool
	Err      error
	Duration time.Duration
}

// fileFunc processes one file.
type fileFunc func(ctx context.Context, path string) fileResult

// processBatch runs fn over files using up to workers goroutines.
// Results are returned in input order.
func processBatch(ctx context.Context, workers int, files []string, fn fileFunc) []fileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := mdstrike.ResolvePoolSize(workers)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]fileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = fileResult{Path: files[idx], Err: ctx.Err()}
					continue
				}
				start := time.Now()
				r := fn(ctx, files[idx])
				r.Path = files[idx]
				r.Duration = time.Since(start)
				results[idx] = r
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// readMarkdown reads a discovered file.
func readMarkdown(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(content), nil
}

// resultSummary holds the count of succeeded and failed files.
type resultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed files.
func countResults(results []fileResult) resultSummary {
	var summary resultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportFailures prints failed files and returns an error wrapping
// ErrBatchFailed and the first failure, or nil.
func reportFailures(results []fileResult, env *Environment) error {
	var first error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
		if first == nil {
			first = r.Err
		}
	}
	if first == nil {
		return nil
	}
	summary := countResults(results)
	return fmt.Errorf("%w (%d of %d): %w", ErrBatchFailed, summary.Failed, len(results), first)
}

// printTiming prints one line per successful file when verbose.
func printTiming(results []fileResult, verb string, env *Environment) {
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(env.Stderr, "%s %s (%v)\n", verb, r.Path, r.Duration.Round(time.Millisecond))
		}
	}
}
