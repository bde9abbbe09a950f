package pages

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/docsift/model"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when Scheduler.Workers is not set.
const DefaultWorkers = 4

// Task processes one page and returns its text and markdown table rows.
type Task func(ctx context.Context, index int) (text string, tables []string, err error)

// Scheduler runs a Task for every page of a document.
type Scheduler struct {
	// Parallel enables the worker pool. Single page documents always run
	// sequentially.
	Parallel bool

	// Workers bounds the number of pages processed at once.
	Workers int

	Logger *slog.Logger
}

// Run executes task for pages 0..n-1 and returns exactly n results, ordered
// by page index. Task failures are recorded in the results, never returned.
func (s *Scheduler) Run(ctx context.Context, n int, task Task) []model.PageResult {
	if n <= 0 {
		return nil
	}

	logger := s.logger()
	start := time.Now()
	results := make([]model.PageResult, n)

	if !s.Parallel || n == 1 {
		for i := 0; i < n; i++ {
			results[i] = s.runTask(ctx, logger, i, task)
		}
	} else {
		workers := s.Workers
		if workers <= 0 {
			workers = DefaultWorkers
		}

		var g errgroup.Group
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				// Each goroutine owns exactly one slot of results.
				results[i] = s.runTask(ctx, logger, i, task)
				return nil
			})
		}
		_ = g.Wait()
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	logger.Debug("pages processed",
		"pages", n,
		"failed", failed,
		"parallel", s.Parallel && n > 1,
		"duration", time.Since(start))

	return results
}

// runTask runs one page, turning errors and panics into a failed result.
func (s *Scheduler) runTask(ctx context.Context, logger *slog.Logger, index int, task Task) (result model.PageResult) {
	result.Index = index

	defer func() {
		if r := recover(); r != nil {
			result = model.PageResult{Index: index, Err: fmt.Errorf("page %d: panic: %v", index+1, r)}
			logger.Warn("page task panicked", "page", index+1, "error", result.Err)
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	text, tables, err := task(ctx, index)
	if err != nil {
		result.Err = fmt.Errorf("page %d: %w", index+1, err)
		logger.Warn("page task failed", "page", index+1, "error", err)
		return result
	}

	result.Text = text
	result.Tables = tables
	logger.Debug("page processed", "page", index+1, "chars", len(text), "tables", len(tables))
	return result
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
