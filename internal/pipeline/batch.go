package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"despeckle/internal/logger"
	"despeckle/internal/metrics"
)

// BatchResult holds the outcome of despeckling one file in a batch run.
type BatchResult struct {
	Input  string
	Output string
	Error  error
}

// BatchConfig holds the resources shared across every worker in a Run,
// grounded on drsaluml-mu-bmd-to-webp/internal/batch/processor.go's
// Config/Run shape: a fixed-size worker pool fed by a channel of work
// items, with results written back by index so ordering is preserved
// without a mutex around the result slice.
type BatchConfig struct {
	Options
	OutputDir string
	Workers   int
}

// Run despeckles every file in inputPaths using a pool of cfg.Workers
// goroutines, one despeckle.Despeckle invocation per worker at a time —
// the engine itself stays single-threaded per spec.md §5; concurrency
// lives only at this batch level.
func Run(ctx context.Context, cfg BatchConfig, inputPaths []string) []BatchResult {
	results := make([]BatchResult, len(inputPaths))
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	items := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range items {
				results[idx] = runOne(ctx, cfg, inputPaths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range inputPaths {
		items <- i
	}
	close(items)
	wg.Wait()

	if cfg.Log != nil {
		cfg.Log.Info("pipeline", "batch complete", map[string]interface{}{
			"total":     len(inputPaths),
			"processed": processed.Load(),
		})
	}

	return results
}

func runOne(ctx context.Context, cfg BatchConfig, inputPath string) BatchResult {
	outputPath := filepath.Join(cfg.OutputDir, filepath.Base(inputPath))

	runID := logger.NewRunID()
	opts := cfg.Options
	if opts.Log != nil {
		opts.Log = opts.Log.WithRun(runID)
	}
	if opts.Tracker == nil {
		opts.Tracker = metrics.NewTracker(nil)
	}

	if err := ProcessFile(ctx, inputPath, outputPath, opts); err != nil {
		return BatchResult{Input: inputPath, Output: outputPath, Error: fmt.Errorf("run %s: %w", runID, err)}
	}
	return BatchResult{Input: inputPath, Output: outputPath}
}
