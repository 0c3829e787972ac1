package execution

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"wraptest/internal/config"
	"wraptest/internal/domain"
)

// FileRunner processes one file; *Runner is the production implementation
type FileRunner interface {
	Run(ctx context.Context, path string, workerID int) domain.FileResult
}

var _ Executor = (*WorkerPool)(nil)

// WorkerPool manages a pool of workers for parallel file processing
type WorkerPool struct {
	config    *config.Config
	runner    FileRunner
	scheduler Scheduler
	progress  Progress
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner FileRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute processes files in parallel, honouring the fail-fast flag
func (wp *WorkerPool) Execute(ctx context.Context, files []string) ([]domain.FileResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, files, wp.config.Flags.FailFast)
}

// ExecuteWithOptions processes files with optional fail-fast (stop after the first failed file).
// Results are returned in input order.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, files []string, failFast bool) ([]domain.FileResult, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(ctx, files)
	}
	return wp.executeFailFast(ctx, files)
}

// tracker aggregates progress across workers
type tracker struct {
	mu        sync.Mutex
	progress  Progress
	completed int
	changed   int
	failed    int
}

func (t *tracker) record(result domain.FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed++
	if result.Changed {
		t.changed++
	}
	if result.Failed() {
		t.failed++
	}
	if t.progress != nil {
		t.progress.Update(t.completed, t.changed, t.failed)
	}
}

func (t *tracker) finish() {
	if t.progress != nil {
		t.progress.Finish()
	}
}

// executeAll hands each worker its scheduled share and runs every file
func (wp *WorkerPool) executeAll(ctx context.Context, files []string) ([]domain.FileResult, time.Duration, error) {
	startTime := time.Now()
	index := make(map[string]int, len(files))
	for i, f := range files {
		index[f] = i
	}
	results := make([]domain.FileResult, len(files))
	track := &tracker{progress: wp.progress}

	var wg sync.WaitGroup
	for i, share := range wp.scheduler.Schedule(files, wp.config.GetWorkers()) {
		wg.Add(1)
		go func(workerID int, share []string) {
			defer wg.Done()
			for _, path := range share {
				result := wp.runner.Run(ctx, path, workerID)
				results[index[path]] = result
				track.record(result)
			}
		}(i+1, share)
	}
	wg.Wait()
	track.finish()

	return results, time.Since(startTime), ctx.Err()
}

// executeFailFast pulls files from a shared queue and stops handing out
// work after the first failed file. Files already in flight complete.
func (wp *WorkerPool) executeFailFast(parent context.Context, files []string) ([]domain.FileResult, time.Duration, error) {
	startTime := time.Now()
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	queue := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for i := range files {
			select {
			case <-gctx.Done():
				return nil
			case queue <- i:
			}
		}
		return nil
	})

	var (
		mu      sync.Mutex
		results = make([]*domain.FileResult, len(files))
	)
	track := &tracker{progress: wp.progress}

	for w := 1; w <= wp.config.GetWorkers(); w++ {
		workerID := w
		g.Go(func() error {
			for i := range queue {
				if gctx.Err() != nil {
					return nil
				}
				result := wp.runner.Run(parent, files[i], workerID)
				mu.Lock()
				results[i] = &result
				mu.Unlock()
				track.record(result)
				if result.Failed() {
					cancel()
				}
			}
			return nil
		})
	}

	err := g.Wait()
	track.finish()
	if err == nil {
		err = parent.Err()
	}

	var out []domain.FileResult
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, time.Since(startTime), err
}
