package extract

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Options control Run.
type Options struct {
	// Concurrency is the number of workers; zero or less picks one per CPU, at least two.
	Concurrency int
	// OnProgress is called after every extracted file. Calls never overlap.
	OnProgress func(done, total int)
}

// Run extracts every file over a pool of workers. It stops at the first
// failure or when ctx is cancelled and returns that error.
func (j *Job) Run(ctx context.Context, opts Options) error {
	total := j.FileCount()
	if total == 0 {
		return ctx.Err()
	}
	workers := opts.Concurrency
	if workers <= 0 {
		workers = max(2, runtime.NumCPU())
	}
	workers = min(workers, total)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		firstErr   error
		mu         sync.Mutex
		progressMu sync.Mutex
		done       atomic.Int64
		wg         sync.WaitGroup
	)
	tasks := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				if runCtx.Err() != nil {
					continue
				}
				if err := j.ExtractFile(runCtx, idx); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					continue
				}
				progressMu.Lock()
				n := done.Add(1)
				if opts.OnProgress != nil {
					opts.OnProgress(int(n), total)
				}
				progressMu.Unlock()
			}
		}()
	}

feed:
	for i := 0; i < total; i++ {
		select {
		case tasks <- i:
		case <-runCtx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
