package wiki2html

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent compiles.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for file I/O and the caller.
	cpuDivisor = 2
)

// ResolvePoolSize determines the worker count for batch compiles.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// BatchResult is the outcome of one document in CompileAll.
type BatchResult struct {
	Result *Result
	Err    error
}

// CompileAll compiles every source with up to workers goroutines and returns
// the results in input order. Sources not started before ctx is done report
// ctx.Err().
func (c *Compiler) CompileAll(ctx context.Context, sources []string, workers int) []BatchResult {
	if len(sources) == 0 {
		return nil
	}

	concurrency := min(ResolvePoolSize(workers), len(sources))
	results := make([]BatchResult, len(sources))
	jobs := make(chan int, len(sources))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = BatchResult{Err: err}
					continue
				}
				r, err := c.Compile(sources[idx])
				results[idx] = BatchResult{Result: r, Err: err}
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
