package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"crossword_gen_go/internal/lexicon"
	"crossword_gen_go/internal/types"
)

// ProgressReport is pushed to an optional channel while a batch runs.
type ProgressReport struct {
	Phase     string
	Progress  float64
	Message   string
	Completed bool
}

// Result is the outcome for a single seed in a batch. Exactly one of
// Puzzle and Err is set.
type Result struct {
	Seed   uint64
	Puzzle *types.Puzzle
	Err    error
}

// GenerateBatch generates count puzzles over consecutive seeds
// starting at seedBase, spread across a worker pool. Failed seeds are
// reported per-seed instead of failing the batch. Results are returned
// in seed order. progress may be nil.
func GenerateBatch(ctx context.Context, lex *lexicon.Lexicon, params Params, seedBase uint64, count int, progress chan<- ProgressReport) []Result {
	results := make([]Result, count)
	jobs := make(chan int)
	workerCount := int(math.Min(float64(count), float64(runtime.NumCPU())))

	var done int64
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				seed := seedBase + uint64(idx)
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Seed: seed, Err: err}
					continue
				}
				puz, err := Generate(lex, params, seed)
				results[idx] = Result{Seed: seed, Puzzle: puz, Err: err}

				n := atomic.AddInt64(&done, 1)
				if progress != nil {
					progress <- ProgressReport{
						Phase:    "generation",
						Progress: float64(n) / float64(count),
						Message:  fmt.Sprintf("Generated puzzle %d/%d", n, count),
					}
				}
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if progress != nil {
		ok, failed := Summary(results)
		progress <- ProgressReport{
			Phase:     "generation",
			Progress:  1.0,
			Message:   fmt.Sprintf("%d puzzles generated, %d seeds failed", ok, len(failed)),
			Completed: true,
		}
	}
	return results
}

// Summary counts accepted puzzles and collects the seeds that failed.
func Summary(results []Result) (ok int, failedSeeds []uint64) {
	for _, r := range results {
		if r.Err != nil {
			failedSeeds = append(failedSeeds, r.Seed)
			continue
		}
		ok++
	}
	return ok, failedSeeds
}
