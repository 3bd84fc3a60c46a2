// Package parallel provides row-parallel execution helpers for batch operations.
//
// Work is split across goroutines only along independent rows, so a parallel
// run always produces exactly the same values as a sequential one.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum elements per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a config that always runs in the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*max(cfg.MinChunkSize, 1) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	run(n, chunkSize, f)
}

// ForRows executes f(r) for every row in [0, rows) where each row holds
// rowLen elements. Chunks are sized in elements so that wide rows are
// spread over workers even for small batches.
func ForRows(rows, rowLen int, f func(r int), cfg Config) {
	total := rows * rowLen
	if !cfg.Enabled || cfg.NumWorkers < 2 || rows < 2 || total < 2*max(cfg.MinChunkSize, 1) {
		for r := 0; r < rows; r++ {
			f(r)
		}
		return
	}

	rowsPerChunk := max(cfg.MinChunkSize/max(rowLen, 1), 1)
	chunkSize := max((rows+cfg.NumWorkers-1)/cfg.NumWorkers, rowsPerChunk)
	run(rows, chunkSize, f)
}

func run(n, chunkSize int, f func(i int)) {
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
