package slime

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

func defaultWorkers() int {
	return runtime.NumCPU()
}

// chunkBounds splits [0, n) into `chunks` contiguous ranges and returns the
// i-th one. Ranges differ in length by at most one.
func chunkBounds(n, chunks, i int) (lo, hi int) {
	size := n / chunks
	rem := n % chunks
	lo = i*size + min(i, rem)
	hi = lo + size
	if i < rem {
		hi++
	}
	return lo, hi
}

// parallelChunks runs fn over `chunks` disjoint slices of [0, n), at most
// `workers` at a time, and returns once every chunk is done. That return is
// the pass barrier between the field and agent passes.
func parallelChunks(n, chunks, workers int, fn func(chunk, lo, hi int)) {
	if n <= 0 {
		return
	}
	if chunks > n {
		chunks = n
	}
	if chunks <= 1 {
		fn(0, 0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for c := 0; c < chunks; c++ {
		c := c
		lo, hi := chunkBounds(n, chunks, c)
		g.Go(func() error {
			fn(c, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
