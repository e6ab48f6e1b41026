// Package engine holds the neighborhood reducers shared by the filters:
// weighted sums (convolution), order statistics (rank) and lattice
// infimum/supremum (morphology).
//
// Every reducer reads from a snapshot of the grid taken before the first
// write, so each output sample depends only on the pre-transform state.
// Rows are therefore independent and are split into bands that run
// concurrently, joined by a single barrier before the call returns.
package engine

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps tiny images on the calling goroutine.
const minRowsPerBand = 16

var workers atomic.Int32

func init() {
	workers.Store(int32(runtime.GOMAXPROCS(0)))
}

// SetWorkers sets how many row bands may run at once. The setting is
// process-wide and shared by every caller of Rows; set it once from main.
// n <= 0 restores GOMAXPROCS.
func SetWorkers(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	workers.Store(int32(n))
}

func Workers() int {
	return int(workers.Load())
}

// Rows calls fn over contiguous row ranges [y0, y1) covering [0, height)
// and returns once every band is done.
func Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	bands := min(Workers(), (height+minRowsPerBand-1)/minRowsPerBand)
	if bands <= 1 {
		fn(0, height)
		return
	}

	chunk := (height + bands - 1) / bands

	var g errgroup.Group
	g.SetLimit(bands)
	for start := 0; start < height; start += chunk {
		y0, y1 := start, min(start+chunk, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	// fn never fails; Wait is only the barrier.
	_ = g.Wait()
}
