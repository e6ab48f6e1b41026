package raster

import "sync"

// Pool recycles sample buffers used for the read-only snapshots filters
// take before writing into a grid.
type Pool struct {
	bufs    [][]float64
	maxSize int
	mu      sync.Mutex
}

func NewPool(maxSize int) *Pool {
	return &Pool{
		bufs:    make([][]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns a buffer of exactly n samples. Contents are unspecified.
func (p *Pool) Get(n int) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := len(p.bufs) - 1; i >= 0; i-- {
		buf := p.bufs[i]
		if cap(buf) < n {
			continue
		}
		p.bufs = append(p.bufs[:i], p.bufs[i+1:]...)
		return buf[:n]
	}

	return make([]float64, n)
}

func (p *Pool) Put(buf []float64) bool {
	if buf == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.bufs) >= p.maxSize {
		return false
	}

	p.bufs = append(p.bufs, buf)
	return true
}

func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bufs)
}

func (p *Pool) Cleanup() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := len(p.bufs)
	p.bufs = p.bufs[:0]
	return count
}

var snapshots = NewPool(8)

// Snapshot copies g into a pooled grid. Release it once the operation
// that reads from it is done; it must never escape that operation.
func Snapshot(g *Grid) *Grid {
	pix := snapshots.Get(len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, channels: g.channels, pix: pix}
}

// DrainSnapshots drops every pooled snapshot buffer and reports how many
// were held.
func DrainSnapshots() int {
	return snapshots.Cleanup()
}

// Release hands a snapshot's buffer back to the pool.
func Release(snapshot *Grid) {
	if snapshot == nil {
		return
	}
	snapshots.Put(snapshot.pix)
	snapshot.pix = nil
}
