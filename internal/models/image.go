package models

import (
	"errors"
	"sync"
	"time"

	"rasterkit/internal/processing/filters"
	"rasterkit/internal/raster"
)

var ErrNoImage = errors.New("no image loaded")

// ProcessingResult records one filter application on the working image.
type ProcessingResult struct {
	Filter      string
	ProcessTime time.Duration
	Width       int
	Height      int
	Channels    int
}

// Image is the working image: the current grid plus a saved original that
// can be restored. Readers may run concurrently; writers are serialized.
type Image struct {
	mu             sync.RWMutex
	current        *raster.Grid
	original       *raster.Grid
	history        []ProcessingResult
	maxHistorySize int
}

func NewImage() *Image {
	return &Image{
		history:        make([]ProcessingResult, 0),
		maxHistorySize: 10,
	}
}

// LoadInterleaved replaces the working image with a width*height*3 RGB
// buffer. The loaded state also becomes the original.
func (im *Image) LoadInterleaved(buf []byte, width, height int) error {
	g, err := raster.FromInterleaved(buf, width, height)
	if err != nil {
		return err
	}
	im.LoadGrid(g)
	return nil
}

// LoadGrid takes ownership of g.
func (im *Image) LoadGrid(g *raster.Grid) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.current = g
	im.original = g.Clone()
	im.history = im.history[:0]
}

// Apply runs f on a copy of the current grid and swaps it in on success,
// so readers never observe a half-filtered image.
func (im *Image) Apply(f filters.Filter) (ProcessingResult, error) {
	im.mu.RLock()
	if im.current == nil {
		im.mu.RUnlock()
		return ProcessingResult{}, ErrNoImage
	}
	work := im.current.Clone()
	im.mu.RUnlock()

	start := time.Now()
	if err := f.Apply(work); err != nil {
		return ProcessingResult{}, err
	}

	return im.Replace(work, f.Name(), time.Since(start)), nil
}

// Replace publishes g as the current grid without touching the original,
// recording it in the history under the given label.
func (im *Image) Replace(g *raster.Grid, label string, elapsed time.Duration) ProcessingResult {
	result := ProcessingResult{
		Filter:      label,
		ProcessTime: elapsed,
		Width:       g.Width(),
		Height:      g.Height(),
		Channels:    g.Channels(),
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	im.current = g
	im.history = append(im.history, result)
	if len(im.history) > im.maxHistorySize {
		im.history = im.history[1:]
	}
	return result
}

// SaveOriginal makes the current state the one RestoreOriginal returns to.
func (im *Image) SaveOriginal() error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.current == nil {
		return ErrNoImage
	}
	if im.original == nil {
		im.original = im.current.Clone()
		return nil
	}
	im.original.CopyFrom(im.current)
	return nil
}

func (im *Image) RestoreOriginal() error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.original == nil {
		return ErrNoImage
	}
	im.current = im.original.Clone()
	im.history = im.history[:0]
	return nil
}

// Current returns a copy of the working grid, or nil when nothing is loaded.
func (im *Image) Current() *raster.Grid {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if im.current == nil {
		return nil
	}
	return im.current.Clone()
}

// Sample reads one sample of the working grid.
func (im *Image) Sample(x, y, c int) (float64, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if im.current == nil {
		return 0, ErrNoImage
	}
	return im.current.Get(x, y, c)
}

func (im *Image) Original() *raster.Grid {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if im.original == nil {
		return nil
	}
	return im.original.Clone()
}

func (im *Image) History() []ProcessingResult {
	im.mu.RLock()
	defer im.mu.RUnlock()

	out := make([]ProcessingResult, len(im.history))
	copy(out, im.history)
	return out
}
