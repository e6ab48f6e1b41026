package filters

import (
	"rasterkit/internal/processing/engine"
	"rasterkit/internal/raster"
)

// rankFilter is the shared body of the median, min and max filters.
type rankFilter struct {
	name       string
	kernelSize int
	stat       engine.Statistic
}

func newRankFilter(name string, kernelSize int, stat engine.Statistic) (rankFilter, error) {
	if err := engine.ValidateKernelSize(kernelSize); err != nil {
		return rankFilter{}, err
	}
	return rankFilter{name: name, kernelSize: kernelSize, stat: stat}, nil
}

func (r rankFilter) Name() string {
	return r.name
}

func (r rankFilter) KernelSize() int {
	return r.kernelSize
}

func (r rankFilter) Apply(g *raster.Grid) error {
	if err := validate(g, r.name); err != nil {
		return err
	}

	engine.Rank(g, r.kernelSize/2, r.stat)
	return nil
}

// MedianFilter replaces each sample with the median of its window.
type MedianFilter struct{ rankFilter }

func NewMedianFilter(kernelSize int) (*MedianFilter, error) {
	r, err := newRankFilter("median_filter", kernelSize, engine.Median)
	if err != nil {
		return nil, err
	}
	return &MedianFilter{r}, nil
}

// MinFilter keeps the darkest value of the window.
type MinFilter struct{ rankFilter }

func NewMinFilter(kernelSize int) (*MinFilter, error) {
	r, err := newRankFilter("min_filter", kernelSize, engine.Minimum)
	if err != nil {
		return nil, err
	}
	return &MinFilter{r}, nil
}

// MaxFilter keeps the brightest value of the window.
type MaxFilter struct{ rankFilter }

func NewMaxFilter(kernelSize int) (*MaxFilter, error) {
	r, err := newRankFilter("max_filter", kernelSize, engine.Maximum)
	if err != nil {
		return nil, err
	}
	return &MaxFilter{r}, nil
}
