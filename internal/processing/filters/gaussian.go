package filters

import (
	"math"

	"rasterkit/internal/processing/engine"
	"rasterkit/internal/raster"
)

// MeanFilter averages the k×k window with uniform weights 1/k².
type MeanFilter struct {
	kernel *engine.Kernel
}

func NewMeanFilter(kernelSize int) (*MeanFilter, error) {
	if err := engine.ValidateKernelSize(kernelSize); err != nil {
		return nil, err
	}

	weight := 1.0 / float64(kernelSize*kernelSize)
	kernel, err := engine.KernelFromFunc(kernelSize, func(int, int) float64 { return weight })
	if err != nil {
		return nil, err
	}

	return &MeanFilter{kernel: kernel}, nil
}

func (m *MeanFilter) Name() string {
	return "mean_filter"
}

func (m *MeanFilter) KernelSize() int {
	return m.kernel.Size()
}

func (m *MeanFilter) Kernel() *engine.Kernel {
	return m.kernel
}

func (m *MeanFilter) Apply(g *raster.Grid) error {
	if err := validate(g, m.Name()); err != nil {
		return err
	}

	engine.Convolve(g, m.kernel)
	return nil
}

// GaussianFilter convolves with exp(-(dx²+dy²)/(2σ²)) normalized to sum 1.
type GaussianFilter struct {
	sigma  float64
	kernel *engine.Kernel
}

func NewGaussianFilter(kernelSize int, sigma float64) (*GaussianFilter, error) {
	if err := engine.ValidateKernelSize(kernelSize); err != nil {
		return nil, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, raster.InvalidParameter("gaussian sigma %v must be > 0", sigma)
	}

	twoSigmaSq := 2 * sigma * sigma
	raw, err := engine.KernelFromFunc(kernelSize, func(dx, dy int) float64 {
		return math.Exp(-float64(dx*dx+dy*dy) / twoSigmaSq)
	})
	if err != nil {
		return nil, err
	}

	kernel, err := raw.Normalized()
	if err != nil {
		return nil, err
	}

	return &GaussianFilter{sigma: sigma, kernel: kernel}, nil
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

func (g *GaussianFilter) KernelSize() int {
	return g.kernel.Size()
}

func (g *GaussianFilter) Sigma() float64 {
	return g.sigma
}

func (g *GaussianFilter) Kernel() *engine.Kernel {
	return g.kernel
}

func (g *GaussianFilter) Apply(grid *raster.Grid) error {
	if err := validate(grid, g.Name()); err != nil {
		return err
	}

	engine.Convolve(grid, g.kernel)
	return nil
}
