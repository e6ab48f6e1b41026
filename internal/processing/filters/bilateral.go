package filters

import (
	"math"

	"rasterkit/internal/processing/engine"
	"rasterkit/internal/raster"
)

// BilateralFilter smooths while preserving edges: each neighbor is
// weighted by its spatial distance and by its intensity difference to the
// center. The kernel is not separable, so it runs its own reducer.
type BilateralFilter struct {
	kernelSize   int
	sigmaSpatial float64
	sigmaRange   float64
	spatial      *engine.Kernel
}

func NewBilateralFilter(kernelSize int, sigmaSpatial, sigmaRange float64) (*BilateralFilter, error) {
	if err := engine.ValidateKernelSize(kernelSize); err != nil {
		return nil, err
	}
	if !(sigmaSpatial > 0) || math.IsInf(sigmaSpatial, 0) {
		return nil, raster.InvalidParameter("bilateral sigma_spatial %v must be > 0", sigmaSpatial)
	}
	if !(sigmaRange > 0) || math.IsInf(sigmaRange, 0) {
		return nil, raster.InvalidParameter("bilateral sigma_range %v must be > 0", sigmaRange)
	}

	twoSigmaSq := 2 * sigmaSpatial * sigmaSpatial
	spatial, err := engine.KernelFromFunc(kernelSize, func(dx, dy int) float64 {
		return math.Exp(-float64(dx*dx+dy*dy) / twoSigmaSq)
	})
	if err != nil {
		return nil, err
	}

	return &BilateralFilter{
		kernelSize:   kernelSize,
		sigmaSpatial: sigmaSpatial,
		sigmaRange:   sigmaRange,
		spatial:      spatial,
	}, nil
}

func (b *BilateralFilter) Name() string {
	return "bilateral_filter"
}

func (b *BilateralFilter) KernelSize() int      { return b.kernelSize }
func (b *BilateralFilter) SigmaSpatial() float64 { return b.sigmaSpatial }
func (b *BilateralFilter) SigmaRange() float64   { return b.sigmaRange }

func (b *BilateralFilter) Apply(g *raster.Grid) error {
	if err := validate(g, b.Name()); err != nil {
		return err
	}

	src := raster.Snapshot(g)
	defer raster.Release(src)

	width, height, channels := g.Width(), g.Height(), g.Channels()
	spix := src.Pix()
	dst := g.Pix()
	radius := b.kernelSize / 2
	twoRangeSq := 2 * b.sigmaRange * b.sigmaRange

	engine.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				for c := 0; c < channels; c++ {
					center := spix[(y*width+x)*channels+c]
					sum, total := 0.0, 0.0

					for dy := -radius; dy <= radius; dy++ {
						ny := y + dy
						if ny < 0 || ny >= height {
							continue
						}
						for dx := -radius; dx <= radius; dx++ {
							nx := x + dx
							if nx < 0 || nx >= width {
								continue
							}
							v := spix[(ny*width+nx)*channels+c]
							diff := center - v
							w := b.spatial.At(dx, dy) * math.Exp(-(diff*diff)/twoRangeSq)
							sum += w * v
							total += w
						}
					}

					out := center
					if total > 0 {
						out = raster.Clip(sum / total)
					}
					dst[(y*width+x)*channels+c] = out
				}
			}
		}
	})

	return nil
}
