package engine

import (
	"math"

	"rasterkit/internal/raster"
)

// Kernel is an immutable odd-sized square of weights indexed by offsets
// in [-radius, radius].
type Kernel struct {
	size    int
	radius  int
	weights []float64
}

// NewKernel copies size*size row-major weights.
func NewKernel(size int, weights []float64) (*Kernel, error) {
	if err := ValidateKernelSize(size); err != nil {
		return nil, err
	}
	if len(weights) != size*size {
		return nil, raster.InvalidParameter("kernel of size %d needs %d weights, got %d", size, size*size, len(weights))
	}

	w := make([]float64, len(weights))
	copy(w, weights)
	return &Kernel{size: size, radius: size / 2, weights: w}, nil
}

// KernelFromFunc evaluates weight(dx, dy) over the whole window.
func KernelFromFunc(size int, weight func(dx, dy int) float64) (*Kernel, error) {
	if err := ValidateKernelSize(size); err != nil {
		return nil, err
	}

	r := size / 2
	w := make([]float64, 0, size*size)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			w = append(w, weight(dx, dy))
		}
	}
	return &Kernel{size: size, radius: r, weights: w}, nil
}

func ValidateKernelSize(size int) error {
	if size < 1 || size%2 == 0 {
		return raster.InvalidParameter("kernel size %d must be odd and >= 1", size)
	}
	return nil
}

func (k *Kernel) Size() int   { return k.size }
func (k *Kernel) Radius() int { return k.radius }

// At returns the weight at offset (dx, dy).
func (k *Kernel) At(dx, dy int) float64 {
	return k.weights[(dy+k.radius)*k.size+dx+k.radius]
}

func (k *Kernel) Sum() float64 {
	sum := 0.0
	for _, w := range k.weights {
		sum += w
	}
	return sum
}

// Normalized returns a copy whose weights sum to 1.
func (k *Kernel) Normalized() (*Kernel, error) {
	sum := k.Sum()
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, raster.InvalidParameter("kernel weights sum to %v and cannot be normalized", sum)
	}

	w := make([]float64, len(k.weights))
	for i, v := range k.weights {
		w[i] = v / sum
	}
	return &Kernel{size: k.size, radius: k.radius, weights: w}, nil
}

// WeightedSum returns Σ k(dx,dy)·src(x+dx, y+dy, c) over the in-bounds part
// of the window. Out-of-range neighbors are omitted, not renormalized, so a
// border pixel sees a smaller total gain than an interior one.
func WeightedSum(src *raster.Grid, k *Kernel, x, y, c int) float64 {
	width, height, channels := src.Width(), src.Height(), src.Channels()
	pix := src.Pix()
	r := k.radius

	sum := 0.0
	for dy := -r; dy <= r; dy++ {
		ny := y + dy
		if ny < 0 || ny >= height {
			continue
		}
		row := (dy + r) * k.size
		for dx := -r; dx <= r; dx++ {
			nx := x + dx
			if nx < 0 || nx >= width {
				continue
			}
			sum += k.weights[row+dx+r] * pix[(ny*width+nx)*channels+c]
		}
	}
	return sum
}

// Convolve replaces every sample of g with the clipped weighted sum of its
// neighborhood in the pre-call state of g.
func Convolve(g *raster.Grid, k *Kernel) {
	src := raster.Snapshot(g)
	defer raster.Release(src)

	width, channels := g.Width(), g.Channels()
	dst := g.Pix()

	Rows(g.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				base := (y*width + x) * channels
				for c := 0; c < channels; c++ {
					dst[base+c] = raster.Clip(WeightedSum(src, k, x, y, c))
				}
			}
		}
	})
}

// Gradient evaluates two directional kernels at (x, y, c) in one pass.
func Gradient(src *raster.Grid, kx, ky *Kernel, x, y, c int) (gx, gy float64) {
	return WeightedSum(src, kx, x, y, c), WeightedSum(src, ky, x, y, c)
}
