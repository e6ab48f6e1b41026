package filters

import (
	"math"

	"rasterkit/internal/processing/engine"
	"rasterkit/internal/raster"
)

const (
	cannyKernelSize = 5
	cannySigma      = 1.4
)

// CannyFilter runs the four Canny stages in order on the first channel of
// the grid and writes the binary edge map (0 or 255) to every channel:
//
//  1. smooth with a 5×5 gaussian, σ=1.4 (in place, all channels)
//  2. sobel gradient magnitude and direction on the interior pixels
//  3. non-maximum suppression along the quantized gradient direction
//  4. single-pass hysteresis against 8-connected strong neighbors
//
// The outermost ring is never a gradient candidate; its magnitude is 0.
type CannyFilter struct {
	low    float64
	high   float64
	smooth *GaussianFilter
}

func NewCannyFilter(low, high float64) (*CannyFilter, error) {
	if math.IsNaN(low) || math.IsNaN(high) || low < 0 || high > 255 || low >= high {
		return nil, raster.InvalidParameter("canny thresholds need 0 <= low < high <= 255, got low=%v high=%v", low, high)
	}

	smooth, err := NewGaussianFilter(cannyKernelSize, cannySigma)
	if err != nil {
		return nil, err
	}

	return &CannyFilter{low: low, high: high, smooth: smooth}, nil
}

func (c *CannyFilter) Name() string {
	return "canny_filter"
}

func (c *CannyFilter) LowThreshold() float64  { return c.low }
func (c *CannyFilter) HighThreshold() float64 { return c.high }

// cannyState is the per-call scratch threaded through the stages. It never
// outlives Apply.
type cannyState struct {
	width      int
	height     int
	magnitude  []float64
	direction  []float64
	suppressed []float64
}

func (c *CannyFilter) Apply(g *raster.Grid) error {
	if err := raster.ValidateGridForOperation(g, 3, 3, c.Name()); err != nil {
		return err
	}

	if err := c.smooth.Apply(g); err != nil {
		return err
	}

	st := &cannyState{
		width:      g.Width(),
		height:     g.Height(),
		magnitude:  make([]float64, g.Width()*g.Height()),
		direction:  make([]float64, g.Width()*g.Height()),
		suppressed: make([]float64, g.Width()*g.Height()),
	}

	st.gradient(g)
	st.suppress()
	st.hysteresis(g, c.low, c.high)
	return nil
}

func (st *cannyState) gradient(g *raster.Grid) {
	w, h := st.width, st.height

	engine.Rows(h, func(y0, y1 int) {
		for y := max(y0, 1); y < min(y1, h-1); y++ {
			for x := 1; x < w-1; x++ {
				gx, gy := engine.Gradient(g, sobelX, sobelY, x, y, 0)
				st.magnitude[y*w+x] = math.Hypot(gx, gy)
				st.direction[y*w+x] = math.Atan2(gy, gx)
			}
		}
	})
}

// Sector returns the quantized gradient orientation (0, 45, 90 or 135)
// of an angle in radians, folded into [0, 180).
func Sector(angle float64) int {
	deg := angle * 180 / math.Pi
	if deg < 0 {
		deg += 180
	}

	switch {
	case deg < 22.5 || deg >= 157.5:
		return 0
	case deg < 67.5:
		return 45
	case deg < 112.5:
		return 90
	default:
		return 135
	}
}

func (st *cannyState) suppress() {
	w, h := st.width, st.height
	mag := st.magnitude

	engine.Rows(h, func(y0, y1 int) {
		for y := max(y0, 1); y < min(y1, h-1); y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				var n1, n2 float64
				switch Sector(st.direction[i]) {
				case 0:
					n1, n2 = mag[i-1], mag[i+1]
				case 45:
					n1, n2 = mag[i-w+1], mag[i+w-1]
				case 90:
					n1, n2 = mag[i-w], mag[i+w]
				default:
					n1, n2 = mag[i-w-1], mag[i+w+1]
				}

				if mag[i] >= n1 && mag[i] >= n2 {
					st.suppressed[i] = mag[i]
				}
			}
		}
	})
}

// hysteresis classifies each suppressed value: >= high is an edge, < low
// is not, and anything between is an edge only if one of its 8 neighbors
// is >= high in the suppressed map. There is no iterative edge tracking.
func (st *cannyState) hysteresis(g *raster.Grid, low, high float64) {
	w, h := st.width, st.height
	channels := g.Channels()
	dst := g.Pix()
	sup := st.suppressed

	engine.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				v := sup[y*w+x]
				out := 0.0
				switch {
				case v >= high:
					out = 255
				case v < low:
					out = 0
				case hasStrongNeighbor(sup, w, h, x, y, high):
					out = 255
				}

				base := (y*w + x) * channels
				for c := 0; c < channels; c++ {
					dst[base+c] = out
				}
			}
		}
	})
}

func hasStrongNeighbor(sup []float64, w, h, x, y int, high float64) bool {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= w {
				continue
			}
			if sup[ny*w+nx] >= high {
				return true
			}
		}
	}
	return false
}
