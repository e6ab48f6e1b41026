package filters

import (
	"math"

	"rasterkit/internal/processing/histogram"
	"rasterkit/internal/raster"
)

// Whole-image point operators. Each output sample depends only on the
// input sample at the same position (or, for equalization, on the global
// histogram), so no snapshot is needed.

type NegateFilter struct{}

func NewNegateFilter() *NegateFilter {
	return &NegateFilter{}
}

func (n *NegateFilter) Name() string {
	return "negate_filter"
}

func (n *NegateFilter) Apply(g *raster.Grid) error {
	if err := validate(g, n.Name()); err != nil {
		return err
	}

	pix := g.Pix()
	for i, v := range pix {
		pix[i] = 255 - v
	}
	return nil
}

// BinarizeFilter sets every channel of a pixel to 255 when its luminance
// is strictly above the threshold, 0 otherwise.
type BinarizeFilter struct {
	threshold float64
}

func NewBinarizeFilter(threshold float64) (*BinarizeFilter, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 255 {
		return nil, raster.InvalidParameter("binarize threshold %v must be in [0,255]", threshold)
	}
	return &BinarizeFilter{threshold: threshold}, nil
}

func (b *BinarizeFilter) Name() string {
	return "binarize_filter"
}

func (b *BinarizeFilter) Apply(g *raster.Grid) error {
	if err := validate(g, b.Name()); err != nil {
		return err
	}

	pix := g.Pix()
	channels := g.Channels()
	for i := 0; i < g.Width()*g.Height(); i++ {
		v := 0.0
		if intensity(pix, i, channels) > b.threshold {
			v = 255
		}
		for c := 0; c < channels; c++ {
			pix[i*channels+c] = v
		}
	}
	return nil
}

// QuantizeFilter maps each sample onto the center of one of `levels`
// uniform bins of width 256/levels.
type QuantizeFilter struct {
	levels int
}

func NewQuantizeFilter(levels int) (*QuantizeFilter, error) {
	if levels < 2 || levels > 256 {
		return nil, raster.InvalidParameter("quantize levels %d must be in [2,256]", levels)
	}
	return &QuantizeFilter{levels: levels}, nil
}

func (q *QuantizeFilter) Name() string {
	return "quantize_filter"
}

func (q *QuantizeFilter) Levels() int {
	return q.levels
}

func (q *QuantizeFilter) Apply(g *raster.Grid) error {
	if err := validate(g, q.Name()); err != nil {
		return err
	}

	step := 256.0 / float64(q.levels)
	pix := g.Pix()
	for i, v := range pix {
		idx := min(int(v/step), q.levels-1)
		pix[i] = raster.Clip(float64(idx)*step + step/2)
	}
	return nil
}

// EnhanceFilter applies the linear contrast stretch clip(alpha*v + beta).
type EnhanceFilter struct {
	alpha float64
	beta  float64
}

func NewEnhanceFilter(alpha, beta float64) (*EnhanceFilter, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, raster.InvalidParameter("enhance alpha=%v beta=%v must be finite", alpha, beta)
	}
	return &EnhanceFilter{alpha: alpha, beta: beta}, nil
}

func (e *EnhanceFilter) Name() string {
	return "enhance_filter"
}

func (e *EnhanceFilter) Apply(g *raster.Grid) error {
	if err := validate(g, e.Name()); err != nil {
		return err
	}

	pix := g.Pix()
	for i, v := range pix {
		pix[i] = raster.Clip(e.alpha*v + e.beta)
	}
	return nil
}

// EqualizeFilter spreads the luminance histogram over [0,255]. Every
// channel of a pixel receives the equalized luminance.
type EqualizeFilter struct{}

func NewEqualizeFilter() *EqualizeFilter {
	return &EqualizeFilter{}
}

func (e *EqualizeFilter) Name() string {
	return "equalize_filter"
}

func (e *EqualizeFilter) Apply(g *raster.Grid) error {
	if err := validate(g, e.Name()); err != nil {
		return err
	}

	pix := g.Pix()
	channels := g.Channels()
	n := g.Width() * g.Height()

	lut := histogram.Build(n, func(i int) float64 {
		return intensity(pix, i, channels)
	}).EqualizationLUT()

	for i := 0; i < n; i++ {
		v := lut[raster.ToUint8(intensity(pix, i, channels))]
		for c := 0; c < channels; c++ {
			pix[i*channels+c] = v
		}
	}
	return nil
}
