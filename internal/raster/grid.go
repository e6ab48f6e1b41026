package raster

import "math"

// Grid is a dense row-major raster of float64 samples. Values are
// conceptually in [0,255] but are kept unclipped between operations.
// Channels are interleaved: sample (x, y, c) lives at
// (y*width+x)*channels + c.
type Grid struct {
	width    int
	height   int
	channels int
	pix      []float64
}

// New allocates a zeroed grid.
func New(width, height, channels int) (*Grid, error) {
	if err := ValidateDimensions(width, height, channels, "grid allocation"); err != nil {
		return nil, err
	}

	return &Grid{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]float64, width*height*channels),
	}, nil
}

// FromInterleaved converts an already decoded width*height*3 RGB byte
// buffer into a 3-channel grid.
func FromInterleaved(buf []byte, width, height int) (*Grid, error) {
	g, err := New(width, height, 3)
	if err != nil {
		return nil, err
	}

	if len(buf) < width*height*3 {
		return nil, InvalidDimensions("buffer holds %d bytes, need %d for %dx%d RGB",
			len(buf), width*height*3, width, height)
	}

	for i := range g.pix {
		g.pix[i] = float64(buf[i])
	}

	return g, nil
}

// FromValues builds a grid around a copy of values.
func FromValues(width, height, channels int, values []float64) (*Grid, error) {
	g, err := New(width, height, channels)
	if err != nil {
		return nil, err
	}

	if len(values) != len(g.pix) {
		return nil, InvalidDimensions("got %d values, need %d", len(values), len(g.pix))
	}

	copy(g.pix, values)
	return g, nil
}

func (g *Grid) Width() int    { return g.width }
func (g *Grid) Height() int   { return g.height }
func (g *Grid) Channels() int { return g.channels }

// Pix exposes the backing buffer. Callers that hold it must not retain it
// past the operation they are performing.
func (g *Grid) Pix() []float64 { return g.pix }

func (g *Grid) Index(x, y, c int) int {
	return (y*g.width+x)*g.channels + c
}

// At returns the sample at (x, y, c). It panics when out of range, like a
// slice index would. Use Get for coordinates that come from outside.
func (g *Grid) At(x, y, c int) float64 {
	return g.pix[g.Index(x, y, c)]
}

// Get is the checked form of At.
func (g *Grid) Get(x, y, c int) (float64, error) {
	if err := ValidateCoordinates(x, y, g.width, g.height, "pixel read"); err != nil {
		return 0, err
	}
	if err := ValidateChannel(c, g.channels, "pixel read"); err != nil {
		return 0, err
	}
	return g.At(x, y, c), nil
}

func (g *Grid) Set(x, y, c int, v float64) {
	g.pix[g.Index(x, y, c)] = v
}

// Fill sets every sample of every channel to v.
func (g *Grid) Fill(v float64) {
	for i := range g.pix {
		g.pix[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]float64, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, channels: g.channels, pix: pix}
}

// CopyFrom replaces the contents and shape of g with those of src.
func (g *Grid) CopyFrom(src *Grid) {
	if cap(g.pix) >= len(src.pix) {
		g.pix = g.pix[:len(src.pix)]
	} else {
		g.pix = make([]float64, len(src.pix))
	}
	copy(g.pix, src.pix)
	g.width, g.height, g.channels = src.width, src.height, src.channels
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.width == o.width && g.height == o.height && g.channels == o.channels
}

// Equal reports whether both grids have the same shape and samples.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameShape(o) {
		return false
	}
	for i, v := range g.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// ToSingleChannel collapses a 3-channel grid into one channel using
// reduce(r, g, b). A single-channel grid is left untouched.
func (g *Grid) ToSingleChannel(reduce func(r, gr, b float64) float64) {
	if g.channels == 1 {
		return
	}

	out := make([]float64, g.width*g.height)
	for i := range out {
		base := i * g.channels
		out[i] = reduce(g.pix[base], g.pix[base+1], g.pix[base+2])
	}

	g.pix = out
	g.channels = 1
}

// Interleaved exports the grid as width*height*3 RGB bytes, rounding and
// clamping each sample. Single-channel grids are replicated to R, G and B.
func (g *Grid) Interleaved() []byte {
	out := make([]byte, g.width*g.height*3)
	for i := 0; i < g.width*g.height; i++ {
		for c := 0; c < 3; c++ {
			src := c
			if g.channels == 1 {
				src = 0
			}
			out[i*3+c] = ToUint8(g.pix[i*g.channels+src])
		}
	}
	return out
}

// Clip clamps v into [0,255].
func Clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func ToUint8(v float64) uint8 {
	return uint8(math.Floor(Clip(v) + 0.5))
}
