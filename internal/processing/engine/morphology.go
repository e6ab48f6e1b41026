package engine

import (
	"rasterkit/internal/processing/structuring"
	"rasterkit/internal/raster"
)

// Operator is one of the two lattice reductions.
type Operator int

const (
	// Infimum is erosion: pointwise minimum, starting from the top of the
	// lattice (255).
	Infimum Operator = iota
	// Supremum is dilation: pointwise maximum, starting from the bottom (0).
	Supremum
)

func (o Operator) String() string {
	if o == Infimum {
		return "infimum"
	}
	return "supremum"
}

// Morph reduces, for each sample, the values at p+b for every member b of
// se whose position is inside the grid. Only member offsets are visited,
// so a disk never touches the corners of its bounding square.
func Morph(g *raster.Grid, se *structuring.Element, op Operator) {
	src := raster.Snapshot(g)
	defer raster.Release(src)

	width, height, channels := g.Width(), g.Height(), g.Channels()
	spix := src.Pix()
	dst := g.Pix()
	offsets := se.Offsets()

	start := 255.0
	if op == Supremum {
		start = 0
	}

	Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				for c := 0; c < channels; c++ {
					result := start
					for _, o := range offsets {
						nx, ny := x+o.DX, y+o.DY
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						v := spix[(ny*width+nx)*channels+c]
						if op == Infimum {
							if v < result {
								result = v
							}
						} else if v > result {
							result = v
						}
					}
					dst[(y*width+x)*channels+c] = result
				}
			}
		}
	})
}
