package engine

import (
	"cmp"
	"slices"

	"rasterkit/internal/raster"
)

// Statistic selects which order statistic Rank keeps.
type Statistic int

const (
	Minimum Statistic = iota
	Maximum
	Median
)

func (s Statistic) String() string {
	switch s {
	case Minimum:
		return "min"
	case Maximum:
		return "max"
	case Median:
		return "median"
	default:
		return "unknown"
	}
}

// Rank replaces every sample with the chosen order statistic of the
// in-bounds values of the square window of the given radius.
//
// Min starts from 255 and Max from 0, the neutral values of the [0,255]
// range. Median sorts the collected values (stable, in scan order) and
// takes index count/2, so an even count at a border yields the upper of
// the two central values.
func Rank(g *raster.Grid, radius int, stat Statistic) {
	src := raster.Snapshot(g)
	defer raster.Release(src)

	width, height, channels := g.Width(), g.Height(), g.Channels()
	spix := src.Pix()
	dst := g.Pix()
	window := (2*radius + 1) * (2*radius + 1)

	Rows(height, func(y0, y1 int) {
		values := make([]float64, 0, window)
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				for c := 0; c < channels; c++ {
					values = values[:0]
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
							values = append(values, spix[(ny*width+nx)*channels+c])
						}
					}
					dst[(y*width+x)*channels+c] = reduce(values, stat)
				}
			}
		}
	})
}

func reduce(values []float64, stat Statistic) float64 {
	switch stat {
	case Minimum:
		m := 255.0
		for _, v := range values {
			if v < m {
				m = v
			}
		}
		return m
	case Maximum:
		m := 0.0
		for _, v := range values {
			if v > m {
				m = v
			}
		}
		return m
	default:
		return SelectMedian(values)
	}
}

// SelectMedian sorts values in place and returns values[len/2].
func SelectMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	slices.SortStableFunc(values, cmp.Compare[float64])
	return values[len(values)/2]
}
