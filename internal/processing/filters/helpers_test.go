package filters

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"rasterkit/internal/processing/structuring"
	"rasterkit/internal/raster"
)

func randomGrid(t *testing.T, seed uint64, w, h, c int) *raster.Grid {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed*31+7))
	values := make([]float64, w*h*c)
	for i := range values {
		values[i] = float64(r.IntN(256))
	}
	g, err := raster.FromValues(w, h, c, values)
	require.NoError(t, err)
	return g
}

func binaryGrid(t *testing.T, seed uint64, w, h int) *raster.Grid {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, w*h)
	for i := range values {
		if r.IntN(3) == 0 {
			values[i] = 255
		}
	}
	g, err := raster.FromValues(w, h, 1, values)
	require.NoError(t, err)
	return g
}

func uniformGrid(t *testing.T, w, h, c int, v float64) *raster.Grid {
	t.Helper()
	g, err := raster.New(w, h, c)
	require.NoError(t, err)
	g.Fill(v)
	return g
}

// whiteBlock is a 5×5 single-channel grid with a 3×3 block of 255
// centered at (2,2).
func whiteBlock(t *testing.T) *raster.Grid {
	t.Helper()
	g := uniformGrid(t, 5, 5, 1, 0)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, 0, 255)
		}
	}
	return g
}

func square3(t *testing.T) *structuring.Element {
	t.Helper()
	se, err := structuring.SquareOfSize(3)
	require.NoError(t, err)
	return se
}

func apply(t *testing.T, f Filter, g *raster.Grid) *raster.Grid {
	t.Helper()
	out := g.Clone()
	require.NoError(t, f.Apply(out))
	return out
}

func countValue(g *raster.Grid, v float64) int {
	n := 0
	for _, s := range g.Pix() {
		if s == v {
			n++
		}
	}
	return n
}
