package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterkit/internal/raster"
)

func newCanny(t *testing.T, low, high float64) *CannyFilter {
	t.Helper()
	c, err := NewCannyFilter(low, high)
	require.NoError(t, err)
	return c
}

func stepImage(t *testing.T) *raster.Grid {
	g := uniformGrid(t, 20, 20, 1, 0)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			g.Set(x, y, 0, 255)
		}
	}
	return g
}

func TestCannyThresholdValidation(t *testing.T) {
	for _, tc := range [][2]float64{{-1, 100}, {100, 100}, {150, 50}, {10, 256}, {math.NaN(), 10}} {
		_, err := NewCannyFilter(tc[0], tc[1])
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "%v", tc)
	}

	c := newCanny(t, 0, 255)
	assert.Equal(t, 0.0, c.LowThreshold())
	assert.Equal(t, 255.0, c.HighThreshold())
}

func TestCannyNeedsThreeByThree(t *testing.T) {
	err := newCanny(t, 50, 150).Apply(uniformGrid(t, 2, 5, 1, 0))
	assert.ErrorIs(t, err, raster.ErrInvalidDimensions)
}

func TestCannyZeroImageHasNoEdges(t *testing.T) {
	out := apply(t, newCanny(t, 50, 150), uniformGrid(t, 12, 9, 3, 0))
	assert.Equal(t, 12*9*3, countValue(out, 0))
}

// The smoothing stage darkens the two outer rings of a bright uniform
// image, so edges can appear close to the border but never deeper inside.
func TestCannyUniformImageInteriorHasNoEdges(t *testing.T) {
	out := apply(t, newCanny(t, 50, 150), uniformGrid(t, 16, 14, 1, 200))

	for y := 3; y < 14-3; y++ {
		for x := 3; x < 16-3; x++ {
			assert.Zero(t, out.At(x, y, 0), "(%d,%d)", x, y)
		}
	}
}

func TestCannyFindsVerticalStep(t *testing.T) {
	out := apply(t, newCanny(t, 50, 150), stepImage(t))

	for y := 4; y < 16; y++ {
		assert.True(t, out.At(9, y, 0) == 255 || out.At(10, y, 0) == 255, "row %d", y)
		assert.Equal(t, 0.0, out.At(5, y, 0), "row %d", y)
		assert.Equal(t, 0.0, out.At(14, y, 0), "row %d", y)
	}
}

func TestCannyOutputIsBinaryOnEveryChannel(t *testing.T) {
	out := apply(t, newCanny(t, 30, 90), randomGrid(t, 99, 24, 18, 3))

	assert.Equal(t, len(out.Pix()), countValue(out, 0)+countValue(out, 255))
	for i := 0; i < 24*18; i++ {
		assert.Equal(t, out.Pix()[i*3], out.Pix()[i*3+1])
		assert.Equal(t, out.Pix()[i*3], out.Pix()[i*3+2])
	}
}

func TestCannyThresholdMonotonicity(t *testing.T) {
	for seed := uint64(0); seed < 4; seed++ {
		src := randomGrid(t, seed, 30, 25, 1)

		prev := math.MaxInt
		for _, high := range []float64{60, 100, 150, 200, 250} {
			n := countValue(apply(t, newCanny(t, 50, high), src), 255)
			assert.LessOrEqual(t, n, prev, "high=%v", high)
			prev = n
		}

		prev = -1
		for _, low := range []float64{140, 100, 50, 20, 0} {
			n := countValue(apply(t, newCanny(t, low, 150), src), 255)
			assert.GreaterOrEqual(t, n, prev, "low=%v", low)
			prev = n
		}
	}
}

func TestSector(t *testing.T) {
	deg := func(d float64) float64 { return d * math.Pi / 180 }

	cases := map[float64]int{
		0: 0, 22.4: 0, 22.6: 45, 45: 45, 67.4: 45, 67.6: 90, 90: 90,
		112.4: 90, 112.6: 135, 135: 135, 157.4: 135, 157.6: 0, 180: 0,
		-45: 135, -90: 90, -135: 45, -179: 0,
	}
	for d, want := range cases {
		assert.Equal(t, want, Sector(deg(d)), "%v°", d)
	}
}

func TestHysteresisSinglePass(t *testing.T) {
	g := uniformGrid(t, 6, 6, 1, 0)
	st := &cannyState{width: 6, height: 6, suppressed: make([]float64, 36)}
	st.suppressed[1*6+1] = 100 // weak, touches the strong pixel
	st.suppressed[1*6+2] = 200 // strong
	st.suppressed[1*6+3] = 100 // weak, touches the strong pixel
	st.suppressed[1*6+4] = 100 // weak, only touches weak pixels
	st.suppressed[4*6+4] = 40  // below low

	st.hysteresis(g, 50, 150)

	assert.Equal(t, 255.0, g.At(1, 1, 0))
	assert.Equal(t, 255.0, g.At(2, 1, 0))
	assert.Equal(t, 255.0, g.At(3, 1, 0))
	assert.Equal(t, 0.0, g.At(4, 1, 0))
	assert.Equal(t, 0.0, g.At(4, 4, 0))
}
