package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterkit/internal/raster"
)

func TestKernelsSumToOne(t *testing.T) {
	for _, k := range []int{1, 3, 5, 7, 9, 11} {
		mean, err := NewMeanFilter(k)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, mean.Kernel().Sum(), 1e-9, "mean k=%d", k)

		for _, sigma := range []float64{0.3, 0.8, 1.4, 3, 25} {
			g, err := NewGaussianFilter(k, sigma)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, g.Kernel().Sum(), 1e-9, "gaussian k=%d sigma=%v", k, sigma)
		}
	}
}

func TestLinearConstructorsValidate(t *testing.T) {
	for _, k := range []int{0, -1, 2, 4} {
		_, err := NewMeanFilter(k)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "k=%d", k)
		_, err = NewGaussianFilter(k, 1)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "k=%d", k)
	}

	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewGaussianFilter(3, sigma)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "sigma=%v", sigma)
	}
}

func TestGaussianWeightsAreRadial(t *testing.T) {
	g, err := NewGaussianFilter(5, 1.4)
	require.NoError(t, err)
	k := g.Kernel()

	assert.Greater(t, k.At(0, 0), k.At(1, 0))
	assert.Greater(t, k.At(1, 0), k.At(1, 1))
	assert.InDelta(t, k.At(2, 1), k.At(-1, -2), 1e-15)
	assert.InDelta(t, k.At(1, 0)/k.At(0, 0), math.Exp(-1/(2*1.4*1.4)), 1e-12)
}

func TestMeanKeepsUniformInterior(t *testing.T) {
	mean, err := NewMeanFilter(3)
	require.NoError(t, err)

	out := apply(t, mean, uniformGrid(t, 6, 6, 3, 120))

	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			assert.InDelta(t, 120.0, out.At(x, y, 2), 1e-9)
		}
	}
	// border gain is smaller than 1
	assert.InDelta(t, 120.0*4/9, out.At(0, 0, 0), 1e-9)
}

func TestMeanAveragesWindow(t *testing.T) {
	g, err := raster.FromValues(3, 3, 1, []float64{
		0, 0, 0,
		0, 90, 0,
		0, 0, 0,
	})
	require.NoError(t, err)

	mean, err := NewMeanFilter(3)
	require.NoError(t, err)
	out := apply(t, mean, g)

	for _, v := range out.Pix() {
		assert.InDelta(t, 10.0, v, 1e-9)
	}
}

func TestSizeOneIsIdentity(t *testing.T) {
	src := randomGrid(t, 5, 7, 7, 3)

	mean, err := NewMeanFilter(1)
	require.NoError(t, err)
	gauss, err := NewGaussianFilter(1, 2)
	require.NoError(t, err)

	assert.True(t, src.Equal(apply(t, mean, src)))
	assert.True(t, src.Equal(apply(t, gauss, src)))
}
