package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterkit/internal/raster"
)

func TestDoubleNegateRestoresGradient(t *testing.T) {
	g, err := raster.New(10, 10, 1)
	require.NoError(t, err)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.Set(x, y, 0, float64(y*10+x)*2.55)
		}
	}

	out := apply(t, NewNegateFilter(), apply(t, NewNegateFilter(), g))
	for i, v := range g.Pix() {
		assert.InDelta(t, v, out.Pix()[i], 1e-9)
	}
}

func TestQuantize(t *testing.T) {
	q, err := NewQuantizeFilter(4)
	require.NoError(t, err)
	assert.Equal(t, 4, q.Levels())

	out := apply(t, q, uniformGrid(t, 3, 3, 3, 100))
	assert.Equal(t, 27, countValue(out, 96))

	g, err := raster.FromValues(5, 1, 1, []float64{0, 63.9, 64, 200, 255})
	require.NoError(t, err)
	assert.Equal(t, []float64{32, 32, 96, 224, 224}, apply(t, q, g).Pix())

	fine, err := NewQuantizeFilter(256)
	require.NoError(t, err)
	g, err = raster.FromValues(2, 1, 1, []float64{0, 255})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 255}, apply(t, fine, g).Pix())

	for _, levels := range []int{-1, 0, 1, 257} {
		_, err := NewQuantizeFilter(levels)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter, "levels=%d", levels)
	}
}

func TestBinarize(t *testing.T) {
	b, err := NewBinarizeFilter(128)
	require.NoError(t, err)

	g, err := raster.FromInterleaved([]byte{200, 200, 200, 120, 120, 120, 255, 0, 0}, 3, 1)
	require.NoError(t, err)

	out := apply(t, b, g)
	assert.Equal(t, []float64{255, 255, 255, 0, 0, 0, 0, 0, 0}, out.Pix())

	for _, bad := range []float64{-1, 256, math.NaN()} {
		_, err := NewBinarizeFilter(bad)
		assert.ErrorIs(t, err, raster.ErrInvalidParameter)
	}
}

func TestEnhance(t *testing.T) {
	e, err := NewEnhanceFilter(1.2, 10)
	require.NoError(t, err)

	g, err := raster.FromValues(3, 1, 1, []float64{100, 250, 0})
	require.NoError(t, err)
	out := apply(t, e, g)

	assert.InDelta(t, 130.0, out.At(0, 0, 0), 1e-9)
	assert.Equal(t, 255.0, out.At(1, 0, 0))
	assert.Equal(t, 10.0, out.At(2, 0, 0))

	_, err = NewEnhanceFilter(math.Inf(1), 0)
	assert.ErrorIs(t, err, raster.ErrInvalidParameter)
	_, err = NewEnhanceFilter(1, math.NaN())
	assert.ErrorIs(t, err, raster.ErrInvalidParameter)
}

func TestEqualize(t *testing.T) {
	g, err := raster.FromValues(4, 1, 1, []float64{10, 10, 20, 30})
	require.NoError(t, err)

	out := apply(t, NewEqualizeFilter(), g)
	assert.Equal(t, []float64{0, 0, 128, 255}, out.Pix())
}

func TestEqualizeWritesLuminanceToAllChannels(t *testing.T) {
	g, err := raster.FromInterleaved([]byte{0, 0, 0, 255, 255, 255}, 2, 1)
	require.NoError(t, err)

	out := apply(t, NewEqualizeFilter(), g)
	assert.Equal(t, []float64{0, 0, 0, 255, 255, 255}, out.Pix())
}

func TestEqualizeUniformImage(t *testing.T) {
	out := apply(t, NewEqualizeFilter(), uniformGrid(t, 4, 4, 1, 90))
	assert.Equal(t, 16, countValue(out, 0))
}
