package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRoundsSamples(t *testing.T) {
	values := []float64{0, 0.4, 0.6, 254.6, 300, -5}
	h := Build(len(values), func(i int) float64 { return values[i] })

	assert.Equal(t, 3, h[0])
	assert.Equal(t, 1, h[1])
	assert.Equal(t, 2, h[255])
	assert.Equal(t, 6, h.Total())
}

func TestCDF(t *testing.T) {
	var h Histogram
	h[3], h[7] = 2, 5

	cdf := h.CDF()
	assert.Equal(t, 0, cdf[2])
	assert.Equal(t, 2, cdf[3])
	assert.Equal(t, 2, cdf[6])
	assert.Equal(t, 7, cdf[255])
}

func TestEqualizationLUT(t *testing.T) {
	var h Histogram
	h[10], h[20], h[30] = 2, 1, 1

	lut := h.EqualizationLUT()
	assert.Equal(t, 0.0, lut[10])
	assert.Equal(t, 128.0, lut[20])
	assert.Equal(t, 255.0, lut[30])
}

func TestEqualizationLUTSingleValue(t *testing.T) {
	var h Histogram
	h[90] = 16

	lut := h.EqualizationLUT()
	for _, v := range lut {
		assert.Zero(t, v)
	}
}
