// Package histogram counts 8-bit intensity occurrences and derives the
// lookup tables built on them.
package histogram

import "rasterkit/internal/raster"

const Bins = 256

type Histogram [Bins]int

// Build rounds sample(i) to the nearest byte for i in [0, n) and counts it.
func Build(n int, sample func(i int) float64) Histogram {
	var h Histogram
	for i := 0; i < n; i++ {
		h[raster.ToUint8(sample(i))]++
	}
	return h
}

func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// CDF returns the running sum of the bins.
func (h Histogram) CDF() [Bins]int {
	var cdf [Bins]int
	acc := 0
	for i, c := range h {
		acc += c
		cdf[i] = acc
	}
	return cdf
}

// EqualizationLUT maps each bin to round((cdf-cdfMin)*255/(total-cdfMin)),
// where cdfMin is the first non-zero cdf value. Bins at or below cdfMin
// map to 0. A single-valued histogram maps everything to 0.
func (h Histogram) EqualizationLUT() [Bins]float64 {
	cdf := h.CDF()
	total := cdf[Bins-1]

	cdfMin := 0
	for _, v := range cdf {
		if v != 0 {
			cdfMin = v
			break
		}
	}

	denom := total - cdfMin
	if denom <= 0 {
		denom = 1
	}

	var lut [Bins]float64
	for i, v := range cdf {
		if v <= cdfMin {
			continue
		}
		lut[i] = float64(raster.ToUint8(float64(v-cdfMin) * 255 / float64(denom)))
	}
	return lut
}
