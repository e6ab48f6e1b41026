package filters

import (
	"fmt"
	"strings"

	"rasterkit/internal/raster"
)

// LuminanceMethod selects how R, G and B are combined into one intensity.
type LuminanceMethod int

const (
	Rec601 LuminanceMethod = iota
	Rec709
	Average
	Lightness
	Maximum
	Minimum
	RedChannel
	GreenChannel
	BlueChannel
)

var luminanceNames = map[LuminanceMethod]string{
	Rec601:       "rec601",
	Rec709:       "rec709",
	Average:      "average",
	Lightness:    "lightness",
	Maximum:      "maximum",
	Minimum:      "minimum",
	RedChannel:   "red",
	GreenChannel: "green",
	BlueChannel:  "blue",
}

func (m LuminanceMethod) String() string {
	if name, ok := luminanceNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseLuminanceMethod accepts the names printed by String, case-insensitively.
func ParseLuminanceMethod(name string) (LuminanceMethod, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range luminanceNames {
		if n == name {
			return m, nil
		}
	}
	return Rec601, raster.InvalidParameter("unknown luminance method %q", name)
}

// Luminance combines one RGB triple.
func (m LuminanceMethod) Luminance(r, g, b float64) float64 {
	switch m {
	case Rec709:
		return 0.2126*r + 0.7152*g + 0.0722*b
	case Average:
		return (r + g + b) / 3
	case Lightness:
		return (max(r, g, b) + min(r, g, b)) / 2
	case Maximum:
		return max(r, g, b)
	case Minimum:
		return min(r, g, b)
	case RedChannel:
		return r
	case GreenChannel:
		return g
	case BlueChannel:
		return b
	default:
		return 0.299*r + 0.587*g + 0.114*b
	}
}

// GrayscaleConverter collapses a 3-channel grid to a single intensity
// channel. Single-channel grids pass through unchanged.
type GrayscaleConverter struct {
	method LuminanceMethod
}

func NewGrayscaleConverter(method LuminanceMethod) (*GrayscaleConverter, error) {
	if _, ok := luminanceNames[method]; !ok {
		return nil, raster.InvalidParameter("unknown luminance method %d", int(method))
	}
	return &GrayscaleConverter{method: method}, nil
}

func (g *GrayscaleConverter) Name() string {
	return fmt.Sprintf("grayscale_converter (%s)", g.method)
}

func (g *GrayscaleConverter) Method() LuminanceMethod {
	return g.method
}

func (g *GrayscaleConverter) Apply(grid *raster.Grid) error {
	if err := validate(grid, "grayscale_converter"); err != nil {
		return err
	}

	grid.ToSingleChannel(g.method.Luminance)
	return nil
}

// intensity reads the REC601 luminance of pixel i, or the sample itself on
// a single-channel grid.
func intensity(pix []float64, i, channels int) float64 {
	if channels == 1 {
		return pix[i]
	}
	base := i * channels
	return Rec601.Luminance(pix[base], pix[base+1], pix[base+2])
}
