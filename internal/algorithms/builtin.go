package algorithms

import (
	"strings"

	"rasterkit/internal/processing/filters"
	"rasterkit/internal/processing/structuring"
	"rasterkit/internal/raster"
)

func builtins() []Definition {
	return []Definition{
		{
			Name:        "mean",
			Description: "box average over a k×k window",
			Defaults:    map[string]interface{}{"kernel_size": 3},
			Factory: func(p Parameters) (filters.Filter, error) {
				k, err := p.Int("kernel_size")
				if err != nil {
					return nil, err
				}
				return filters.NewMeanFilter(k)
			},
		},
		{
			Name:        "gaussian",
			Description: "normalized gaussian blur",
			Defaults:    map[string]interface{}{"kernel_size": 5, "sigma": 1.4},
			Factory: func(p Parameters) (filters.Filter, error) {
				k, err := p.Int("kernel_size")
				if err != nil {
					return nil, err
				}
				sigma, err := p.Float("sigma")
				if err != nil {
					return nil, err
				}
				return filters.NewGaussianFilter(k, sigma)
			},
		},
		rankDefinition("median", "median of the window", filters.NewMedianFilter),
		rankDefinition("min", "minimum of the window", filters.NewMinFilter),
		rankDefinition("max", "maximum of the window", filters.NewMaxFilter),
		{
			Name:        "sobel",
			Description: "sobel gradient magnitude",
			Defaults:    map[string]interface{}{},
			Factory: func(Parameters) (filters.Filter, error) {
				return filters.NewSobelFilter(), nil
			},
		},
		{
			Name:        "prewitt",
			Description: "prewitt gradient magnitude",
			Defaults:    map[string]interface{}{},
			Factory: func(Parameters) (filters.Filter, error) {
				return filters.NewPrewittFilter(), nil
			},
		},
		{
			Name:        "bilateral",
			Description: "edge preserving smoothing",
			Defaults:    map[string]interface{}{"kernel_size": 5, "sigma_spatial": 50.0, "sigma_range": 50.0},
			Factory: func(p Parameters) (filters.Filter, error) {
				k, err := p.Int("kernel_size")
				if err != nil {
					return nil, err
				}
				spatial, err := p.Float("sigma_spatial")
				if err != nil {
					return nil, err
				}
				rng, err := p.Float("sigma_range")
				if err != nil {
					return nil, err
				}
				return filters.NewBilateralFilter(k, spatial, rng)
			},
		},
		morphologyDefinition("erosion", "minimum over the structuring element", func(se *structuring.Element) (filters.Filter, error) {
			return filters.NewErosion(se)
		}),
		morphologyDefinition("dilation", "maximum over the structuring element", func(se *structuring.Element) (filters.Filter, error) {
			return filters.NewDilation(se)
		}),
		morphologyDefinition("opening", "erosion followed by dilation", func(se *structuring.Element) (filters.Filter, error) {
			return filters.NewOpening(se)
		}),
		morphologyDefinition("closing", "dilation followed by erosion", func(se *structuring.Element) (filters.Filter, error) {
			return filters.NewClosing(se)
		}),
		{
			Name:        "canny",
			Description: "binary edge map",
			Defaults:    map[string]interface{}{"low": 50.0, "high": 150.0},
			Factory: func(p Parameters) (filters.Filter, error) {
				low, err := p.Float("low")
				if err != nil {
					return nil, err
				}
				high, err := p.Float("high")
				if err != nil {
					return nil, err
				}
				return filters.NewCannyFilter(low, high)
			},
		},
		{
			Name:        "negate",
			Description: "255 - v",
			Defaults:    map[string]interface{}{},
			Factory: func(Parameters) (filters.Filter, error) {
				return filters.NewNegateFilter(), nil
			},
		},
		{
			Name:        "binarize",
			Description: "luminance above threshold becomes white",
			Defaults:    map[string]interface{}{"threshold": 128.0},
			Factory: func(p Parameters) (filters.Filter, error) {
				t, err := p.Float("threshold")
				if err != nil {
					return nil, err
				}
				return filters.NewBinarizeFilter(t)
			},
		},
		{
			Name:        "quantize",
			Description: "reduce each channel to n levels",
			Defaults:    map[string]interface{}{"levels": 4},
			Factory: func(p Parameters) (filters.Filter, error) {
				levels, err := p.Int("levels")
				if err != nil {
					return nil, err
				}
				return filters.NewQuantizeFilter(levels)
			},
		},
		{
			Name:        "enhance",
			Description: "linear contrast stretch alpha*v + beta",
			Defaults:    map[string]interface{}{"alpha": 1.2, "beta": 10.0},
			Factory: func(p Parameters) (filters.Filter, error) {
				alpha, err := p.Float("alpha")
				if err != nil {
					return nil, err
				}
				beta, err := p.Float("beta")
				if err != nil {
					return nil, err
				}
				return filters.NewEnhanceFilter(alpha, beta)
			},
		},
		{
			Name:        "equalize",
			Description: "histogram equalization of the luminance",
			Defaults:    map[string]interface{}{},
			Factory: func(Parameters) (filters.Filter, error) {
				return filters.NewEqualizeFilter(), nil
			},
		},
		{
			Name:        "grayscale",
			Description: "collapse RGB to one channel",
			Defaults:    map[string]interface{}{"method": "rec601"},
			Factory: func(p Parameters) (filters.Filter, error) {
				name, err := p.String("method")
				if err != nil {
					return nil, err
				}
				method, err := filters.ParseLuminanceMethod(name)
				if err != nil {
					return nil, err
				}
				return filters.NewGrayscaleConverter(method)
			},
		},
	}
}

func rankDefinition[F filters.Filter](name, description string, build func(int) (F, error)) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Defaults:    map[string]interface{}{"kernel_size": 3},
		Factory: func(p Parameters) (filters.Filter, error) {
			k, err := p.Int("kernel_size")
			if err != nil {
				return nil, err
			}
			return build(k)
		},
	}
}

func morphologyDefinition(name, description string, build func(*structuring.Element) (filters.Filter, error)) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Defaults:    map[string]interface{}{"shape": "square", "kernel_size": 3, "radius": 1.0},
		Factory: func(p Parameters) (filters.Filter, error) {
			se, err := elementFromParameters(p)
			if err != nil {
				return nil, err
			}
			return build(se)
		},
	}
}

// elementFromParameters reads shape (square, disk or cross). Square uses
// kernel_size, disk uses radius.
func elementFromParameters(p Parameters) (*structuring.Element, error) {
	shape, err := p.String("shape")
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(shape) {
	case "square":
		k, err := p.Int("kernel_size")
		if err != nil {
			return nil, err
		}
		return structuring.SquareOfSize(k)
	case "disk":
		rho, err := p.Float("radius")
		if err != nil {
			return nil, err
		}
		return structuring.Disk(rho)
	case "cross":
		return structuring.Cross(), nil
	default:
		return nil, raster.InvalidParameter("unknown structuring element shape %q", shape)
	}
}
