// Package filters implements the image operators: linear smoothing,
// rank filters, gradients, the bilateral filter, morphology, Canny edge
// detection and the whole-image point operators.
//
// Every operator validates its parameters in its constructor and
// transforms a grid in place through Apply. Operators hold no mutable
// state, so one instance may be applied to many grids, also concurrently
// as long as the grids differ.
package filters

import "rasterkit/internal/raster"

// Filter transforms a grid in place.
type Filter interface {
	Name() string
	Apply(g *raster.Grid) error
}

// Sized is implemented by operators with a configurable window, for display.
type Sized interface {
	KernelSize() int
}

func validate(g *raster.Grid, name string) error {
	return raster.ValidateGridForOperation(g, 1, 1, name)
}
