// Package structuring builds the neighborhood shapes used by the
// morphological operators.
//
// A disk follows the Gauss discretization of the continuous disk of
// radius rho: every integer point (dx, dy) with dx*dx + dy*dy <= rho*rho.
// Disk(1) is the 4-connected cross, Disk(1.5) adds the diagonals.
package structuring

import (
	"fmt"
	"math"

	"rasterkit/internal/raster"
)

// Offset is a relative position (DX, DY) inside an element.
type Offset struct {
	DX int
	DY int
}

// Element is an immutable set of offsets plus the radius of the square
// that bounds them. It is safe to share between goroutines.
type Element struct {
	offsets []Offset
	radius  int
	label   string
}

// Square returns every offset of [-radius, radius]².
func Square(radius int) (*Element, error) {
	if radius < 0 {
		return nil, raster.InvalidParameter("square radius %d must be >= 0", radius)
	}

	offsets := make([]Offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			offsets = append(offsets, Offset{DX: dx, DY: dy})
		}
	}

	return &Element{offsets: offsets, radius: radius, label: fmt.Sprintf("square %dx%d", 2*radius+1, 2*radius+1)}, nil
}

// SquareOfSize returns the square element with side kernelSize, which
// must be odd and >= 1.
func SquareOfSize(kernelSize int) (*Element, error) {
	if kernelSize < 1 || kernelSize%2 == 0 {
		return nil, raster.InvalidParameter("kernel size %d must be odd and >= 1", kernelSize)
	}
	return Square(kernelSize / 2)
}

// Disk returns the Gauss discretization of the disk of radius rho.
func Disk(rho float64) (*Element, error) {
	if rho < 0 || math.IsNaN(rho) || math.IsInf(rho, 0) {
		return nil, raster.InvalidParameter("disk radius %v must be finite and >= 0", rho)
	}

	rhoSquared := rho * rho
	bound := int(rho) + 1

	offsets := make([]Offset, 0)
	radius := 0
	for dy := -bound; dy <= bound; dy++ {
		for dx := -bound; dx <= bound; dx++ {
			if float64(dx*dx+dy*dy) <= rhoSquared {
				offsets = append(offsets, Offset{DX: dx, DY: dy})
				radius = max(radius, abs(dx), abs(dy))
			}
		}
	}

	return &Element{offsets: offsets, radius: radius, label: fmt.Sprintf("disk rho=%g", rho)}, nil
}

// Cross returns the 4-connected neighborhood plus its center.
func Cross() *Element {
	return &Element{
		offsets: []Offset{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}},
		radius:  1,
		label:   "cross",
	}
}

// FromOffsets builds a custom element. Duplicate offsets are dropped.
func FromOffsets(offsets []Offset) (*Element, error) {
	if len(offsets) == 0 {
		return nil, raster.InvalidParameter("structuring element needs at least one offset")
	}

	seen := make(map[Offset]struct{}, len(offsets))
	unique := make([]Offset, 0, len(offsets))
	radius := 0
	for _, o := range offsets {
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		unique = append(unique, o)
		radius = max(radius, abs(o.DX), abs(o.DY))
	}

	return &Element{offsets: unique, radius: radius, label: fmt.Sprintf("custom %d offsets", len(unique))}, nil
}

// Offsets returns a copy of the member offsets in generation order.
func (e *Element) Offsets() []Offset {
	out := make([]Offset, len(e.offsets))
	copy(out, e.offsets)
	return out
}

// Each calls fn for every member offset without allocating.
func (e *Element) Each(fn func(dx, dy int)) {
	for _, o := range e.offsets {
		fn(o.DX, o.DY)
	}
}

func (e *Element) Radius() int { return e.radius }

// Size is the side of the bounding square, 2*radius+1.
func (e *Element) Size() int { return 2*e.radius + 1 }

// Len is the number of member offsets.
func (e *Element) Len() int { return len(e.offsets) }

func (e *Element) Contains(dx, dy int) bool {
	for _, o := range e.offsets {
		if o.DX == dx && o.DY == dy {
			return true
		}
	}
	return false
}

// Symmetric reports whether -b is a member for every member b.
func (e *Element) Symmetric() bool {
	for _, o := range e.offsets {
		if !e.Contains(-o.DX, -o.DY) {
			return false
		}
	}
	return true
}

// Reflect returns the element {-b | b in e}. A symmetric element is its
// own reflection and is returned as is.
func (e *Element) Reflect() *Element {
	if e.Symmetric() {
		return e
	}

	offsets := make([]Offset, 0, len(e.offsets))
	e.Each(func(dx, dy int) {
		offsets = append(offsets, Offset{DX: -dx, DY: -dy})
	})
	return &Element{offsets: offsets, radius: e.radius, label: e.label + " reflected"}
}

func (e *Element) String() string { return e.label }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
