package filters

import (
	"fmt"

	"rasterkit/internal/processing/engine"
	"rasterkit/internal/processing/structuring"
	"rasterkit/internal/raster"
)

// Morphological operators over a structuring element B. The second pass of
// opening and closing runs over the reflection -B, which is B itself for
// every symmetric element.
//
//	erosion(X)(p)  = inf{ X(p+b) | b in B, p+b inside }
//	dilation(X)(p) = sup{ X(p+b) | b in B, p+b inside }
//	opening        = dilation(-B) ∘ erosion(B)   (anti-extensive, idempotent)
//	closing        = erosion(-B) ∘ dilation(B)   (extensive, idempotent)
type morphology struct {
	kind    string
	element *structuring.Element
	passes  []morphPass
}

type morphPass struct {
	op      engine.Operator
	element *structuring.Element
}

func newMorphology(kind string, se *structuring.Element, ops ...engine.Operator) (morphology, error) {
	if se == nil || se.Len() == 0 {
		return morphology{}, raster.InvalidParameter("%s needs a non-empty structuring element", kind)
	}

	passes := make([]morphPass, len(ops))
	for i, op := range ops {
		passes[i] = morphPass{op: op, element: se}
		if i > 0 {
			passes[i].element = se.Reflect()
		}
	}
	return morphology{kind: kind, element: se, passes: passes}, nil
}

func (m morphology) Name() string {
	return fmt.Sprintf("%s (%s)", m.kind, m.element)
}

func (m morphology) KernelSize() int {
	return m.element.Size()
}

func (m morphology) Element() *structuring.Element {
	return m.element
}

func (m morphology) Apply(g *raster.Grid) error {
	if err := validate(g, m.kind); err != nil {
		return err
	}

	for _, pass := range m.passes {
		engine.Morph(g, pass.element, pass.op)
	}
	return nil
}

type Erosion struct{ morphology }

func NewErosion(se *structuring.Element) (*Erosion, error) {
	m, err := newMorphology("erosion", se, engine.Infimum)
	if err != nil {
		return nil, err
	}
	return &Erosion{m}, nil
}

type Dilation struct{ morphology }

func NewDilation(se *structuring.Element) (*Dilation, error) {
	m, err := newMorphology("dilation", se, engine.Supremum)
	if err != nil {
		return nil, err
	}
	return &Dilation{m}, nil
}

type Opening struct{ morphology }

func NewOpening(se *structuring.Element) (*Opening, error) {
	m, err := newMorphology("opening", se, engine.Infimum, engine.Supremum)
	if err != nil {
		return nil, err
	}
	return &Opening{m}, nil
}

type Closing struct{ morphology }

func NewClosing(se *structuring.Element) (*Closing, error) {
	m, err := newMorphology("closing", se, engine.Supremum, engine.Infimum)
	if err != nil {
		return nil, err
	}
	return &Closing{m}, nil
}
