package optics

import (
	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
)

// Lens is two refractive surfaces separated by glass. The surfaces are joined
// at their edges, OuterThickness apart along the axis.
type Lens struct {
	Front, Back    *RefractiveSurface
	OuterThickness float64
}

// NewLens creates a lens of index n in a medium of index nMedium
func NewLens(front, back geometry.Shape, nMedium, n, outerThickness float64) *Lens {
	f := NewRefractiveSurface(front, nMedium, n)
	f.Anchors = [2]geometry.Anchor{geometry.AnchorOrigin, geometry.AnchorExtent}
	b := NewRefractiveSurface(back, n, nMedium)
	b.Anchors = [2]geometry.Anchor{geometry.AnchorExtent, geometry.AnchorOrigin}
	return &Lens{Front: f, Back: b, OuterThickness: outerThickness}
}

// NewSymmetricLens creates a biconvex or biconcave lens whose back face
// mirrors the front parabola through a shared coefficient
func NewSymmetricLens(front *geometry.Parabola, nMedium, n, outerThickness float64) *Lens {
	return NewLens(front, front.Share(-1), nMedium, n, outerThickness)
}

func (l *Lens) sequence() *Sequence {
	return NewSequence(l.Front, NewGap(l.OuterThickness), l.Back)
}

// Children implements Composite
func (l *Lens) Children() []Element {
	return l.sequence().Elements
}

// Forward implements Element
func (l *Lens) Forward(in OpticalData, sampling Sampling) OpticalData {
	return l.sequence().Forward(in, sampling)
}

// Parameters implements ParameterHolder
func (l *Lens) Parameters() []*geometry.Params {
	return append(l.Front.Parameters(), l.Back.Parameters()...)
}

// InnerThickness returns the axial distance between the two vertices for the
// current coefficients
func (l *Lens) InnerThickness() float64 {
	start := core.NewVec2(0, 0)
	front := l.Front.Surface(start)
	edge := front.At(l.Front.Anchors[1]).Add(core.NewVec2(0, l.OuterThickness))
	back := l.Back.Surface(edge)
	return back.At(geometry.AnchorOrigin).Y.Real - front.At(geometry.AnchorOrigin).Y.Real
}
