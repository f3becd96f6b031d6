package optics

import (
	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
)

// LossElement is an element that adds a term to the loss without changing rays
type LossElement interface {
	Element
	// Targets returns the point each ray should pass through, either one point
	// for the whole batch or one per ray
	Targets(in OpticalData) []core.Vec2
}

// meanSquaredDistance returns the mean squared distance from rays to targets,
// zero for an empty batch
func meanSquaredDistance(in OpticalData, targets []core.Vec2) core.Scalar {
	n := in.NumRays()
	if n == 0 {
		return core.Const(0)
	}
	sum := core.Const(0)
	for _, d := range core.RayPointSquaredDistance(in.Origins, in.Directions, targets) {
		sum = core.Add(sum, d)
	}
	return core.Scale(1/float64(n), sum)
}

func addLoss(l LossElement, in OpticalData) OpticalData {
	out := in
	out.Loss = core.Add(in.Loss, meanSquaredDistance(in, l.Targets(in)))
	return out
}

// FocalPoint wants every ray to pass through the current target
type FocalPoint struct{}

// NewFocalPoint creates a focal point
func NewFocalPoint() *FocalPoint {
	return &FocalPoint{}
}

// Targets implements LossElement
func (f *FocalPoint) Targets(in OpticalData) []core.Vec2 {
	return []core.Vec2{in.Target}
}

// Forward implements Element
func (f *FocalPoint) Forward(in OpticalData, sampling Sampling) OpticalData {
	return addLoss(f, in)
}

// Image is a set of focal points across a horizontal image plane. A ray from
// object coordinate u should land at x = u*Height - Height/2.
type Image struct {
	Height float64
}

// NewImage creates an image plane
func NewImage(height float64) *Image {
	return &Image{Height: height}
}

// Targets implements LossElement
func (im *Image) Targets(in OpticalData) []core.Vec2 {
	targets := make([]core.Vec2, in.NumRays())
	for i, u := range in.CoordObject {
		targets[i] = core.Vec2{
			X: core.Add(in.Target.X, core.Const(u*im.Height-im.Height/2)),
			Y: in.Target.Y,
		}
	}
	return targets
}

// Forward implements Element
func (im *Image) Forward(in OpticalData, sampling Sampling) OpticalData {
	return addLoss(im, in)
}

// NonPositive penalizes positive coefficients of a shape with (Scale*p)^2
type NonPositive struct {
	Shape geometry.Shape
	Scale float64
}

// NewNonPositive creates a regularizer
func NewNonPositive(shape geometry.Shape, scale float64) *NonPositive {
	return &NonPositive{Shape: shape, Scale: scale}
}

// LossNonPositive returns sum over p > 0 of (scale*p)^2
func LossNonPositive(coefficients []core.Scalar, scale float64) core.Scalar {
	sum := core.Const(0)
	for _, p := range coefficients {
		term := core.Where(p.Real > 0, core.Square(core.Scale(scale, p)), core.Const(0))
		sum = core.Add(sum, term)
	}
	return sum
}

// Forward implements Element
func (r *NonPositive) Forward(in OpticalData, sampling Sampling) OpticalData {
	out := in
	out.Loss = core.Add(in.Loss, LossNonPositive(r.Shape.Binding().Values(), r.Scale))
	return out
}

// Parameters implements ParameterHolder
func (r *NonPositive) Parameters() []*geometry.Params {
	return []*geometry.Params{r.Shape.Binding().Params()}
}
