package optics

import (
	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
)

// Aperture is an opaque stop across the optical axis with a clear opening of
// the given diameter. Rays through the opening keep their direction.
type Aperture struct {
	Height   float64 // overall height of the stop, used for display
	Diameter float64
	shape    *geometry.Line
}

// NewAperture creates an aperture
func NewAperture(height, diameter float64) *Aperture {
	return &Aperture{
		Height:   height,
		Diameter: diameter,
		shape:    geometry.NewFixedLine(diameter/2, 0, 1, 0),
	}
}

// Surface places the opening at a target position
func (a *Aperture) Surface(target core.Vec2) *geometry.Surface {
	return geometry.NewSurface(a.shape, target, 1, geometry.AnchorOrigin)
}

// Forward implements Element
func (a *Aperture) Forward(in OpticalData, sampling Sampling) OpticalData {
	out := in
	if in.NumRays() == 0 {
		out.Blocked = nil
		return out
	}

	h := collide(a.Surface(in.Target), in, false)
	out.Origins = h.points
	out.Directions = h.data.Directions
	out.Blocked = core.Not(h.valid)
	out.CoordBase = h.data.CoordBase
	out.CoordObject = h.data.CoordObject
	return out
}
