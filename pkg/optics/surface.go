package optics

import (
	"fmt"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
)

// OpticalSurface is the part shared by reflective and refractive surfaces
type OpticalSurface struct {
	Shape geometry.Shape
	Scale float64

	// Anchors[0] places the surface on the incoming target, Anchors[1] is
	// reported as the target for the next element
	Anchors [2]geometry.Anchor

	// Strict panics when a collision lies behind its ray origin
	Strict bool
}

func newOpticalSurface(shape geometry.Shape, scale float64, anchors [2]geometry.Anchor) OpticalSurface {
	return OpticalSurface{Shape: shape, Scale: scale, Anchors: anchors}
}

// Surface places the shape at a target position
func (o *OpticalSurface) Surface(target core.Vec2) *geometry.Surface {
	return geometry.NewSurface(o.Shape, target, o.Scale, o.Anchors[0])
}

// Parameters implements ParameterHolder
func (o *OpticalSurface) Parameters() []*geometry.Params {
	return []*geometry.Params{o.Shape.Binding().Params()}
}

// hit is the part of an incoming batch that reached a surface
type hit struct {
	data    OpticalData // valid rays only
	valid   []bool      // sized to the incoming batch
	points  []core.Vec2 // collision points of valid rays
	normals []core.Vec2 // normals oriented against valid rays
}

// collide finds which rays reach the surface within its domain, filters the
// batch down to them and evaluates collision points and oriented normals.
func collide(surface *geometry.Surface, in OpticalData, strict bool) hit {
	lines := core.RaysToCoefficients(in.Origins, in.Directions)
	ts := surface.Collide(lines)

	lo, hi := surface.Domain()
	valid := make([]bool, len(ts))
	for i, t := range ts {
		valid[i] = t.Real >= lo && t.Real <= hi
	}

	data := in.Select(valid)
	ts = core.FilterScalars(ts, valid)

	// Evaluate again at the kept parameters rather than reusing unfiltered rows
	points := surface.Evaluate(ts)
	normals := surface.Normal(ts)
	mustFinite("collision point", points)
	mustFinite("surface normal", normals)

	if strict {
		for i, t := range core.PositionOnRay(data.Origins, data.Directions, points) {
			if t.Real <= 0 {
				panic(fmt.Sprintf("optics: collision %d is behind its ray (t=%g)", i, t.Real))
			}
		}
	}

	// Of the two opposite normals, keep the one with dot(normal, ray) <= 0
	for i, n := range normals {
		flip := n.Dot(data.Directions[i]).Real > 0
		normals[i] = core.WhereVec(flip, n.Negate(), n)
	}
	mustFinite("oriented normal", normals)

	return hit{data: data, valid: valid, points: points, normals: normals}
}

// forward runs the interaction step with the given physics
func (o *OpticalSurface) forward(in OpticalData, physics func(directions, normals []core.Vec2) []core.Vec2) OpticalData {
	surface := o.Surface(in.Target)
	out := in
	out.Target = surface.At(o.Anchors[1])

	if in.NumRays() == 0 {
		out.Origins = []core.Vec2{}
		out.Directions = []core.Vec2{}
		out.Blocked = nil
		return out
	}

	h := collide(surface, in, o.Strict)
	directions := physics(h.data.Directions, h.normals)
	mustFinite("outgoing direction", directions)

	out.Origins = h.points
	out.Directions = directions
	out.Blocked = core.Not(h.valid)
	out.CoordBase = h.data.CoordBase
	out.CoordObject = h.data.CoordObject
	return out
}

// ReflectiveSurface is a mirror
type ReflectiveSurface struct {
	OpticalSurface
}

// NewReflectiveSurface creates a mirror anchored at its origin on both sides
func NewReflectiveSurface(shape geometry.Shape) *ReflectiveSurface {
	return &ReflectiveSurface{newOpticalSurface(shape, 1, [2]geometry.Anchor{geometry.AnchorOrigin, geometry.AnchorOrigin})}
}

// Forward implements Element
func (r *ReflectiveSurface) Forward(in OpticalData, sampling Sampling) OpticalData {
	return r.forward(in, Reflection)
}

// RefractiveSurface separates two media of refractive indices N1 (incoming
// side) and N2
type RefractiveSurface struct {
	OpticalSurface
	N1, N2 float64
}

// NewRefractiveSurface creates a refractive surface anchored at its origin on both sides
func NewRefractiveSurface(shape geometry.Shape, n1, n2 float64) *RefractiveSurface {
	return &RefractiveSurface{
		OpticalSurface: newOpticalSurface(shape, 1, [2]geometry.Anchor{geometry.AnchorOrigin, geometry.AnchorOrigin}),
		N1:             n1,
		N2:             n2,
	}
}

// Forward implements Element
func (r *RefractiveSurface) Forward(in OpticalData, sampling Sampling) OpticalData {
	return r.forward(in, func(directions, normals []core.Vec2) []core.Vec2 {
		return Refraction(directions, normals, r.N1, r.N2)
	})
}

func mustFinite(what string, vs []core.Vec2) {
	for i, v := range vs {
		if !v.IsFinite() {
			panic(fmt.Sprintf("optics: non-finite %s at row %d: %v", what, i, v))
		}
	}
}
