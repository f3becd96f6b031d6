package geometry

import (
	"fmt"

	"github.com/df07/go-lensmaker/pkg/core"
)

// Anchor names a reference point on a surface
type Anchor string

const (
	// AnchorOrigin is the vertex of the shape, local (0, 0)
	AnchorOrigin Anchor = "origin"
	// AnchorExtent is the projection on the axis of the domain edge, local (0, y(hi))
	AnchorExtent Anchor = "extent"
)

// Surface places a shape in world space. Local point (x, y) maps to
// O + (x, Scale*y), where O is chosen so that Anchor lands on Pos.
type Surface struct {
	Shape  Shape
	Pos    core.Vec2
	Scale  float64
	Anchor Anchor
}

// NewSurface creates a surface. Scale must be non-zero; -1 mirrors the shape
// along the optical axis.
func NewSurface(shape Shape, pos core.Vec2, scale float64, anchor Anchor) *Surface {
	if scale == 0 {
		panic("geometry: surface scale must be non-zero")
	}
	return &Surface{Shape: shape, Pos: pos, Scale: scale, Anchor: anchor}
}

// offset returns the world-space displacement of an anchor from the local origin
func (s *Surface) offset(anchor Anchor) core.Vec2 {
	switch anchor {
	case AnchorOrigin:
		return core.NewVec2(0, 0)
	case AnchorExtent:
		_, hi := s.Shape.Domain()
		edge := PointAt(s.Shape, hi)
		return core.Vec2{X: core.Const(0), Y: core.Scale(s.Scale, edge.Y)}
	default:
		panic(fmt.Sprintf("geometry: unknown anchor %q", anchor))
	}
}

// Origin returns the world position of the shape's local origin
func (s *Surface) Origin() core.Vec2 {
	return s.Pos.Subtract(s.offset(s.Anchor))
}

// At returns the world position of an anchor
func (s *Surface) At(anchor Anchor) core.Vec2 {
	return s.Origin().Add(s.offset(anchor))
}

// Domain returns the parameter bounds of the shape
func (s *Surface) Domain() (float64, float64) {
	return s.Shape.Domain()
}

// ToWorld maps local points to world space
func (s *Surface) ToWorld(points []core.Vec2) []core.Vec2 {
	o := s.Origin()
	out := make([]core.Vec2, len(points))
	for i, p := range points {
		out[i] = core.Vec2{X: core.Add(o.X, p.X), Y: core.Add(o.Y, core.Scale(s.Scale, p.Y))}
	}
	return out
}

// Evaluate returns world points at the given parameters
func (s *Surface) Evaluate(ts []core.Scalar) []core.Vec2 {
	return s.ToWorld(s.Shape.Evaluate(ts))
}

// Normal returns world unit normals at the given parameters
func (s *Surface) Normal(ts []core.Scalar) []core.Vec2 {
	local := s.Shape.Normal(ts)
	out := make([]core.Vec2, len(local))
	for i, n := range local {
		out[i] = core.Vec2{X: n.X, Y: core.Scale(1/s.Scale, n.Y)}.Normalize()
	}
	return out
}

// Collide intersects world-space lines with the shape and returns the shape
// parameter of each intersection (+Inf where there is none).
// A world line a*X + b*Y + c = 0 becomes a*x + (b*Scale)*y + (c + a*Ox + b*Oy) = 0
// in the local frame.
func (s *Surface) Collide(lines []core.Line) []core.Scalar {
	o := s.Origin()
	local := make([]core.Line, len(lines))
	for i, l := range lines {
		local[i] = core.Line{
			A: l.A,
			B: core.Scale(s.Scale, l.B),
			C: core.Add(l.C, core.Add(core.Mul(l.A, o.X), core.Mul(l.B, o.Y))),
		}
	}
	return s.Shape.Collide(local).T
}
