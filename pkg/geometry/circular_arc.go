package geometry

import (
	"math"

	"github.com/df07/go-lensmaker/pkg/core"
)

// CircularArc is the cap of a circle through the origin, tangent to the x
// axis, with centre (0, 1/K). The learnable coefficient is the signed
// curvature K so that a flat surface (K = 0) is representable. The arc is
// parametrized by x and its sag is K*x^2 / (1 + sqrt(1 - K^2*x^2)).
type CircularArc struct {
	Radius float64 // half width of the aperture
	coeffs Binding
}

// NewCircularArc creates an arc owning a learnable curvature
func NewCircularArc(radius, curvature float64) *CircularArc {
	return &CircularArc{Radius: radius, coeffs: Own(curvature)}
}

// Share returns an arc whose curvature is scale times this one's
func (c *CircularArc) Share(scale float64) *CircularArc {
	return &CircularArc{Radius: c.Radius, coeffs: c.coeffs.Share(scale)}
}

// Binding implements Shape
func (c *CircularArc) Binding() Binding {
	return c.coeffs
}

// Curvature returns the current K
func (c *CircularArc) Curvature() core.Scalar {
	return c.coeffs.Values()[0]
}

// ArcRadius returns the signed radius of the circle, +Inf when flat
func (c *CircularArc) ArcRadius() float64 {
	k := c.Curvature().Real
	if k == 0 {
		return math.Inf(1)
	}
	return 1 / k
}

// Domain implements Shape. The half width is clamped to the circle's radius
// 1/|K| so that the domain edge, and the extent anchor, always lie on the arc.
func (c *CircularArc) Domain() (float64, float64) {
	r := c.Radius
	if k := math.Abs(c.Curvature().Real); k*r > 1 {
		r = 1 / k
	}
	return -r, r
}

// Evaluate implements Shape. Parameters beyond the circle give +Inf.
func (c *CircularArc) Evaluate(xs []core.Scalar) []core.Vec2 {
	k := c.Curvature()
	points := make([]core.Vec2, len(xs))
	for i, x := range xs {
		points[i] = core.Vec2{X: x, Y: sag(k, x)}
	}
	return points
}

// Normal implements Shape. (-K*x, sqrt(1 - K^2*x^2)) is unit length by construction.
func (c *CircularArc) Normal(xs []core.Scalar) []core.Vec2 {
	k := c.Curvature()
	normals := make([]core.Vec2, len(xs))
	for i, x := range xs {
		normals[i] = core.Vec2{X: core.Neg(core.Mul(k, x)), Y: cosine(k, x)}
	}
	return normals
}

// Collide implements Shape. Each line is walked as p0 + s*u, with p0 the foot
// of the perpendicular from the origin and u a unit direction. The circle
// K*|p|^2 - 2*p.y = 0 then gives K*s^2 + 2*(K*p0.u - u.y)*s + K*|p0|^2 - 2*p0.y = 0.
// Of the two intersections, only those on the cap through the origin
// (K*y <= 1) are kept, preferring the one nearest the axis.
func (c *CircularArc) Collide(lines []core.Line) Collisions {
	k := c.Curvature()
	hits := Collisions{
		T:       make([]core.Scalar, len(lines)),
		Points:  make([]core.Vec2, len(lines)),
		Normals: make([]core.Vec2, len(lines)),
	}
	for i, line := range lines {
		n2 := core.Add(core.Square(line.A), core.Square(line.B))
		zero := n2.Real == 0
		safeN2 := core.Where(zero, core.Const(1), n2)
		invNorm := core.Div(core.Const(1), core.Sqrt(safeN2))

		u := core.Vec2{X: line.B, Y: core.Neg(line.A)}.Multiply(invNorm)
		p0 := core.Vec2{X: line.A, Y: line.B}.Multiply(core.Neg(core.Div(line.C, safeN2)))

		alpha := k
		beta := core.Scale(2, core.Sub(core.Mul(k, p0.Dot(u)), u.Y))
		gamma := core.Sub(core.Mul(k, p0.LengthSquared()), core.Scale(2, p0.Y))
		sNear, sFar := quadraticRoots(alpha, beta, gamma)

		near, nearOK := c.candidate(k, p0, u, sNear)
		far, farOK := c.candidate(k, p0, u, sFar)
		preferFar := farOK && (!nearOK || math.Abs(far.X.Real) < math.Abs(near.X.Real))

		p := core.WhereVec(preferFar, far, near)
		ok := !zero && (nearOK || farOK)
		p = core.WhereVec(ok, p, core.InfVec2())
		safeX := core.Where(ok, p.X, core.Const(0))

		hits.T[i] = p.X
		hits.Points[i] = p
		hits.Normals[i] = core.Vec2{X: core.Neg(core.Mul(k, safeX)), Y: cosine(k, safeX)}
	}
	return hits
}

func (c *CircularArc) candidate(k core.Scalar, p0, u core.Vec2, s core.Scalar) (core.Vec2, bool) {
	finite := core.IsFinite(s)
	safeS := core.Where(finite, s, core.Const(0))
	p := p0.Add(u.Multiply(safeS))
	onCap := finite && core.Mul(k, p.Y).Real <= 1
	return p, onCap
}

const edgeTolerance = 1e-12

// sag returns K*x^2 / (1 + sqrt(1 - K^2*x^2)), +Inf outside the circle
func sag(k, x core.Scalar) core.Scalar {
	cos := cosine(k, x)
	outside := !core.IsFinite(cos)
	safeCos := core.Where(outside, core.Const(0), cos)
	y := core.Div(core.Mul(k, core.Square(x)), core.Add(core.Const(1), safeCos))
	return core.Where(outside, core.Inf(), y)
}

// cosine returns sqrt(1 - K^2*x^2), +Inf outside the circle
func cosine(k, x core.Scalar) core.Scalar {
	arg := core.Sub(core.Const(1), core.Square(core.Mul(k, x)))
	// rounding at x = 1/|K| may leave arg a few ulps either side of zero
	edge := math.Abs(arg.Real) <= edgeTolerance
	outside := arg.Real < 0 && !edge
	root := core.Sqrt(core.Where(outside || edge, core.Const(1), arg))
	root = core.Where(edge, core.Const(0), root)
	return core.Where(outside, core.Inf(), root)
}
