package geometry

import (
	"math"

	"github.com/df07/go-lensmaker/pkg/core"
)

const parallelEpsilon = 1e-8

// Line is the straight surface a*x + b*y + c = 0 parametrized by x.
// Vertical lines (b = 0) cannot be represented.
type Line struct {
	Radius float64 // half width of the aperture
	coeffs Binding
}

// NewLine creates a line owning learnable coefficients (a, b, c)
func NewLine(radius, a, b, c float64) *Line {
	return &Line{Radius: radius, coeffs: Own(a, b, c)}
}

// NewFixedLine creates a line whose coefficients are not optimized
func NewFixedLine(radius, a, b, c float64) *Line {
	return &Line{Radius: radius, coeffs: Fixed(a, b, c)}
}

// Share returns a line referencing the same coefficients scaled by scale
func (l *Line) Share(scale float64) *Line {
	return &Line{Radius: l.Radius, coeffs: l.coeffs.Share(scale)}
}

// Binding implements Shape
func (l *Line) Binding() Binding {
	return l.coeffs
}

// Coefficients returns the current (a, b, c)
func (l *Line) Coefficients() (a, b, c core.Scalar) {
	v := l.coeffs.Values()
	return v[0], v[1], v[2]
}

// Domain implements Shape
func (l *Line) Domain() (float64, float64) {
	return -l.Radius, l.Radius
}

// Evaluate implements Shape
func (l *Line) Evaluate(xs []core.Scalar) []core.Vec2 {
	a, b, c := l.Coefficients()
	points := make([]core.Vec2, len(xs))
	for i, x := range xs {
		y := core.Neg(core.Div(core.Add(core.Mul(a, x), c), b))
		points[i] = core.Vec2{X: x, Y: y}
	}
	return points
}

// Normal implements Shape. The normal of a line is the same everywhere.
func (l *Line) Normal(xs []core.Scalar) []core.Vec2 {
	a, b, _ := l.Coefficients()
	n := core.Vec2{X: a, Y: b}.Normalize()
	normals := make([]core.Vec2, len(xs))
	for i := range normals {
		normals[i] = n
	}
	return normals
}

// Collide implements Shape by solving the 2x2 system formed by the shape's
// coefficients and each line's. Parallel lines yield (+Inf, +Inf).
func (l *Line) Collide(lines []core.Line) Collisions {
	a1, b1, c1 := l.Coefficients()
	n := core.Vec2{X: a1, Y: b1}.Normalize()

	hits := Collisions{
		T:       make([]core.Scalar, len(lines)),
		Points:  make([]core.Vec2, len(lines)),
		Normals: make([]core.Vec2, len(lines)),
	}
	for i, line := range lines {
		det := core.Sub(core.Mul(a1, line.B), core.Mul(line.A, b1))
		parallel := math.Abs(det.Real) < parallelEpsilon
		safeDet := core.Where(parallel, core.Const(1), det)

		x := core.Div(core.Sub(core.Mul(b1, line.C), core.Mul(line.B, c1)), safeDet)
		y := core.Div(core.Sub(core.Mul(c1, line.A), core.Mul(line.C, a1)), safeDet)
		p := core.WhereVec(parallel, core.InfVec2(), core.Vec2{X: x, Y: y})

		hits.T[i] = p.X
		hits.Points[i] = p
		hits.Normals[i] = n
	}
	return hits
}
