package geometry

import "github.com/df07/go-lensmaker/pkg/core"

// Parabola is the curve y = a*x^2 parametrized by x
type Parabola struct {
	Radius float64 // half width of the aperture
	coeffs Binding
}

// NewParabola creates a parabola owning a learnable coefficient
func NewParabola(radius, a float64) *Parabola {
	return &Parabola{Radius: radius, coeffs: Own(a)}
}

// Share returns a parabola whose coefficient is scale times this one's.
// Used for symmetric lenses where both faces follow one parameter.
func (p *Parabola) Share(scale float64) *Parabola {
	return &Parabola{Radius: p.Radius, coeffs: p.coeffs.Share(scale)}
}

// Binding implements Shape
func (p *Parabola) Binding() Binding {
	return p.coeffs
}

// Coefficient returns the current a
func (p *Parabola) Coefficient() core.Scalar {
	return p.coeffs.Values()[0]
}

// Domain implements Shape
func (p *Parabola) Domain() (float64, float64) {
	return -p.Radius, p.Radius
}

// Evaluate implements Shape
func (p *Parabola) Evaluate(xs []core.Scalar) []core.Vec2 {
	a := p.Coefficient()
	points := make([]core.Vec2, len(xs))
	for i, x := range xs {
		points[i] = core.Vec2{X: x, Y: core.Mul(a, core.Square(x))}
	}
	return points
}

// Normal implements Shape
func (p *Parabola) Normal(xs []core.Scalar) []core.Vec2 {
	return p.normals(p.Coefficient(), xs)
}

func (p *Parabola) normals(a core.Scalar, xs []core.Scalar) []core.Vec2 {
	normals := make([]core.Vec2, len(xs))
	for i, x := range xs {
		normals[i] = core.Vec2{X: core.Scale(-2, core.Mul(a, x)), Y: core.Const(1)}.Normalize()
	}
	return normals
}

// Collide implements Shape. Substituting y = A*x^2 into a*x + b*y + c = 0
// gives (b*A)*x^2 + a*x + c = 0, solved with the root nearest the vertex.
func (p *Parabola) Collide(lines []core.Line) Collisions {
	A := p.Coefficient()
	hits := Collisions{
		T:       make([]core.Scalar, len(lines)),
		Points:  make([]core.Vec2, len(lines)),
		Normals: make([]core.Vec2, len(lines)),
	}
	for i, line := range lines {
		x, _ := quadraticRoots(core.Mul(line.B, A), line.A, line.C)
		finite := core.IsFinite(x)
		safeX := core.Where(finite, x, core.Const(0))

		hits.T[i] = x
		hits.Points[i] = core.WhereVec(finite, core.Vec2{X: x, Y: core.Mul(A, core.Square(safeX))}, core.InfVec2())
		hits.Normals[i] = p.normals(A, []core.Scalar{safeX})[0]
	}
	return hits
}
