package geometry

import "github.com/df07/go-lensmaker/pkg/core"

// Collisions holds one intersection per input line. Rows without a usable
// intersection carry +Inf in T and Points so that domain filtering drops them.
type Collisions struct {
	T       []core.Scalar // shape parameter of the intersection
	Points  []core.Vec2   // intersection points in the shape's local frame
	Normals []core.Vec2   // unit normals, orientation unspecified
}

// Shape is a planar curve on the symmetric parameter domain [-r, r]
type Shape interface {
	// Domain returns the parameter bounds of the physical surface
	Domain() (lo, hi float64)

	// Evaluate maps parameters to points in the local frame
	Evaluate(ts []core.Scalar) []core.Vec2

	// Normal returns unit normals at the given parameters. Either orientation may be returned.
	Normal(ts []core.Scalar) []core.Vec2

	// Collide intersects the curve with a batch of implicit lines
	Collide(lines []core.Line) Collisions

	// Binding exposes the coefficient storage backing the shape
	Binding() Binding
}

// PointAt evaluates a shape at a single parameter
func PointAt(s Shape, t float64) core.Vec2 {
	return s.Evaluate([]core.Scalar{core.Const(t)})[0]
}

// NormalAt returns the normal of a shape at a single parameter
func NormalAt(s Shape, t float64) core.Vec2 {
	return s.Normal([]core.Scalar{core.Const(t)})[0]
}

// Sample evaluates a shape at n evenly spaced parameters across its domain
func Sample(s Shape, n int) []core.Vec2 {
	lo, hi := s.Domain()
	ts := make([]core.Scalar, n)
	for i := range ts {
		f := 0.5
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		ts[i] = core.Const(lo + f*(hi-lo))
	}
	return s.Evaluate(ts)
}

// quadraticRoots solves alpha*x^2 + beta*x + gamma = 0. near is the root
// closest to x = 0, computed as 2*gamma / (-beta - sgn(beta)*sqrt(delta)): its
// denominator is the one of largest magnitude, so it stays finite and
// continuous as alpha goes to zero, where it becomes -gamma/beta. far is the
// other root. Undefined roots (negative discriminant, vanishing denominator,
// alpha = 0 for far) are +Inf.
func quadraticRoots(alpha, beta, gamma core.Scalar) (near, far core.Scalar) {
	delta := core.Sub(core.Square(beta), core.Scale(4, core.Mul(alpha, gamma)))
	negative := delta.Real < 0
	sqrtDelta := core.Sqrt(core.Where(delta.Real <= 0, core.Const(1), delta))
	sqrtDelta = core.Where(delta.Real <= 0, core.Const(0), sqrtDelta)

	denom := core.Sub(core.Neg(beta), core.Scale(core.Sign(beta), sqrtDelta))
	degenerate := negative || isClose(denom.Real, 0)
	safeDenom := core.Where(degenerate, core.Const(1), denom)
	near = core.Where(degenerate, core.Inf(), core.Div(core.Scale(2, gamma), safeDenom))

	flat := negative || isClose(alpha.Real, 0)
	safeAlpha := core.Where(flat, core.Const(1), alpha)
	far = core.Where(flat, core.Inf(), core.Div(denom, core.Scale(2, safeAlpha)))
	return near, far
}

func isClose(a, b float64) bool {
	const rtol, atol = 1e-5, 1e-8
	d := a - b
	if d < 0 {
		d = -d
	}
	if b < 0 {
		b = -b
	}
	return d <= atol+rtol*b
}
