package core

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Scalar is a forward-mode dual number. Real carries the value and Emag the
// derivative with respect to whichever coefficient was seeded for this pass.
type Scalar = dual.Number

// Const returns a scalar with no derivative
func Const(x float64) Scalar {
	return Scalar{Real: x}
}

// Variable returns a scalar seeded with a unit derivative
func Variable(x float64) Scalar {
	return Scalar{Real: x, Emag: 1}
}

// Inf returns +Inf with a zero derivative
func Inf() Scalar {
	return Scalar{Real: math.Inf(1)}
}

// Add returns a + b
func Add(a, b Scalar) Scalar {
	return Scalar{Real: a.Real + b.Real, Emag: a.Emag + b.Emag}
}

// Sub returns a - b
func Sub(a, b Scalar) Scalar {
	return Scalar{Real: a.Real - b.Real, Emag: a.Emag - b.Emag}
}

// Neg returns -a
func Neg(a Scalar) Scalar {
	return Scalar{Real: -a.Real, Emag: -a.Emag}
}

// Mul returns a * b
func Mul(a, b Scalar) Scalar {
	return dual.Mul(a, b)
}

// Div returns a / b. The caller is responsible for b being non-zero.
func Div(a, b Scalar) Scalar {
	return dual.Mul(a, dual.Inv(b))
}

// Scale returns f * a for a constant f
func Scale(f float64, a Scalar) Scalar {
	return dual.Scale(f, a)
}

// Square returns a * a
func Square(a Scalar) Scalar {
	return dual.Mul(a, a)
}

// Sqrt returns the square root of a. The caller is responsible for a being
// strictly positive when the derivative matters.
func Sqrt(a Scalar) Scalar {
	return dual.Sqrt(a)
}

// Where selects a when cond is true and b otherwise. Both branches must
// already be evaluated; the unselected one never leaks into the result.
func Where(cond bool, a, b Scalar) Scalar {
	if cond {
		return a
	}
	return b
}

// IsFinite reports whether both the value and the derivative are finite
func IsFinite(a Scalar) bool {
	return !math.IsNaN(a.Real) && !math.IsInf(a.Real, 0) &&
		!math.IsNaN(a.Emag) && !math.IsInf(a.Emag, 0)
}

// Sign returns -1 for negative values and 1 otherwise
func Sign(a Scalar) float64 {
	if a.Real < 0 {
		return -1
	}
	return 1
}

// Reals extracts the values of a batch of scalars
func Reals(xs []Scalar) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Real
	}
	return out
}

// Consts lifts a batch of float64 values to scalars
func Consts(xs []float64) []Scalar {
	out := make([]Scalar, len(xs))
	for i, x := range xs {
		out[i] = Const(x)
	}
	return out
}
