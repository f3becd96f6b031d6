package core

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 represents a 2D vector with differentiable components
type Vec2 struct {
	X, Y Scalar
}

// NewVec2 creates a Vec2 from constant components
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: Const(x), Y: Const(y)}
}

// FromR2 lifts a detached vector to a constant Vec2
func FromR2(v r2.Vec) Vec2 {
	return NewVec2(v.X, v.Y)
}

// Real drops the derivative part
func (v Vec2) Real() r2.Vec {
	return r2.Vec{X: v.X.Real, Y: v.Y.Real}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{Add(v.X, other.X), Add(v.Y, other.Y)}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{Sub(v.X, other.X), Sub(v.Y, other.Y)}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(s Scalar) Vec2 {
	return Vec2{Mul(v.X, s), Mul(v.Y, s)}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) Scalar {
	return Add(Mul(v.X, other.X), Mul(v.Y, other.Y))
}

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(other Vec2) Scalar {
	return Sub(Mul(v.X, other.Y), Mul(v.Y, other.X))
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec2) LengthSquared() Scalar {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vec2) Length() Scalar {
	return Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l2 := v.LengthSquared()
	zero := l2.Real == 0
	safe := Where(zero, Const(1), l2)
	inv := Div(Const(1), Sqrt(safe))
	return WhereVec(zero, v, v.Multiply(inv))
}

// Negate returns the negative of the vector
func (v Vec2) Negate() Vec2 {
	return Vec2{Neg(v.X), Neg(v.Y)}
}

// IsFinite reports whether both components are finite
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// WhereVec selects a when cond is true and b otherwise
func WhereVec(cond bool, a, b Vec2) Vec2 {
	if cond {
		return a
	}
	return b
}

// InfVec2 is the placeholder for an undefined point
func InfVec2() Vec2 {
	return Vec2{Inf(), Inf()}
}
