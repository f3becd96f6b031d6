package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Line is an implicit line a*x + b*y + c = 0
type Line struct {
	A, B, C Scalar
}

// Eval returns a*x + b*y + c at point p
func (l Line) Eval(p Vec2) Scalar {
	return Add(Add(Mul(l.A, p.X), Mul(l.B, p.Y)), l.C)
}

// RaysToCoefficients returns the implicit line through each ray origin
// along its direction
func RaysToCoefficients(origins, directions []Vec2) []Line {
	checkRays(origins, directions)
	lines := make([]Line, len(origins))
	for i := range origins {
		o, d := origins[i], directions[i]
		lines[i] = Line{
			A: d.Y,
			B: Neg(d.X),
			C: Sub(Mul(d.X, o.Y), Mul(d.Y, o.X)),
		}
	}
	return lines
}

// Rot2D rotates v counter-clockwise by each of the angles (radians)
func Rot2D(v r2.Vec, angles []float64) []r2.Vec {
	out := make([]r2.Vec, len(angles))
	for i, a := range angles {
		out[i] = r2.Rotate(v, a, r2.Vec{})
	}
	return out
}

// PositionOnRay returns t such that origin + t*direction = point, assuming the
// point lies on the ray's line
func PositionOnRay(origins, directions, points []Vec2) []Scalar {
	checkRays(origins, directions)
	if len(points) != len(origins) {
		panic(fmt.Sprintf("core: %d points for %d rays", len(points), len(origins)))
	}
	ts := make([]Scalar, len(origins))
	for i := range origins {
		d := directions[i]
		ts[i] = Div(points[i].Subtract(origins[i]).Dot(d), d.LengthSquared())
	}
	return ts
}

// RayPointSquaredDistance returns the squared distance from the infinite line
// carrying each ray to a target. targets holds either one point, shared by
// every ray, or one point per ray.
func RayPointSquaredDistance(origins, directions, targets []Vec2) []Scalar {
	checkRays(origins, directions)
	if len(targets) != 1 && len(targets) != len(origins) {
		panic(fmt.Sprintf("core: %d targets for %d rays", len(targets), len(origins)))
	}
	out := make([]Scalar, len(origins))
	for i := range origins {
		target := targets[0]
		if len(targets) > 1 {
			target = targets[i]
		}
		d := directions[i]
		cross := d.Cross(target.Subtract(origins[i]))
		out[i] = Div(Square(cross), d.LengthSquared())
	}
	return out
}

func checkRays(origins, directions []Vec2) {
	if len(origins) != len(directions) {
		panic(fmt.Sprintf("core: %d ray origins but %d directions", len(origins), len(directions)))
	}
}
