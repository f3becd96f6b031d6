package optics

import (
	"github.com/df07/go-lensmaker/pkg/core"
)

// Reflection mirrors each direction about its normal: r = d - 2*dot(d,n)*n
func Reflection(directions, normals []core.Vec2) []core.Vec2 {
	out := make([]core.Vec2, len(directions))
	for i, d := range directions {
		n := normals[i]
		out[i] = d.Subtract(n.Multiply(core.Scale(2, d.Dot(n))))
	}
	return out
}

// Refraction applies Snell's law going from index n1 into n2. Normals must
// point against the incoming rays. Beyond the critical angle the ray is
// clamped to the grazing direction along the surface instead of being
// reflected, which keeps the result finite and unit length.
func Refraction(directions, normals []core.Vec2, n1, n2 float64) []core.Vec2 {
	eta := n1 / n2
	out := make([]core.Vec2, len(directions))
	for i, d := range directions {
		n := normals[i]
		cosI := core.Neg(d.Dot(n))
		sin2T := core.Scale(eta*eta, core.Sub(core.Const(1), core.Square(cosI)))

		// 1 - sin^2(t), clamped at the critical angle
		arg := core.Sub(core.Const(1), sin2T)
		clamped := arg.Real <= 0
		cosT := core.Sqrt(core.Where(clamped, core.Const(1), arg))
		cosT = core.Where(clamped, core.Const(0), cosT)

		perp := d.Add(n.Multiply(cosI)).Multiply(core.Const(eta))
		refracted := perp.Subtract(n.Multiply(cosT))
		out[i] = refracted.Normalize()
	}
	return out
}
