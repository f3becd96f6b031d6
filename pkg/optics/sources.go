package optics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/df07/go-lensmaker/pkg/core"
)

// axis is the direction of the optical axis
var axis = r2.Vec{X: 0, Y: 1}

// linspace returns n evenly spaced values over [lo, hi]; a single sample sits
// at the centre
func linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{(lo + hi) / 2}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

func normalizedCoords(values []float64, lo, width float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if width == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / width
	}
	return out
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func lift(vs []r2.Vec) []core.Vec2 {
	out := make([]core.Vec2, len(vs))
	for i, v := range vs {
		out[i] = core.FromR2(v)
	}
	return out
}

// PointSource emits a fan of rays from a point off the axis
type PointSource struct {
	BeamAngle   float64 // total angle of the fan, degrees
	Height      float64 // distance of the point from the axis
	ObjectCoord float64
}

// NewPointSource creates a point source on the axis
func NewPointSource(beamAngle float64) *PointSource {
	return &PointSource{BeamAngle: beamAngle}
}

// Forward implements Element
func (p *PointSource) Forward(in OpticalData, sampling Sampling) OpticalData {
	beam := p.BeamAngle * math.Pi / 180
	angles := linspace(-beam/2, beam/2, sampling.Rays)

	origin := in.Target.Add(core.NewVec2(p.Height, 0))
	origins := make([]core.Vec2, len(angles))
	for i := range origins {
		origins[i] = origin
	}
	directions := lift(core.Rot2D(axis, angles))

	out := in.Append(origins, directions,
		normalizedCoords(angles, -beam/2, beam),
		fill(len(angles), p.ObjectCoord))
	out.Blocked = nil
	return out
}

// PointSourceAtInfinity emits a beam of parallel rays
type PointSourceAtInfinity struct {
	BeamDiameter float64
	Angle        float64 // angle to the optical axis, degrees
	ObjectCoord  float64
	Margin       float64 // distance kept free at both edges of the beam
}

// NewPointSourceAtInfinity creates a parallel beam
func NewPointSourceAtInfinity(beamDiameter, angle float64) *PointSourceAtInfinity {
	return &PointSourceAtInfinity{BeamDiameter: beamDiameter, Angle: angle, Margin: 0.1}
}

// Forward implements Element
func (p *PointSourceAtInfinity) Forward(in OpticalData, sampling Sampling) OpticalData {
	half := p.BeamDiameter / 2
	xs := linspace(-half+p.Margin, half-p.Margin, sampling.Rays)

	origins := make([]core.Vec2, len(xs))
	for i, x := range xs {
		origins[i] = in.Target.Add(core.NewVec2(x, 0))
	}
	direction := core.FromR2(core.Rot2D(axis, []float64{p.Angle * math.Pi / 180})[0])
	directions := make([]core.Vec2, len(xs))
	for i := range directions {
		directions[i] = direction
	}

	out := in.Append(origins, directions,
		normalizedCoords(xs, -half, p.BeamDiameter),
		fill(len(xs), p.ObjectCoord))
	out.Blocked = nil
	return out
}

// ObjectAtInfinity is an extended object far away, seen under an angular
// size. It is sampled as parallel beams, one per object point.
type ObjectAtInfinity struct {
	BeamDiameter float64
	AngularSize  float64 // degrees
	Angle        float64 // angle of the object's centre to the axis, degrees
}

// NewObjectAtInfinity creates an object at infinity centred on the axis
func NewObjectAtInfinity(beamDiameter, angularSize float64) *ObjectAtInfinity {
	return &ObjectAtInfinity{BeamDiameter: beamDiameter, AngularSize: angularSize}
}

// Forward implements Element
func (o *ObjectAtInfinity) Forward(in OpticalData, sampling Sampling) OpticalData {
	angles := linspace(-o.AngularSize/2, o.AngularSize/2, sampling.Object)
	coords := normalizedCoords(angles, -o.AngularSize/2, o.AngularSize)

	beams := NewSequence()
	for i, angle := range angles {
		beam := NewPointSourceAtInfinity(o.BeamDiameter, angle+o.Angle)
		beam.ObjectCoord = coords[i]
		beams.Append(beam)
	}
	out := beams.Forward(in, sampling)
	out.Blocked = nil
	return out
}
