package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/jbeda/geom"

	"github.com/df07/go-lensmaker/pkg/geometry"
)

// ErrUnsupportedShape is returned for shapes with no planar sketch equivalent
var ErrUnsupportedShape = errors.New("unsupported shape")

// Sketch is a planar curve in a lens profile
type Sketch interface {
	// Start and End are the curve's endpoints
	Start() geom.Coord
	End() geom.Coord

	// Bounds returns the smallest rectangle containing the curve
	Bounds() geom.Rect

	// Transform scales y by sy then shifts it by dy
	Transform(sy, dy float64) (Sketch, error)

	// pathTo continues an open SVG path from Start to End
	pathTo(svg *SVG)
}

func transform(c geom.Coord, sy, dy float64) geom.Coord {
	return geom.Coord{X: c.X, Y: c.Y*sy + dy}
}

// Polyline is a chain of straight segments
type Polyline struct {
	Points []geom.Coord
}

func (p *Polyline) Start() geom.Coord { return p.Points[0] }
func (p *Polyline) End() geom.Coord   { return p.Points[len(p.Points)-1] }

func (p *Polyline) Bounds() geom.Rect {
	r := geom.Rect{Min: p.Points[0], Max: p.Points[0]}
	for _, c := range p.Points[1:] {
		r.ExpandToContainCoord(c)
	}
	return r
}

func (p *Polyline) Transform(sy, dy float64) (Sketch, error) {
	out := &Polyline{Points: make([]geom.Coord, len(p.Points))}
	for i, c := range p.Points {
		out.Points[i] = transform(c, sy, dy)
	}
	return out, nil
}

func (p *Polyline) pathTo(svg *SVG) {
	for _, c := range p.Points[1:] {
		svg.PathLineTo(c)
	}
}

// Bezier is a quadratic Bezier curve
type Bezier struct {
	P0, Ctrl, P1 geom.Coord
}

func (b *Bezier) Start() geom.Coord { return b.P0 }
func (b *Bezier) End() geom.Coord   { return b.P1 }

// At evaluates the curve at t in [0, 1]
func (b *Bezier) At(t float64) geom.Coord {
	u := 1 - t
	return b.P0.Times(u * u).Plus(b.Ctrl.Times(2 * u * t)).Plus(b.P1.Times(t * t))
}

// Bounds includes the curve's interior extrema, not just its control hull
func (b *Bezier) Bounds() geom.Rect {
	r := geom.Rect{Min: b.P0, Max: b.P0}
	r.ExpandToContainCoord(b.P1)
	for _, t := range []float64{
		extremum(b.P0.X, b.Ctrl.X, b.P1.X),
		extremum(b.P0.Y, b.Ctrl.Y, b.P1.Y),
	} {
		if t > 0 && t < 1 {
			r.ExpandToContainCoord(b.At(t))
		}
	}
	return r
}

// extremum returns the parameter where a quadratic Bezier coordinate is
// stationary, or -1 when it is monotonic
func extremum(p0, c, p1 float64) float64 {
	denom := p0 - 2*c + p1
	if denom == 0 {
		return -1
	}
	return (p0 - c) / denom
}

func (b *Bezier) Transform(sy, dy float64) (Sketch, error) {
	return &Bezier{
		P0:   transform(b.P0, sy, dy),
		Ctrl: transform(b.Ctrl, sy, dy),
		P1:   transform(b.P1, sy, dy),
	}, nil
}

func (b *Bezier) pathTo(svg *SVG) {
	svg.PathQuadBezierTo(b.P1, b.Ctrl)
}

// RadiusArc is a circular arc of at most half a circle. Sweep follows the
// SVG convention: true when the angle increases from Start to End.
type RadiusArc struct {
	From, Vertex, To geom.Coord
	Radius           float64
	Sweep            bool
}

func (a *RadiusArc) Start() geom.Coord { return a.From }
func (a *RadiusArc) End() geom.Coord   { return a.To }

func (a *RadiusArc) Bounds() geom.Rect {
	r := geom.Rect{Min: a.From, Max: a.From}
	r.ExpandToContainCoord(a.Vertex)
	r.ExpandToContainCoord(a.To)
	return r
}

// Transform only supports mirroring, other scales would turn the arc into an ellipse
func (a *RadiusArc) Transform(sy, dy float64) (Sketch, error) {
	if math.Abs(sy) != 1 {
		return nil, fmt.Errorf("export: scaling an arc by %g: %w", sy, ErrUnsupportedShape)
	}
	return &RadiusArc{
		From:   transform(a.From, sy, dy),
		Vertex: transform(a.Vertex, sy, dy),
		To:     transform(a.To, sy, dy),
		Radius: a.Radius,
		Sweep:  a.Sweep == (sy > 0),
	}, nil
}

func (a *RadiusArc) pathTo(svg *SVG) {
	svg.PathCircularArcTo(a.To, a.Radius, false, a.Sweep)
}

func coord(s geometry.Shape, t float64) geom.Coord {
	p := geometry.PointAt(s, t).Real()
	return geom.Coord{X: p.X, Y: p.Y}
}

// ShapeToSketch converts a shape with its current coefficients into a sketch
// running from the low to the high end of its domain
func ShapeToSketch(shape geometry.Shape) (Sketch, error) {
	lo, hi := shape.Domain()
	switch s := shape.(type) {
	case *geometry.Line:
		return &Polyline{Points: []geom.Coord{coord(s, lo), coord(s, hi)}}, nil

	case *geometry.Parabola:
		a := s.Coefficient().Real
		r := s.Radius
		return &Bezier{
			P0:   geom.Coord{X: -r, Y: a * r * r},
			Ctrl: geom.Coord{X: 0, Y: -a * r * r},
			P1:   geom.Coord{X: r, Y: a * r * r},
		}, nil

	case *geometry.CircularArc:
		k := s.Curvature().Real
		if k == 0 {
			return &Polyline{Points: []geom.Coord{coord(s, lo), coord(s, hi)}}, nil
		}
		return &RadiusArc{
			From:   coord(s, lo),
			Vertex: coord(s, 0),
			To:     coord(s, hi),
			Radius: math.Abs(1 / k),
			Sweep:  k > 0,
		}, nil

	default:
		return nil, fmt.Errorf("export: %T: %w", shape, ErrUnsupportedShape)
	}
}
