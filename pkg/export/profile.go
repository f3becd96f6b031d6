package export

import (
	"fmt"
	"io"

	"github.com/jbeda/geom"

	"github.com/df07/go-lensmaker/pkg/optics"
)

// Profile is the cross-section outline of a lens: front curve, outer edge,
// back curve. The half with x >= 0 revolved around the optical axis gives the
// lens solid.
type Profile struct {
	Front, Edge, Back Sketch
	InnerThickness    float64
}

// LensProfile builds the outline of a lens from its current coefficients,
// with the front vertex at the origin
func LensProfile(lens *optics.Lens) (*Profile, error) {
	inner := lens.InnerThickness()

	front, err := surfaceSketch(lens.Front, 0)
	if err != nil {
		return nil, fmt.Errorf("export: front surface: %w", err)
	}
	back, err := surfaceSketch(lens.Back, inner)
	if err != nil {
		return nil, fmt.Errorf("export: back surface: %w", err)
	}

	edge := &Polyline{Points: []geom.Coord{rightmost(front), rightmost(back)}}
	return &Profile{Front: front, Edge: edge, Back: back, InnerThickness: inner}, nil
}

func surfaceSketch(s *optics.RefractiveSurface, dy float64) (Sketch, error) {
	sketch, err := ShapeToSketch(s.Shape)
	if err != nil {
		return nil, err
	}
	return sketch.Transform(s.Scale, dy)
}

// rightmost is the endpoint with the largest x, either end depending on how
// the curve is parametrized
func rightmost(s Sketch) geom.Coord {
	if s.End().X >= s.Start().X {
		return s.End()
	}
	return s.Start()
}

// Bounds returns the rectangle containing the whole outline
func (p *Profile) Bounds() geom.Rect {
	r := p.Front.Bounds()
	for _, s := range []Sketch{p.Edge, p.Back} {
		b := s.Bounds()
		r.ExpandToContainCoord(b.Min)
		r.ExpandToContainCoord(b.Max)
	}
	return r
}

// Draw writes the outline as one closed path: along the front curve, up the
// edge, back along the back curve and down the axis
func (p *Profile) Draw(svg *SVG, s ...string) {
	front := p.Front
	if front.End() != rightmost(front) {
		front = reversed(front)
	}
	back := p.Back
	if back.Start() != rightmost(back) {
		back = reversed(back)
	}

	svg.StartPath(front.Start(), s...)
	front.pathTo(svg)
	svg.PathLineTo(back.Start())
	back.pathTo(svg)
	svg.EndPath(true)
}

func reversed(s Sketch) Sketch {
	switch v := s.(type) {
	case *Polyline:
		points := make([]geom.Coord, len(v.Points))
		for i, c := range v.Points {
			points[len(points)-1-i] = c
		}
		return &Polyline{Points: points}
	case *Bezier:
		return &Bezier{P0: v.P1, Ctrl: v.Ctrl, P1: v.P0}
	case *RadiusArc:
		return &RadiusArc{From: v.To, Vertex: v.Vertex, To: v.From, Radius: v.Radius, Sweep: !v.Sweep}
	}
	return s
}

// WriteSVG writes the outline as a standalone SVG document
func (p *Profile) WriteSVG(w io.Writer) error {
	return WriteSVG(w, []*Profile{p})
}

// WriteSVG writes several lens outlines stacked along the axis, each shifted
// by its position in the optical system
func WriteSVG(w io.Writer, profiles []*Profile, offsets ...float64) error {
	if len(profiles) == 0 {
		return fmt.Errorf("export: no lens to write")
	}
	shifted := make([]*Profile, len(profiles))
	for i, p := range profiles {
		dy := 0.0
		if i < len(offsets) {
			dy = offsets[i]
		}
		s, err := p.shift(dy)
		if err != nil {
			return err
		}
		shifted[i] = s
	}

	view := shifted[0].Bounds()
	for _, p := range shifted[1:] {
		b := p.Bounds()
		view.ExpandToContainCoord(b.Min)
		view.ExpandToContainCoord(b.Max)
	}
	margin := 0.05 * (view.Width() + view.Height())
	view.Min = view.Min.Minus(geom.Coord{X: margin, Y: margin})
	view.Max = view.Max.Plus(geom.Coord{X: margin, Y: margin})

	svg := NewSVG(w)
	svg.Start(view)
	for _, p := range shifted {
		p.Draw(svg, "fill:lightblue;stroke:black;stroke-width:0.05")
	}
	svg.End()
	return svg.Err()
}

func (p *Profile) shift(dy float64) (*Profile, error) {
	out := &Profile{InnerThickness: p.InnerThickness}
	var err error
	if out.Front, err = p.Front.Transform(1, dy); err != nil {
		return nil, err
	}
	if out.Edge, err = p.Edge.Transform(1, dy); err != nil {
		return nil, err
	}
	if out.Back, err = p.Back.Transform(1, dy); err != nil {
		return nil, err
	}
	return out, nil
}

// Lenses walks an optical system and returns every lens with the axial
// position of its front vertex
func Lenses(element optics.Element) ([]*optics.Lens, []float64) {
	var lenses []*optics.Lens
	var offsets []float64

	// An empty batch is enough to move the target through the system
	sampling := optics.Sampling{}
	var walk func(e optics.Element, in optics.OpticalData) optics.OpticalData
	walk = func(e optics.Element, in optics.OpticalData) optics.OpticalData {
		switch v := e.(type) {
		case *optics.Sequence:
			data := in
			for _, child := range v.Elements {
				data = walk(child, data)
			}
			return data
		case *optics.Lens:
			lenses = append(lenses, v)
			offsets = append(offsets, v.Front.Surface(in.Target).Origin().Y.Real)
		}
		return e.Forward(in, sampling)
	}
	walk(element, optics.DefaultInput())
	return lenses, offsets
}
