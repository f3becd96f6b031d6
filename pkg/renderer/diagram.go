package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// Color is an RGB triple in [0, 1]
type Color struct{ R, G, B float64 }

var (
	colorBackground = Color{1, 1, 1}
	colorRay        = Color{1, 0.65, 0}
	colorSurface    = Color{0.27, 0.51, 0.71}
	colorStop       = Color{0, 0, 0}
	colorAnchor     = Color{0.6, 0.6, 0.6}
	colorTarget     = Color{0.9, 0, 0}
)

// surfaceSamples is the number of points used to draw a curve
const surfaceSamples = 200

type polyline struct {
	points []r2.Vec
	color  Color
	width  float64 // pixels
}

type marker struct {
	at    r2.Vec
	color Color
}

// Renderer draws a 2D diagram of an optical system. Its hook records the
// geometry seen during a forward pass; Image then frames and draws it.
type Renderer struct {
	// RayExtension is how far rays are drawn past a loss target, relative to
	// their distance to it
	RayExtension float64

	lines   []polyline
	markers []marker
}

// NewRenderer creates an empty diagram
func NewRenderer() *Renderer {
	return &Renderer{RayExtension: 1.3}
}

// surfaced is any element placed at the target as a geometric surface
type surfaced interface {
	Surface(target core.Vec2) *geometry.Surface
}

// Hook returns an observer recording every element it is called with
func (r *Renderer) Hook() optics.Hook {
	return func(element optics.Element, in, out optics.OpticalData) {
		switch e := element.(type) {
		case *optics.Aperture:
			r.addAperture(e, in.Target)
			r.addSegments(in, out)
		case surfaced:
			s := e.Surface(in.Target)
			r.addLine(s.ToWorld(geometry.Sample(s.Shape, surfaceSamples)), colorSurface, 2)
			r.addMarker(in.Target.Real(), colorAnchor)
			r.addSegments(in, out)
		case *optics.Image:
			t := in.Target.Real()
			r.addLine([]core.Vec2{
				core.NewVec2(t.X-e.Height/2, t.Y),
				core.NewVec2(t.X+e.Height/2, t.Y),
			}, colorTarget, 1)
			r.addExtendedRays(in)
		case optics.LossElement:
			r.addMarker(in.Target.Real(), colorTarget)
			r.addExtendedRays(in)
		}
	}
}

// Render runs a forward pass of element through the hook
func (r *Renderer) Render(element optics.Element, sampling optics.Sampling) optics.OpticalData {
	return optics.Walk(element, optics.DefaultInput(), sampling, r.Hook())
}

func (r *Renderer) addLine(points []core.Vec2, color Color, width float64) {
	line := polyline{points: make([]r2.Vec, len(points)), color: color, width: width}
	for i, p := range points {
		line.points[i] = p.Real()
	}
	r.lines = append(r.lines, line)
}

func (r *Renderer) addMarker(at r2.Vec, color Color) {
	r.markers = append(r.markers, marker{at: at, color: color})
}

func (r *Renderer) addAperture(a *optics.Aperture, target core.Vec2) {
	t := target.Real()
	inner, outer := a.Diameter/2, math.Max(a.Height/2, a.Diameter/2)
	for _, side := range []float64{-1, 1} {
		r.addLine([]core.Vec2{
			core.NewVec2(t.X+side*inner, t.Y),
			core.NewVec2(t.X+side*outer, t.Y),
		}, colorStop, 3)
	}
}

// addSegments draws each surviving ray from its input origin to its collision
func (r *Renderer) addSegments(in, out optics.OpticalData) {
	if out.Blocked == nil {
		return
	}
	from := in.Select(core.Not(out.Blocked)).Origins
	for i, o := range from {
		r.addLine([]core.Vec2{o, out.Origins[i]}, colorRay, 1)
	}
}

// addExtendedRays draws rays through the target line and a bit beyond
func (r *Renderer) addExtendedRays(in optics.OpticalData) {
	ty := in.Target.Y.Real
	for i, o := range in.Origins {
		p, d := o.Real(), in.Directions[i].Real()
		if d.Y == 0 {
			continue
		}
		t := r.RayExtension * (ty - p.Y) / d.Y
		if t <= 0 {
			continue
		}
		end := r2.Add(p, r2.Scale(t, d))
		r.lines = append(r.lines, polyline{points: []r2.Vec{p, end}, color: colorRay, width: 1})
	}
}

// Segments returns the number of recorded polylines
func (r *Renderer) Segments() int {
	return len(r.lines)
}

// Bounds returns the world rectangle containing everything recorded
func (r *Renderer) Bounds() (min, max r2.Vec, err error) {
	min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(p r2.Vec) {
		min = r2.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y)}
		max = r2.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y)}
	}
	for _, l := range r.lines {
		for _, p := range l.points {
			grow(p)
		}
	}
	for _, m := range r.markers {
		grow(m.at)
	}
	if math.IsInf(min.X, 1) {
		return min, max, fmt.Errorf("renderer: nothing to draw")
	}
	return min, max, nil
}

// Draw renders the diagram onto a new context
func (r *Renderer) Draw(config CameraConfig) (*gg.Context, error) {
	min, max, err := r.Bounds()
	if err != nil {
		return nil, err
	}
	camera := NewCamera(config, min, max)

	dc := gg.NewContext(config.Width, config.Height)
	dc.DrawRectangle(0, 0, float64(config.Width), float64(config.Height))
	dc.SetRGB(colorBackground.R, colorBackground.G, colorBackground.B)
	dc.Fill()

	// Rays first so that surfaces stay visible
	for _, pass := range []bool{true, false} {
		for _, l := range r.lines {
			if (l.color == colorRay) != pass {
				continue
			}
			for i, p := range l.points {
				x, y := camera.Project(p)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.SetRGB(l.color.R, l.color.G, l.color.B)
			dc.SetLineWidth(l.width)
			dc.Stroke()
		}
	}

	for _, m := range r.markers {
		x, y := camera.Project(m.at)
		dc.DrawCircle(x, y, 3)
		dc.SetRGB(m.color.R, m.color.G, m.color.B)
		dc.Fill()
	}
	return dc, nil
}

// Image renders the diagram to an image
func (r *Renderer) Image(config CameraConfig) (image.Image, error) {
	dc, err := r.Draw(config)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SavePNG renders the diagram to a PNG file
func (r *Renderer) SavePNG(path string, config CameraConfig) error {
	dc, err := r.Draw(config)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("renderer: saving %s: %w", path, err)
	}
	return nil
}
