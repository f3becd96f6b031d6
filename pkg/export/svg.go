package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"
)

// SVG serialization helper. The first write error is kept and later writes
// are skipped.
type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// Err returns the first write error
func (svg *SVG) Err() error {
	return svg.err
}

func extraparams(s []string) string {
	var b strings.Builder
	for _, p := range s {
		switch {
		case strings.Contains(p, "="):
			b.WriteString(p + " ")
		case p != "":
			fmt.Fprintf(&b, "style='%s' ", p)
		}
	}
	return b.String()
}

func onezero(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Start opens the document. The optical axis points up, so y is flipped
// inside a group that End closes.
func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
<g transform="scale(1,-1)">
`, viewBox.Min.X, -viewBox.Max.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</g>\n</svg>\n")
}

func (svg *SVG) Line(p1 geom.Coord, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) StartPath(p1 geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", extraparams(s), p1.X, p1.Y)
}

func (svg *SVG) EndPath(closed bool) {
	if closed {
		svg.printf(" Z")
	}
	svg.printf("'/>\n")
}

func (svg *SVG) PathLineTo(p geom.Coord) {
	svg.printf("\n  L%f,%f", p.X, p.Y)
}

func (svg *SVG) PathCircularArcTo(p geom.Coord, r float64, largeArc, sweep bool) {
	svg.printf("\n  A%f,%f 0 %s,%s %f,%f", r, r, onezero(largeArc), onezero(sweep), p.X, p.Y)
}

func (svg *SVG) PathQuadBezierTo(p, ctrl1 geom.Coord) {
	svg.printf("\n  Q%f,%f %f,%f", ctrl1.X, ctrl1.Y, p.X, p.Y)
}
