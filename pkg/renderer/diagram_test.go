package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

func mirrorSystem() *optics.Sequence {
	return optics.NewSequence(
		optics.NewPointSourceAtInfinity(10, 0),
		optics.NewGap(20),
		optics.NewReflectiveSurface(geometry.NewParabola(6, -0.05)),
		optics.NewGap(-5),
		optics.NewFocalPoint(),
	)
}

func TestRenderer_RecordsSurfacesAndRays(t *testing.T) {
	r := NewRenderer()
	out := r.Render(mirrorSystem(), optics.Sampling{Rays: 5, Object: 1})

	if out.NumRays() != 5 {
		t.Fatalf("Expected 5 rays, got %d", out.NumRays())
	}
	// One mirror curve, 5 segments up to the mirror, 5 rays past the focus
	if got := r.Segments(); got != 11 {
		t.Errorf("Expected 11 polylines, got %d", got)
	}

	min, max, err := r.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if min.Y > 0 || max.Y < 20 || min.X > -6 || max.X < 6 {
		t.Errorf("Bounds [%v, %v] do not contain the system", min, max)
	}
}

func TestRenderer_BlockedRaysStopAtAperture(t *testing.T) {
	system := optics.NewSequence(
		optics.NewPointSourceAtInfinity(10, 0),
		optics.NewGap(5),
		optics.NewAperture(12, 4),
		optics.NewGap(5),
		optics.NewFocalPoint(),
	)
	r := NewRenderer()
	out := r.Render(system, optics.Sampling{Rays: 10, Object: 1})

	// Two stop bars, one segment and one extension per ray through the opening
	want := 2 + 2*out.NumRays()
	if got := r.Segments(); got != want {
		t.Errorf("Expected %d polylines, got %d", want, got)
	}
}

func TestRenderer_LensFacesAreDrawn(t *testing.T) {
	lens := optics.NewSymmetricLens(geometry.NewParabola(5, 0.02), 1, 1.5, 1)
	system := optics.NewSequence(optics.NewPointSourceAtInfinity(6, 0), optics.NewGap(5), lens)

	r := NewRenderer()
	r.Render(system, optics.Sampling{Rays: 3, Object: 1})

	// Two faces and three segments through each
	if got := r.Segments(); got != 8 {
		t.Errorf("Expected 8 polylines, got %d", got)
	}
}

func TestRenderer_EmptyDiagram(t *testing.T) {
	if _, err := NewRenderer().Image(DefaultCameraConfig()); err == nil {
		t.Error("Expected error for an empty diagram")
	}
}

func TestRenderer_Image(t *testing.T) {
	r := NewRenderer()
	r.Render(mirrorSystem(), optics.DefaultSampling())

	config := CameraConfig{Width: 320, Height: 240, Margin: 0.1}
	img, err := r.Image(config)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("Expected 320x240 image, got %v", b)
	}
	red, green, blue, _ := img.At(0, 0).RGBA()
	if red != 0xffff || green != 0xffff || blue != 0xffff {
		t.Errorf("Expected white background in the margin, got %d %d %d", red, green, blue)
	}

	path := filepath.Join(t.TempDir(), "mirror.png")
	if err := r.SavePNG(path, config); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("Expected a PNG file, got %v", err)
	}
}

func TestCamera_Project(t *testing.T) {
	tests := []struct {
		name         string
		config       CameraConfig
		min, max     r2.Vec
		point        r2.Vec
		wantX, wantY float64
	}{
		{"centre", CameraConfig{Width: 200, Height: 100}, r2.Vec{X: -1, Y: -1}, r2.Vec{X: 1, Y: 1}, r2.Vec{}, 100, 50},
		{"top edge", CameraConfig{Width: 200, Height: 100}, r2.Vec{X: -1, Y: -1}, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 0, Y: 1}, 100, 0},
		{"wide region", CameraConfig{Width: 100, Height: 100}, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 2}, r2.Vec{X: 10, Y: 1}, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.config, tt.min, tt.max)
			x, y := c.Project(tt.point)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}
