package optics

import (
	"math"
	"testing"

	"github.com/df07/go-lensmaker/pkg/geometry"
)

func TestLens_InnerThickness(t *testing.T) {
	tests := []struct {
		name  string
		a     float64
		outer float64
	}{
		{"biconvex", 0.02, 1},
		{"biconcave", -0.02, 3},
		{"flat", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lens := NewSymmetricLens(geometry.NewParabola(5, tt.a), 1, 1.5, tt.outer)
			want := tt.outer + 2*tt.a*25
			if got := lens.InnerThickness(); math.Abs(got-want) > 1e-12 {
				t.Errorf("Expected inner thickness %f, got %f", want, got)
			}
		})
	}
}

func TestLens_SharedCoefficient(t *testing.T) {
	front := geometry.NewParabola(5, 0.02)
	lens := NewSymmetricLens(front, 1, 1.5, 1)

	params := Parameters(lens)
	if len(params) != 1 || params[0] != front.Binding().Params() {
		t.Fatalf("Expected the front storage only, got %d storages", len(params))
	}
	if err := params[0].Set([]float64{0.03}); err != nil {
		t.Fatal(err)
	}
	back := lens.Back.Shape.(*geometry.Parabola)
	if math.Abs(back.Coefficient().Real+0.03) > 1e-15 {
		t.Errorf("Expected back coefficient -0.03, got %f", back.Coefficient().Real)
	}
}

func TestLens_ConvergesParallelBeam(t *testing.T) {
	lens := NewSymmetricLens(geometry.NewParabola(5, 0.02), 1, 1.5, 1)
	seq := NewSequence(NewPointSourceAtInfinity(6, 0), NewGap(5), lens)

	out := seq.Run(Sampling{Rays: 9, Object: 1})
	if out.NumRays() != 9 {
		t.Fatalf("Expected every ray through the lens, got %d", out.NumRays())
	}

	// Target leaves the lens at the back face's outer edge
	wantY := 5 + 2*0.02*25 + 1
	if math.Abs(out.Target.Y.Real-wantY) > 1e-12 {
		t.Errorf("Expected target at y = %f, got %f", wantY, out.Target.Y.Real)
	}

	for i, d := range out.Directions {
		o := out.Origins[i].Real()
		v := d.Real()
		if o.X > 1e-9 && v.X >= 0 || o.X < -1e-9 && v.X <= 0 {
			t.Errorf("ray %d at x=%f is not bent toward the axis: %v", i, o.X, v)
		}
		if math.Abs(v.X*v.X+v.Y*v.Y-1) > 1e-12 {
			t.Errorf("ray %d: direction is not unit length", i)
		}
	}
	if centre := out.Directions[4].Real(); math.Abs(centre.X) > 1e-12 || math.Abs(centre.Y-1) > 1e-12 {
		t.Errorf("Central ray should pass undeviated, got %v", centre)
	}
}
