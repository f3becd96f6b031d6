package optics

import (
	"math"
	"testing"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/geometry"
)

func raysThrough(target core.Vec2, origins []core.Vec2) OpticalData {
	directions := make([]core.Vec2, len(origins))
	for i, o := range origins {
		directions[i] = target.Subtract(o).Normalize()
	}
	in := rays(origins, directions)
	in.Target = target
	return in
}

func TestFocalPoint_ZeroForConvergingRays(t *testing.T) {
	target := core.NewVec2(1, 10)
	in := raysThrough(target, []core.Vec2{
		core.NewVec2(-3, 0), core.NewVec2(0, 0), core.NewVec2(2, 1), core.NewVec2(5, -2),
	})

	out := NewFocalPoint().Forward(in, DefaultSampling())
	if math.Abs(out.Loss.Real) > 1e-20 {
		t.Errorf("Expected zero loss, got %g", out.Loss.Real)
	}
}

func TestFocalPoint_PerturbationIncreasesLoss(t *testing.T) {
	target := core.NewVec2(0, 10)
	base := raysThrough(target, []core.Vec2{core.NewVec2(-2, 0), core.NewVec2(0, 0), core.NewVec2(2, 0)})
	baseline := NewFocalPoint().Forward(base, DefaultSampling()).Loss.Real

	for i := 0; i < base.NumRays(); i++ {
		for _, angle := range []float64{-0.01, 0.02} {
			perturbed := base.Append(nil, nil, nil, nil)
			d := perturbed.Directions[i].Real()
			c, s := math.Cos(angle), math.Sin(angle)
			perturbed.Directions[i] = core.NewVec2(c*d.X-s*d.Y, s*d.X+c*d.Y)

			loss := NewFocalPoint().Forward(perturbed, DefaultSampling()).Loss.Real
			if loss <= baseline {
				t.Errorf("ray %d angle %f: loss %g did not increase from %g", i, angle, loss, baseline)
			}
		}
	}
	if base.Directions[0].Real() != raysThrough(target, []core.Vec2{core.NewVec2(-2, 0)}).Directions[0].Real() {
		t.Error("Perturbing a copy changed the original batch")
	}
}

func TestFocalPoint_KeepsRaysAndAccumulates(t *testing.T) {
	in := rays([]core.Vec2{core.NewVec2(0, 0), core.NewVec2(2, 0)}, []core.Vec2{core.NewVec2(0, 1), core.NewVec2(0, 1)})
	in.Target = core.NewVec2(0, 5)
	in.Loss = core.Const(1)

	out := NewFocalPoint().Forward(in, DefaultSampling())

	// Distances 0 and 4, mean 2
	if math.Abs(out.Loss.Real-3) > 1e-12 {
		t.Errorf("Expected loss 3, got %f", out.Loss.Real)
	}
	if out.NumRays() != 2 || out.Target != in.Target || out.CoordBase[1] != in.CoordBase[1] {
		t.Error("Loss elements must not change rays, target or provenance")
	}
}

func TestLoss_EmptyBatch(t *testing.T) {
	in := DefaultInput()
	for _, element := range []Element{NewFocalPoint(), NewImage(4)} {
		out := element.Forward(in, DefaultSampling())
		if out.Loss.Real != 0 || math.IsNaN(out.Loss.Emag) {
			t.Errorf("%T: expected zero loss for empty batch, got %+v", element, out.Loss)
		}
	}
}

func TestImage_TargetsFromObjectCoordinates(t *testing.T) {
	up := core.NewVec2(0, 1)
	in := rays([]core.Vec2{core.NewVec2(-2, 0), core.NewVec2(0, 0), core.NewVec2(2, 0)}, []core.Vec2{up, up, up})
	in.CoordObject = []float64{0, 0.5, 1}
	in.Target = core.NewVec2(0, 8)

	out := NewImage(4).Forward(in, DefaultSampling())
	if math.Abs(out.Loss.Real) > 1e-12 {
		t.Errorf("Expected zero loss when rays land on their image points, got %g", out.Loss.Real)
	}

	in.CoordObject = []float64{1, 0.5, 0}
	out = NewImage(4).Forward(in, DefaultSampling())
	// Outer rays miss by 4 each: (16 + 0 + 16) / 3
	if math.Abs(out.Loss.Real-32.0/3) > 1e-12 {
		t.Errorf("Expected loss %f, got %f", 32.0/3, out.Loss.Real)
	}
}

func TestLossNonPositive(t *testing.T) {
	coefficients := []core.Scalar{core.Const(-1), core.Variable(0.5), core.Const(0)}
	loss := LossNonPositive(coefficients, 2)

	if math.Abs(loss.Real-1) > 1e-12 {
		t.Errorf("Expected penalty 1, got %f", loss.Real)
	}
	if math.Abs(loss.Emag-4) > 1e-12 {
		t.Errorf("Expected derivative 4, got %f", loss.Emag)
	}

	parabola := geometry.NewParabola(5, 0.5)
	out := NewNonPositive(parabola, 1).Forward(DefaultInput(), DefaultSampling())
	if math.Abs(out.Loss.Real-0.25) > 1e-12 {
		t.Errorf("Expected regularizer loss 0.25, got %f", out.Loss.Real)
	}
}
