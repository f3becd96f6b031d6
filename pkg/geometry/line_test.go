package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lensmaker/pkg/core"
)

func rayLine(origin, direction core.Vec2) core.Line {
	return core.RaysToCoefficients([]core.Vec2{origin}, []core.Vec2{direction})[0]
}

func TestLine_Collide_BasicIntersection(t *testing.T) {
	// The x axis
	line := NewLine(5, 0, 1, 0)

	tests := []struct {
		name          string
		origin        core.Vec2
		direction     core.Vec2
		expectedPoint core.Vec2
	}{
		{
			name:          "diagonal ray through the origin",
			origin:        core.NewVec2(-1, -1),
			direction:     core.NewVec2(1, 1).Normalize(),
			expectedPoint: core.NewVec2(0, 0),
		},
		{
			name:          "diagonal ray from (-5, -1)",
			origin:        core.NewVec2(-5, -1),
			direction:     core.NewVec2(1, 1).Normalize(),
			expectedPoint: core.NewVec2(-4, 0),
		},
		{
			name:          "vertical ray",
			origin:        core.NewVec2(2, 3),
			direction:     core.NewVec2(0, -1),
			expectedPoint: core.NewVec2(2, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := line.Collide([]core.Line{rayLine(tt.origin, tt.direction)})

			tolerance := 1e-9
			p := hits.Points[0].Real()
			if math.Abs(p.X-tt.expectedPoint.X.Real) > tolerance || math.Abs(p.Y-tt.expectedPoint.Y.Real) > tolerance {
				t.Errorf("Expected hit point %v, got %v", tt.expectedPoint.Real(), p)
			}
			if math.Abs(hits.T[0].Real-tt.expectedPoint.X.Real) > tolerance {
				t.Errorf("Expected parameter %f, got %f", tt.expectedPoint.X.Real, hits.T[0].Real)
			}

			n := hits.Normals[0].Real()
			if math.Abs(n.X) > tolerance || math.Abs(math.Abs(n.Y)-1) > tolerance {
				t.Errorf("Expected normal (0, ±1), got %v", n)
			}
		})
	}
}

func TestLine_Collide_ParallelRay(t *testing.T) {
	line := NewLine(5, 0, 1, 0)

	hits := line.Collide([]core.Line{
		rayLine(core.NewVec2(0, 1), core.NewVec2(1, 0)),
		rayLine(core.NewVec2(0, -3), core.NewVec2(-1, 0)),
	})

	lo, hi := line.Domain()
	for i := range hits.T {
		if !math.IsInf(hits.T[i].Real, 1) || !math.IsInf(hits.Points[i].Y.Real, 1) {
			t.Errorf("ray %d: expected +Inf for parallel ray, got %v", i, hits.Points[i].Real())
		}
		if hits.T[i].Real >= lo && hits.T[i].Real <= hi {
			t.Errorf("ray %d: parallel ray passed domain filtering", i)
		}
		if math.IsNaN(hits.T[i].Emag) {
			t.Errorf("ray %d: NaN derivative for parallel ray", i)
		}
	}
}

func TestLine_EvaluateNormal(t *testing.T) {
	// y = 0.5x + 1  <=>  -0.5x + y - 1 = 0
	line := NewLine(3, -0.5, 1, -1)

	p := PointAt(line, 2)
	if math.Abs(p.Y.Real-2) > 1e-12 {
		t.Errorf("Expected y=2 at x=2, got %f", p.Y.Real)
	}

	n := NormalAt(line, 0).Real()
	if math.Abs(n.X*1+n.Y*0.5) > 1e-12 {
		t.Errorf("Normal %v is not perpendicular to the line", n)
	}
	if math.Abs(math.Hypot(n.X, n.Y)-1) > 1e-12 {
		t.Errorf("Normal %v is not unit length", n)
	}
}
