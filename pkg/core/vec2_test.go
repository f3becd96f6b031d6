package core

import (
	"math"
	"testing"
)

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec2
		expected Vec2
	}{
		{
			name:     "Axis aligned",
			vector:   NewVec2(0, 2),
			expected: NewVec2(0, 1),
		},
		{
			name:     "3-4-5 triangle",
			vector:   NewVec2(3, 4),
			expected: NewVec2(0.6, 0.8),
		},
		{
			name:     "Zero vector stays zero",
			vector:   NewVec2(0, 0),
			expected: NewVec2(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-12
			if math.Abs(result.X.Real-tt.expected.X.Real) > tolerance ||
				math.Abs(result.Y.Real-tt.expected.Y.Real) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected.Real(), result.Real())
			}
			if !result.IsFinite() {
				t.Errorf("Expected finite derivative, got %+v", result)
			}
		})
	}
}

func TestVec2_NormalizeDerivative(t *testing.T) {
	// d/dx x/sqrt(x^2+16) at x=3 is 16/125
	v := Vec2{X: Variable(3), Y: Const(4)}
	n := v.Normalize()

	if math.Abs(n.X.Emag-16.0/125.0) > 1e-12 {
		t.Errorf("Expected derivative %f, got %f", 16.0/125.0, n.X.Emag)
	}
	if math.Abs(n.Y.Emag-(-12.0/125.0)) > 1e-12 {
		t.Errorf("Expected derivative %f, got %f", -12.0/125.0, n.Y.Emag)
	}
}

func TestVec2_DotCross(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, -1)

	if got := a.Dot(b).Real; got != 1 {
		t.Errorf("Expected dot 1, got %f", got)
	}
	if got := a.Cross(b).Real; got != -7 {
		t.Errorf("Expected cross -7, got %f", got)
	}
}

func TestWhere_UnselectedBranchDoesNotLeak(t *testing.T) {
	// sqrt of a negative number is NaN, the double-where pattern must hide it
	x := Variable(-1)
	bad := x.Real < 0
	safe := Where(bad, Const(1), x)
	result := Where(bad, Const(0), Sqrt(safe))

	if !IsFinite(result) {
		t.Errorf("Expected finite result, got %+v", result)
	}
}
