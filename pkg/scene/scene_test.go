package scene

import (
	"math"
	"testing"

	"github.com/df07/go-lensmaker/pkg/optics"
)

func TestBuiltinScenes(t *testing.T) {
	tests := []struct {
		id         string
		parameters int
	}{
		{"parabolic-mirror", 1},
		{"circular-mirror", 1},
		{"singlet-lens", 1},
		{"landscape-lens", 2},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := NewScene(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if s.Info.ID != tt.id || s.Info.Type != "builtin" {
				t.Errorf("Unexpected info %+v", s.Info)
			}
			if got := s.NumParameters(); got != tt.parameters {
				t.Errorf("Expected %d parameters, got %d", tt.parameters, got)
			}

			out := s.System.Run(s.Sampling)
			if out.NumRays() == 0 {
				t.Error("Expected rays to reach the end of the system")
			}
			if math.IsNaN(out.Loss.Real) || out.Loss.Real <= 0 {
				t.Errorf("Expected a positive finite starting loss, got %g", out.Loss.Real)
			}
		})
	}
}

func TestNewScene_ReturnsFreshSystems(t *testing.T) {
	a, _ := NewScene("parabolic-mirror")
	b, _ := NewScene("parabolic-mirror")

	params := optics.Parameters(a.System)
	if err := optics.SetParameterVector(params, []float64{-0.05}); err != nil {
		t.Fatal(err)
	}
	if got := optics.ParameterVector(optics.Parameters(b.System))[0]; got != -0.01 {
		t.Errorf("Scenes share coefficient storage: got %f", got)
	}
}

func TestNewScene_Unknown(t *testing.T) {
	for _, id := range []string{
		"",
		"cornell-box",
		"file:does-not-exist",
		"file:",
		"file:..",
		"file:../scenes/lens-pair",
		"file:../../../etc/x",
		"file:sub/lens-pair",
		`file:..\lens-pair`,
	} {
		if _, err := NewScene(id); err == nil {
			t.Errorf("Expected error for scene %q", id)
		}
	}
}

func TestParabolicMirrorScene_Optimum(t *testing.T) {
	s := NewParabolicMirrorScene()
	params := optics.Parameters(s.System)
	if err := optics.SetParameterVector(params, []float64{-1.0 / 20}); err != nil {
		t.Fatal(err)
	}
	if loss := optics.Loss(s.System, s.Sampling); loss > 1e-20 {
		t.Errorf("Expected zero loss at the optimum, got %g", loss)
	}
}

func TestListBuiltinScenes(t *testing.T) {
	scenes := ListBuiltinScenes()
	if len(scenes) != len(builtin) {
		t.Fatalf("Expected %d builtin scenes, got %d", len(builtin), len(scenes))
	}
	for _, info := range scenes {
		if _, ok := builtin[info.ID]; !ok {
			t.Errorf("Listed scene %q has no constructor", info.ID)
		}
		if info.Group != builtinGroup || info.Name == "" {
			t.Errorf("Incomplete metadata %+v", info)
		}
	}
}
