package scene

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

func parse(t *testing.T, content string) *SceneCfg {
	t.Helper()
	var cfg SceneCfg
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func TestSceneCfg_Build(t *testing.T) {
	cfg := parse(t, `{
		"sampling": {"rays": 6, "object": 1},
		"elements": [
			{"type": "point-source-at-infinity", "beamDiameter": 10},
			{"type": "gap", "offset": 10},
			{"type": "reflective", "shape": {"kind": "parabola", "radius": 6, "coeffs": [-0.05]}},
			{"type": "non-positive", "scale": 2},
			{"type": "gap", "offset": -5},
			{"type": "focal-point"}
		]
	}`)

	system, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(system.Elements) != 6 {
		t.Fatalf("Expected 6 elements, got %d", len(system.Elements))
	}

	mirror := system.Elements[2].(*optics.ReflectiveSurface)
	regularizer := system.Elements[3].(*optics.NonPositive)
	if regularizer.Shape != mirror.Shape {
		t.Error("Expected the regularizer to watch the mirror")
	}
	if n := len(optics.Parameters(system)); n != 1 {
		t.Errorf("Expected one shared storage, got %d", n)
	}
	if loss := optics.Loss(system, cfg.Sampling); loss > 1e-20 {
		t.Errorf("Expected zero loss, got %g", loss)
	}
}

func TestSceneCfg_Lenses(t *testing.T) {
	cfg := parse(t, `{"elements": [
		{"type": "lens", "shape": {"kind": "parabola", "radius": 5, "coeffs": [0.02]}, "n": 1.5, "nMedium": 1, "outerThickness": 1},
		{"type": "lens", "shape": {"kind": "arc", "radius": 4, "coeffs": [-0.02]},
		 "back": {"kind": "line", "radius": 4, "coeffs": [0, 1, 0], "fixed": true}, "n": 1.6, "nMedium": 1, "outerThickness": 2}
	]}`)

	system, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	symmetric := system.Elements[0].(*optics.Lens)
	if math.Abs(symmetric.InnerThickness()-2) > 1e-12 {
		t.Errorf("Expected inner thickness 2, got %f", symmetric.InnerThickness())
	}
	plano := system.Elements[1].(*optics.Lens)
	if _, ok := plano.Back.Shape.(*geometry.Line); !ok || plano.Back.N1 != 1.6 {
		t.Errorf("Unexpected back face %+v", plano.Back)
	}
	// Parabola storage, arc storage; the fixed line is skipped
	if n := len(optics.Parameters(system)); n != 2 {
		t.Errorf("Expected 2 learnable storages, got %d", n)
	}
}

func TestSceneCfg_Errors(t *testing.T) {
	tests := []struct {
		name    string
		element string
		want    string
	}{
		{"unknown type", `{"type": "prism"}`, "unknown element type"},
		{"missing shape", `{"type": "reflective"}`, "missing shape"},
		{"unknown kind", `{"type": "reflective", "shape": {"kind": "spline", "coeffs": [1]}}`, "unknown shape kind"},
		{"coefficient count", `{"type": "refractive", "shape": {"kind": "line", "coeffs": [1]}}`, "needs 3 coefficients"},
		{"symmetric arc lens", `{"type": "lens", "shape": {"kind": "arc", "coeffs": [0.1]}}`, "parabola front"},
		{"regularizer first", `{"type": "non-positive"}`, "no shape"},
		{"missing indices", `{"type": "refractive", "shape": {"kind": "parabola", "radius": 5, "coeffs": [0.1]}}`, "n1 must be a positive number"},
		{"negative index", `{"type": "refractive", "shape": {"kind": "parabola", "radius": 5, "coeffs": [0.1]}, "n1": 1, "n2": -1.5}`, "n2 must be a positive number"},
		{"lens without glass", `{"type": "lens", "shape": {"kind": "parabola", "radius": 5, "coeffs": [0.02]}, "nMedium": 1, "outerThickness": 1}`, "n must be a positive number"},
		{"lens without medium", `{"type": "lens", "shape": {"kind": "arc", "radius": 4, "coeffs": [0.02]}, "back": {"kind": "arc", "radius": 4, "coeffs": [-0.02]}, "n": 1.5}`, "nMedium must be a positive number"},
		{"missing radius", `{"type": "reflective", "shape": {"kind": "parabola", "coeffs": [0.1]}}`, "radius must be a positive number"},
		{"negative radius", `{"type": "reflective", "shape": {"kind": "arc", "radius": -2, "coeffs": [0.1]}}`, "radius must be a positive number"},
		{"vertical line", `{"type": "reflective", "shape": {"kind": "line", "radius": 5, "coeffs": [1, 0, 0]}}`, "b must be non-zero"},
		{"bad lens back", `{"type": "lens", "shape": {"kind": "arc", "radius": 4, "coeffs": [0.02]}, "back": {"kind": "line", "radius": 4, "coeffs": [0, 0, 1]}, "n": 1.5, "nMedium": 1}`, "b must be non-zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parse(t, `{"elements": [`+tt.element+`]}`)
			_, err := cfg.Build()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScene_DefaultSampling(t *testing.T) {
	path := writeScene(t, t.TempDir(), "bare.json", `{"elements": [{"type": "gap", "offset": 1}]}`)

	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Sampling != optics.DefaultSampling() {
		t.Errorf("Expected default sampling, got %+v", s.Sampling)
	}
	if s.Info.Name != "Bare" || s.Info.ID != "file:bare" {
		t.Errorf("Unexpected info %+v", s.Info)
	}
}
