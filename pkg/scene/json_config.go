package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// SceneCfg is the JSON description of an optical system
type SceneCfg struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Group       string          `json:"group,omitempty"`
	Sampling    optics.Sampling `json:"sampling"`
	Elements    []ElementCfg    `json:"elements"`
}

// ElementCfg describes one element. Type selects which fields are read.
type ElementCfg struct {
	Type string `json:"type"`

	// gap
	Offset float64 `json:"offset,omitempty"`

	// sources
	BeamDiameter float64 `json:"beamDiameter,omitempty"`
	BeamAngle    float64 `json:"beamAngle,omitempty"`   // degrees
	Angle        float64 `json:"angle,omitempty"`       // degrees
	AngularSize  float64 `json:"angularSize,omitempty"` // degrees
	Height       float64 `json:"height,omitempty"`      // source height, aperture and image size

	// aperture
	Diameter float64 `json:"diameter,omitempty"`

	// surfaces and lenses
	Shape          *ShapeCfg `json:"shape,omitempty"`
	Back           *ShapeCfg `json:"back,omitempty"` // lens back face, mirrors the front when omitted
	N1             float64   `json:"n1,omitempty"`
	N2             float64   `json:"n2,omitempty"`
	N              float64   `json:"n,omitempty"`
	NMedium        float64   `json:"nMedium,omitempty"`
	OuterThickness float64   `json:"outerThickness,omitempty"`

	// non-positive regularizer on the previous surface's shape
	Scale float64 `json:"scale,omitempty"`
}

// ShapeCfg describes a curve
type ShapeCfg struct {
	Kind   string    `json:"kind"` // "line", "parabola" or "arc"
	Radius float64   `json:"radius"`
	Coeffs []float64 `json:"coeffs"`
	Fixed  bool      `json:"fixed,omitempty"` // lines only
}

// LoadScene reads a scene from a JSON file
func LoadScene(path string) (*Scene, error) {
	cfg, err := readSceneConfig(path)
	if err != nil {
		return nil, err
	}
	system, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	sampling := cfg.Sampling
	if sampling.Rays == 0 {
		sampling = optics.DefaultSampling()
	}
	return &Scene{Info: fileInfo(path, cfg), System: system, Sampling: sampling}, nil
}

func readSceneConfig(path string) (*SceneCfg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SceneCfg
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Build constructs the optical system
func (c *SceneCfg) Build() (*optics.Sequence, error) {
	system := optics.NewSequence()
	var last geometry.Shape
	for i, e := range c.Elements {
		element, shape, err := e.build(last)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, e.Type, err)
		}
		if shape != nil {
			last = shape
		}
		system.Append(element)
	}
	return system, nil
}

func (e ElementCfg) build(last geometry.Shape) (optics.Element, geometry.Shape, error) {
	switch e.Type {
	case "gap":
		return optics.NewGap(e.Offset), nil, nil

	case "point-source":
		p := optics.NewPointSource(e.BeamAngle)
		p.Height = e.Height
		return p, nil, nil
	case "point-source-at-infinity":
		return optics.NewPointSourceAtInfinity(e.BeamDiameter, e.Angle), nil, nil
	case "object-at-infinity":
		o := optics.NewObjectAtInfinity(e.BeamDiameter, e.AngularSize)
		o.Angle = e.Angle
		return o, nil, nil

	case "aperture":
		return optics.NewAperture(e.Height, e.Diameter), nil, nil

	case "reflective", "refractive":
		shape, err := e.Shape.build()
		if err != nil {
			return nil, nil, err
		}
		if e.Type == "reflective" {
			return optics.NewReflectiveSurface(shape), shape, nil
		}
		if err := positive(field{"n1", e.N1}, field{"n2", e.N2}); err != nil {
			return nil, nil, err
		}
		return optics.NewRefractiveSurface(shape, e.N1, e.N2), shape, nil

	case "lens":
		if e.Back == nil {
			if e.Shape == nil || e.Shape.Kind != "parabola" {
				return nil, nil, fmt.Errorf("a symmetric lens needs a parabola front")
			}
			front, err := e.Shape.build()
			if err != nil {
				return nil, nil, err
			}
			if err := positive(field{"n", e.N}, field{"nMedium", e.NMedium}); err != nil {
				return nil, nil, err
			}
			return optics.NewSymmetricLens(front.(*geometry.Parabola), e.NMedium, e.N, e.OuterThickness), front, nil
		}
		front, err := e.Shape.build()
		if err != nil {
			return nil, nil, err
		}
		back, err := e.Back.build()
		if err != nil {
			return nil, nil, err
		}
		if err := positive(field{"n", e.N}, field{"nMedium", e.NMedium}); err != nil {
			return nil, nil, err
		}
		return optics.NewLens(front, back, e.NMedium, e.N, e.OuterThickness), front, nil

	case "focal-point":
		return optics.NewFocalPoint(), nil, nil
	case "image":
		return optics.NewImage(e.Height), nil, nil
	case "non-positive":
		if last == nil {
			return nil, nil, fmt.Errorf("no shape before the regularizer")
		}
		return optics.NewNonPositive(last, e.Scale), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown element type %q", e.Type)
}

func (s *ShapeCfg) build() (geometry.Shape, error) {
	if s == nil {
		return nil, fmt.Errorf("missing shape")
	}
	want := map[string]int{"line": 3, "parabola": 1, "arc": 1}
	n, ok := want[s.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if len(s.Coeffs) != n {
		return nil, fmt.Errorf("%s needs %d coefficients, got %d", s.Kind, n, len(s.Coeffs))
	}
	if err := positive(field{"radius", s.Radius}); err != nil {
		return nil, err
	}

	switch s.Kind {
	case "line":
		// the line is evaluated as y = -(a*x + c) / b
		if s.Coeffs[1] == 0 {
			return nil, fmt.Errorf("line coefficient b must be non-zero")
		}
		if s.Fixed {
			return geometry.NewFixedLine(s.Radius, s.Coeffs[0], s.Coeffs[1], s.Coeffs[2]), nil
		}
		return geometry.NewLine(s.Radius, s.Coeffs[0], s.Coeffs[1], s.Coeffs[2]), nil
	case "parabola":
		return geometry.NewParabola(s.Radius, s.Coeffs[0]), nil
	default:
		return geometry.NewCircularArc(s.Radius, s.Coeffs[0]), nil
	}
}

type field struct {
	name  string
	value float64
}

// positive rejects missing or non-positive values
func positive(fields ...field) error {
	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a positive number, got %g", f.name, f.value)
		}
	}
	return nil
}
