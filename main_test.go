package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"parabolic mirror", "parabolic-mirror", false},
		{"circular mirror", "circular-mirror", false},
		{"singlet lens", "singlet-lens", false},
		{"landscape lens", "landscape-lens", false},

		// Scene files (by id)
		{"lens pair file", "file:lens-pair", false},
		{"stopped mirror file", "file:stopped-mirror", false},

		// Scene files (by path)
		{"direct JSON path", "scenes/lens-pair.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Sampling.Rays <= 0 {
				t.Errorf("Scene sampling should have rays, got %d", scene.Sampling.Rays)
			}
			if scene.NumParameters() <= 0 {
				t.Errorf("Scene should have learnable coefficients")
			}
		})
	}
}

func TestApplySampling(t *testing.T) {
	s, err := createScene("landscape-lens")
	if err != nil {
		t.Fatal(err)
	}
	defaults := s.Sampling

	applySampling(s, 0, 0)
	if s.Sampling != defaults {
		t.Errorf("Zero flags should keep the scene sampling, got %+v", s.Sampling)
	}
	applySampling(s, 7, 2)
	if s.Sampling.Rays != 7 || s.Sampling.Object != 2 {
		t.Errorf("Expected 7 rays and 2 object samples, got %+v", s.Sampling)
	}
}

func TestSaveOutputs(t *testing.T) {
	tests := []struct {
		sceneType string
		wantSVG   bool
	}{
		{"parabolic-mirror", false},
		{"singlet-lens", true},
	}

	for _, tt := range tests {
		t.Run(tt.sceneType, func(t *testing.T) {
			s, err := createScene(tt.sceneType)
			if err != nil {
				t.Fatal(err)
			}
			root := t.TempDir()
			camera := renderer.CameraConfig{Width: 200, Height: 150, Margin: 0.05}

			if err := saveOutputs(s, "before", root, camera, core.NopLogger{}); err != nil {
				t.Fatal(err)
			}

			files, err := os.ReadDir(filepath.Join(root, tt.sceneType))
			if err != nil {
				t.Fatal(err)
			}
			var png, svg bool
			for _, f := range files {
				png = png || strings.HasSuffix(f.Name(), ".png")
				svg = svg || strings.HasSuffix(f.Name(), ".svg")
			}
			if !png {
				t.Error("Expected a PNG diagram")
			}
			if svg != tt.wantSVG {
				t.Errorf("Expected SVG output %v, got %v", tt.wantSVG, svg)
			}
		})
	}
}
