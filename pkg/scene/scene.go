package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-lensmaker/pkg/optics"
)

// Scene is an optical system ready to be trained and rendered
type Scene struct {
	Info     SceneInfo
	System   *optics.Sequence
	Sampling optics.Sampling
}

// builtin maps scene ids to their constructors
var builtin = map[string]func() *Scene{
	"parabolic-mirror": NewParabolicMirrorScene,
	"singlet-lens":     NewSingletLensScene,
	"landscape-lens":   NewLandscapeLensScene,
	"circular-mirror":  NewCircularMirrorScene,
}

// NewScene creates a fresh scene by id. Builtin ids are listed by
// ListBuiltinScenes; "file:<name>" loads scenes/<name>.json.
func NewScene(id string) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		path, err := findSceneFile(name)
		if err != nil {
			return nil, err
		}
		return LoadScene(path)
	}
	create, ok := builtin[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return create(), nil
}

// NumParameters returns the number of learnable coefficients
func (s *Scene) NumParameters() int {
	return len(optics.ParameterVector(optics.Parameters(s.System)))
}
