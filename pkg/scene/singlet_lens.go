package scene

import (
	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// NewSingletLensScene focuses a parallel beam with a symmetric biconvex lens
// whose two faces share one coefficient
func NewSingletLensScene() *Scene {
	front := geometry.NewParabola(5, 0.005)

	system := optics.NewSequence(
		optics.NewPointSourceAtInfinity(8, 0),
		optics.NewGap(5),
		optics.NewSymmetricLens(front, 1.0, 1.5, 1.0),
		optics.NewGap(30),
		optics.NewFocalPoint(),
	)

	return &Scene{
		Info:     builtinInfo("singlet-lens"),
		System:   system,
		Sampling: optics.Sampling{Rays: 15, Object: 1},
	}
}
