package scene

import (
	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// NewLandscapeLensScene images a distant object through a stop placed in
// front of a meniscus lens with two independent spherical faces
func NewLandscapeLensScene() *Scene {
	front := geometry.NewCircularArc(5, -0.02)
	back := geometry.NewCircularArc(5, -0.08)

	system := optics.NewSequence(
		optics.NewObjectAtInfinity(6, 20),
		optics.NewGap(2),
		optics.NewAperture(12, 4),
		optics.NewGap(3),
		optics.NewLens(front, back, 1.0, 1.5, 1.0),
		optics.NewGap(35),
		// the image is inverted: rays at positive angles land at negative x
		optics.NewImage(-12),
	)

	return &Scene{
		Info:     builtinInfo("landscape-lens"),
		System:   system,
		Sampling: optics.Sampling{Rays: 10, Object: 3},
	}
}
