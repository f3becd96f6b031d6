package scene

import (
	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// NewParabolicMirrorScene focuses a parallel beam with a concave parabolic
// mirror. The best coefficient is -1/(4*focal).
func NewParabolicMirrorScene() *Scene {
	const focal = 5.0
	mirror := geometry.NewParabola(6, -0.01)

	system := optics.NewSequence(
		optics.NewPointSourceAtInfinity(10, 0),
		optics.NewGap(10),
		optics.NewReflectiveSurface(mirror),
		optics.NewGap(-focal),
		optics.NewFocalPoint(),
		// keeps the mirror concave toward the beam
		optics.NewNonPositive(mirror, 10),
	)

	return &Scene{
		Info:     builtinInfo("parabolic-mirror"),
		System:   system,
		Sampling: optics.Sampling{Rays: 20, Object: 1},
	}
}
