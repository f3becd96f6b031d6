package scene

import (
	"github.com/df07/go-lensmaker/pkg/geometry"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// NewCircularMirrorScene focuses a parallel beam with a spherical mirror,
// which cannot reach zero loss because of spherical aberration
func NewCircularMirrorScene() *Scene {
	mirror := geometry.NewCircularArc(6, -0.05)

	system := optics.NewSequence(
		optics.NewPointSourceAtInfinity(10, 0),
		optics.NewGap(10),
		optics.NewReflectiveSurface(mirror),
		optics.NewGap(-5),
		optics.NewFocalPoint(),
	)

	return &Scene{
		Info:     builtinInfo("circular-mirror"),
		System:   system,
		Sampling: optics.Sampling{Rays: 20, Object: 1},
	}
}
