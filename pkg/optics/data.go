package optics

import (
	"fmt"

	"github.com/df07/go-lensmaker/pkg/core"
)

// Sampling controls how many samples sources generate
type Sampling struct {
	Rays   int `json:"rays"`   // rays per source along the base dimension
	Object int `json:"object"` // points sampled across an extended object
}

// DefaultSampling returns sensible default values
func DefaultSampling() Sampling {
	return Sampling{Rays: 10, Object: 5}
}

// OpticalData is the state passed between optical elements. Elements return
// a new value and never modify the one they receive.
type OpticalData struct {
	Origins    []core.Vec2 // ray origins
	Directions []core.Vec2 // unit ray directions

	// Target is where the next element is anchored
	Target core.Vec2

	// Blocked marks which rays entering the previous element did not make it
	// through. Nil when the previous element does not block.
	Blocked []bool

	// Normalized [0, 1] coordinates of the sample each ray came from, along the
	// base (beam) and object dimensions
	CoordBase   []float64
	CoordObject []float64

	// Loss accumulator
	Loss core.Scalar
}

// DefaultInput returns the empty state at the origin
func DefaultInput() OpticalData {
	return OpticalData{
		Origins:     []core.Vec2{},
		Directions:  []core.Vec2{},
		Target:      core.NewVec2(0, 0),
		CoordBase:   []float64{},
		CoordObject: []float64{},
		Loss:        core.Const(0),
	}
}

// NumRays returns the size of the ray batch
func (d OpticalData) NumRays() int {
	return len(d.Origins)
}

// Validate checks that every per-ray slice has the same length
func (d OpticalData) Validate() error {
	n := len(d.Origins)
	if len(d.Directions) != n {
		return fmt.Errorf("optics: %d origins but %d directions", n, len(d.Directions))
	}
	if len(d.CoordBase) != n {
		return fmt.Errorf("optics: %d rays but %d base coordinates", n, len(d.CoordBase))
	}
	if len(d.CoordObject) != n {
		return fmt.Errorf("optics: %d rays but %d object coordinates", n, len(d.CoordObject))
	}
	return nil
}

// Select keeps the rays selected by mask, filtering every per-ray slice with
// the same selection
func (d OpticalData) Select(mask []bool) OpticalData {
	out := d
	out.Origins = core.FilterVec2(d.Origins, mask)
	out.Directions = core.FilterVec2(d.Directions, mask)
	out.CoordBase = core.FilterFloats(d.CoordBase, mask)
	out.CoordObject = core.FilterFloats(d.CoordObject, mask)
	return out
}

// Append concatenates new rays after the existing ones
func (d OpticalData) Append(origins, directions []core.Vec2, coordBase, coordObject []float64) OpticalData {
	out := d
	out.Origins = append(append([]core.Vec2{}, d.Origins...), origins...)
	out.Directions = append(append([]core.Vec2{}, d.Directions...), directions...)
	out.CoordBase = append(append([]float64{}, d.CoordBase...), coordBase...)
	out.CoordObject = append(append([]float64{}, d.CoordObject...), coordObject...)
	return out
}

// mustValidate panics on a broken invariant. A mismatch means a modelling bug
// that would silently corrupt the loss.
func mustValidate(d OpticalData, where string) {
	if err := d.Validate(); err != nil {
		panic(fmt.Sprintf("%s: %v", where, err))
	}
}
