package optics

import "github.com/df07/go-lensmaker/pkg/core"

// Gap moves the target along the optical axis
type Gap struct {
	Offset float64
}

// NewGap creates a gap
func NewGap(offset float64) *Gap {
	return &Gap{Offset: offset}
}

// Forward implements Element
func (g *Gap) Forward(in OpticalData, sampling Sampling) OpticalData {
	out := in
	out.Target = in.Target.Add(core.NewVec2(0, g.Offset))
	out.Blocked = nil
	return out
}
