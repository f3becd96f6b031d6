package geometry

import (
	"fmt"

	"github.com/df07/go-lensmaker/pkg/core"
)

// Params is owned, learnable coefficient storage. The optimizer reads and
// writes it between passes; the forward pass only reads it.
type Params struct {
	values    []float64
	seed      int // index whose derivative is seeded for the current pass, -1 for none
	learnable bool
}

// NewParams creates learnable coefficient storage initialized to values
func NewParams(values ...float64) *Params {
	return &Params{values: append([]float64(nil), values...), seed: -1, learnable: true}
}

// Learnable reports whether an optimizer should update this storage
func (p *Params) Learnable() bool {
	return p.learnable
}

// Len returns the number of coefficients
func (p *Params) Len() int {
	return len(p.values)
}

// Values returns a copy of the current coefficients
func (p *Params) Values() []float64 {
	return append([]float64(nil), p.values...)
}

// Set overwrites the coefficients
func (p *Params) Set(values []float64) error {
	if len(values) != len(p.values) {
		return fmt.Errorf("params: got %d values, want %d", len(values), len(p.values))
	}
	copy(p.values, values)
	return nil
}

// Seed marks coefficient i as the differentiation variable. Pass -1 to clear.
func (p *Params) Seed(i int) {
	if i < -1 || i >= len(p.values) {
		panic(fmt.Sprintf("params: seed index %d out of range [0, %d)", i, len(p.values)))
	}
	p.seed = i
}

// scalars returns the coefficients as dual numbers, scaled by f
func (p *Params) scalars(f float64) []core.Scalar {
	out := make([]core.Scalar, len(p.values))
	for i, v := range p.values {
		s := core.Const(v)
		if i == p.seed {
			s = core.Variable(v)
		}
		out[i] = core.Scale(f, s)
	}
	return out
}

// Binding is how a shape reaches its coefficients: either it owns a Params,
// or it references another shape's Params through a constant scale factor.
// The referenced storage stays alive as long as any referent holds it.
type Binding struct {
	params *Params
	scale  float64
	owner  bool
}

// Own creates a binding that owns fresh storage
func Own(values ...float64) Binding {
	return Binding{params: NewParams(values...), scale: 1, owner: true}
}

// Fixed creates an owning binding over storage that no optimizer will see
func Fixed(values ...float64) Binding {
	p := NewParams(values...)
	p.learnable = false
	return Binding{params: p, scale: 1, owner: true}
}

// Share returns a non-owning binding to the same storage with coefficients
// multiplied by scale
func (b Binding) Share(scale float64) Binding {
	return Binding{params: b.params, scale: b.scale * scale}
}

// Params returns the underlying storage
func (b Binding) Params() *Params {
	return b.params
}

// Owner reports whether this binding owns its storage
func (b Binding) Owner() bool {
	return b.owner
}

// Scale returns the sharing factor (1 for owners)
func (b Binding) Scale() float64 {
	return b.scale
}

// Values returns the effective coefficients
func (b Binding) Values() []core.Scalar {
	return b.params.scalars(b.scale)
}
