package optics

import (
	"fmt"

	"github.com/df07/go-lensmaker/pkg/geometry"
)

// ParameterHolder is implemented by elements backed by learnable coefficients
type ParameterHolder interface {
	Parameters() []*geometry.Params
}

// Parameters collects the distinct learnable coefficient storages reachable
// from an element, in first-seen order
func Parameters(element Element) []*geometry.Params {
	seen := make(map[*geometry.Params]bool)
	var params []*geometry.Params
	var visit func(e Element)
	visit = func(e Element) {
		if s, ok := e.(*Sequence); ok {
			for _, child := range s.Elements {
				visit(child)
			}
			return
		}
		if h, ok := e.(ParameterHolder); ok {
			for _, p := range h.Parameters() {
				if p.Learnable() && !seen[p] {
					seen[p] = true
					params = append(params, p)
				}
			}
		}
	}
	visit(element)
	return params
}

// ParameterVector flattens the values of params
func ParameterVector(params []*geometry.Params) []float64 {
	var x []float64
	for _, p := range params {
		x = append(x, p.Values()...)
	}
	return x
}

// SetParameterVector writes a flattened vector back into params
func SetParameterVector(params []*geometry.Params, x []float64) error {
	offset := 0
	for _, p := range params {
		n := p.Len()
		if offset+n > len(x) {
			return fmt.Errorf("optics: parameter vector of length %d is too short", len(x))
		}
		if err := p.Set(x[offset : offset+n]); err != nil {
			return err
		}
		offset += n
	}
	if offset != len(x) {
		return fmt.Errorf("optics: parameter vector has %d values, want %d", len(x), offset)
	}
	return nil
}

// LossAndGradient evaluates the loss of a system and its gradient with
// respect to every learnable coefficient, in ParameterVector order. Each
// coefficient costs one forward pass with its derivative seeded.
func LossAndGradient(element Element, sampling Sampling) (float64, []float64) {
	params := Parameters(element)
	var grad []float64
	loss := 0.0
	evaluated := false

	for _, p := range params {
		for i := 0; i < p.Len(); i++ {
			out := seededForward(element, sampling, p, i)
			loss = out.Loss.Real
			evaluated = true
			grad = append(grad, out.Loss.Emag)
		}
	}
	if !evaluated {
		loss = element.Forward(DefaultInput(), sampling).Loss.Real
	}
	return loss, grad
}

func seededForward(element Element, sampling Sampling, p *geometry.Params, i int) OpticalData {
	p.Seed(i)
	defer p.Seed(-1)
	return element.Forward(DefaultInput(), sampling)
}

// Loss evaluates the loss without derivatives
func Loss(element Element, sampling Sampling) float64 {
	return element.Forward(DefaultInput(), sampling).Loss.Real
}
