package optics

// Element is one stage of an optical system
type Element interface {
	Forward(in OpticalData, sampling Sampling) OpticalData
}

// Hook observes one element of a forward pass. It receives the element and
// its input and output states and must not modify them.
type Hook func(element Element, in, out OpticalData)

// Sequence runs elements in order, passing each output to the next element
type Sequence struct {
	Elements []Element
	hooks    []Hook
}

// NewSequence creates a sequence of elements
func NewSequence(elements ...Element) *Sequence {
	return &Sequence{Elements: elements}
}

// Append adds elements at the end of the sequence
func (s *Sequence) Append(elements ...Element) {
	s.Elements = append(s.Elements, elements...)
}

// AddHook registers an observer called after every element
func (s *Sequence) AddHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Forward implements Element
func (s *Sequence) Forward(in OpticalData, sampling Sampling) OpticalData {
	data := in
	for _, element := range s.Elements {
		out := element.Forward(data, sampling)
		mustValidate(out, "optics: sequence")
		for _, h := range s.hooks {
			h(element, data, out)
		}
		data = out
	}
	return data
}

// Run is a forward pass from the default empty input
func (s *Sequence) Run(sampling Sampling) OpticalData {
	return s.Forward(DefaultInput(), sampling)
}

// Children implements Composite
func (s *Sequence) Children() []Element {
	return s.Elements
}

// Composite is an element made of other elements run in order
type Composite interface {
	Element
	Children() []Element
}

// Walk runs a forward pass like Forward, descending into composite elements
// and calling hook after every leaf element
func Walk(element Element, in OpticalData, sampling Sampling, hook Hook) OpticalData {
	if c, ok := element.(Composite); ok {
		data := in
		for _, child := range c.Children() {
			data = Walk(child, data, sampling, hook)
		}
		return data
	}
	out := element.Forward(in, sampling)
	mustValidate(out, "optics: walk")
	if hook != nil {
		hook(element, in, out)
	}
	return out
}
