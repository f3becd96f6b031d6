package core

import "fmt"

// Not returns the element-wise negation of a mask. A nil mask stays nil.
func Not(mask []bool) []bool {
	if mask == nil {
		return nil
	}
	out := make([]bool, len(mask))
	for i, m := range mask {
		out[i] = !m
	}
	return out
}

// Count returns the number of true entries
func Count(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

func checkMask(kind string, n int, mask []bool) {
	if len(mask) != n {
		panic(fmt.Sprintf("core: %s filter with mask of length %d over %d rows", kind, len(mask), n))
	}
}

// FilterVec2 keeps the rows selected by mask
func FilterVec2(xs []Vec2, mask []bool) []Vec2 {
	checkMask("vec2", len(xs), mask)
	out := make([]Vec2, 0, Count(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, xs[i])
		}
	}
	return out
}

// FilterScalars keeps the rows selected by mask
func FilterScalars(xs []Scalar, mask []bool) []Scalar {
	checkMask("scalar", len(xs), mask)
	out := make([]Scalar, 0, Count(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, xs[i])
		}
	}
	return out
}

// FilterFloats keeps the rows selected by mask
func FilterFloats(xs []float64, mask []bool) []float64 {
	checkMask("float", len(xs), mask)
	out := make([]float64, 0, Count(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, xs[i])
		}
	}
	return out
}
