package tensor

import "fmt"

// Auto marks a dimension to be inferred from the total element count.
const Auto = -1

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	out := "("
	for i, d := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(d)
	}
	return out + ")"
}

// CheckPattern validates a shape that may contain a single Auto dimension.
func (s Shape) CheckPattern() error {
	autos := 0
	for i, dim := range s {
		switch {
		case dim == Auto:
			autos++
		case dim <= 0:
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0 or Auto)", i, dim)
		}
	}
	if autos > 1 {
		return fmt.Errorf("at most one Auto dimension allowed, got %d", autos)
	}
	return nil
}

// Resolve replaces an Auto dimension with the size implied by total.
//
// The known dimensions must divide total evenly and, without an Auto
// dimension, multiply to exactly total.
//
//	Shape{Auto, 4}.Resolve(12)  → (3, 4)
//	Shape{2, Auto}.Resolve(7)   → error
func (s Shape) Resolve(total int) (Shape, error) {
	if err := s.CheckPattern(); err != nil {
		return nil, Mismatchf("Shape.Resolve", s, "%v", err)
	}

	known := 1
	auto := -1
	for i, dim := range s {
		if dim == Auto {
			auto = i
			continue
		}
		known *= dim
	}

	out := s.Clone()
	if auto < 0 {
		if known != total {
			return nil, Mismatchf("Shape.Resolve", s, "%d elements cannot be viewed as %d", total, known)
		}
		return out, nil
	}
	if known == 0 || total%known != 0 {
		return nil, Mismatchf("Shape.Resolve", s, "%d elements not divisible by %d", total, known)
	}
	out[auto] = total / known
	return out, nil
}
