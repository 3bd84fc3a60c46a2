package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// New creates a tensor of the given shape backed by data.
// The slice is used directly, not copied.
func New(shape Shape, data []float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, Mismatchf("tensor.New", shape, "%v", err)
	}
	if shape.NumElements() != len(data) {
		return nil, Mismatchf("tensor.New", shape, "shape requires %d elements, but got %d",
			shape.NumElements(), len(data))
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}

// Zeros creates a tensor filled with zeros.
//
// Panics if the shape is invalid.
func Zeros(shape ...int) *Tensor {
	s := Shape(shape)
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.Zeros: %v", err))
	}
	return &Tensor{shape: s.Clone(), data: make([]float64, s.NumElements())}
}

// ZerosLike creates a zero tensor with the shape of t.
func ZerosLike(t *Tensor) *Tensor {
	return &Tensor{shape: t.shape.Clone(), data: make([]float64, len(t.data))}
}

// Full creates a tensor filled with v.
//
// Panics if the shape is invalid.
func Full(v float64, shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

// FromRows creates a rank-2 tensor from equal-length rows. Values are copied.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, Mismatchf("tensor.FromRows", Shape{len(rows)}, "empty input")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, Mismatchf("tensor.FromRows", Shape{len(rows), cols},
				"row %d has %d values, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Tensor{shape: Shape{len(rows), cols}, data: data}, nil
}

// FromVector creates a rank-1 tensor. Values are copied.
func FromVector(values []float64) *Tensor {
	data := make([]float64, len(values))
	copy(data, values)
	return &Tensor{shape: Shape{len(values)}, data: data}
}

// FromDense copies a gonum matrix into a rank-2 tensor.
func FromDense(m mat.Matrix) *Tensor {
	r, c := m.Dims()
	t := Zeros(r, c)
	t.Dense().Copy(m)
	return t
}

// MustFromRows is FromRows that panics on error. Intended for tests and
// literals.
func MustFromRows(rows [][]float64) *Tensor {
	t, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return t
}
