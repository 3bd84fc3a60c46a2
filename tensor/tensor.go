// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Type aliases for public API

// Tensor is a dense row-major float64 array.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// ShapeError describes an operation rejected because of a shape.
type ShapeError = tensor.ShapeError

// Auto marks a dimension inferred from the element count.
const Auto = tensor.Auto

// ErrShapeMismatch is wrapped by every shape failure.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// ParallelConfig controls how row-wise operations are split.
type ParallelConfig = parallel.Config

// Creation functions

// New wraps data in a tensor of the given shape. data is used directly.
func New(shape Shape, data []float64) (*Tensor, error) {
	return tensor.New(shape, data)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(2, 3)
func Zeros(shape ...int) *Tensor {
	return tensor.Zeros(shape...)
}

// Full creates a tensor filled with a specific value.
func Full(value float64, shape ...int) *Tensor {
	return tensor.Full(value, shape...)
}

// FromRows copies a rectangular slice of rows into a (len(rows), dim) tensor.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// MustFromRows is like FromRows but panics on ragged input.
func MustFromRows(rows [][]float64) *Tensor {
	return tensor.MustFromRows(rows)
}

// FromVector copies values into a rank-1 tensor.
func FromVector(values []float64) *Tensor {
	return tensor.FromVector(values)
}

// FromDense copies a gonum matrix into a rank-2 tensor.
func FromDense(m mat.Matrix) *Tensor {
	return tensor.FromDense(m)
}

// Comparison

// Equal reports whether a and b have equal shapes and identical values.
func Equal(a, b *Tensor) bool {
	return tensor.Equal(a, b)
}

// AllClose reports whether a and b agree within |a-b| <= atol + rtol·|b|.
func AllClose(a, b *Tensor, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}

// Parallelism

// SetParallel replaces the configuration used by row-wise operations.
func SetParallel(cfg ParallelConfig) {
	tensor.SetParallel(cfg)
}

// DefaultParallelConfig returns a configuration using every CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a configuration that never spawns goroutines.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}
