// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense float64 arrays that
// layers consume and produce.
//
// # Overview
//
// A Tensor is a row-major array whose first axis is the batch axis:
//   - (batch, dim) for Affine, Softmax and most activations
//   - (batch, d1, d2, ...) for elementwise layers and Reshape
//
// Matrix products are delegated to gonum.org/v1/gonum/mat.
//
// # Basic Usage
//
//	x := tensor.MustFromRows([][]float64{
//	    {1, 2, 3},
//	    {4, 5, 6},
//	})
//	fmt.Println(x.Shape())  // (2, 3)
//
//	y, err := x.Reshape(2, tensor.Auto)
//
// # Shapes
//
// Shape patterns may contain a single Auto dimension, resolved from an
// element count:
//
//	s, err := tensor.Shape{tensor.Auto, 4}.Resolve(12)  // (3, 4)
//
// # Errors
//
// Every shape failure wraps ErrShapeMismatch:
//
//	if errors.Is(err, tensor.ErrShapeMismatch) { ... }
//
// # Parallelism
//
// Row-wise operations split large batches across goroutines. Use
// SetParallel(tensor.SequentialConfig()) to force single-threaded execution.
package tensor
