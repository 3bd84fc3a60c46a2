// Package tensor implements the dense batch arrays that layers transform.
//
// A Tensor is a row-major float64 array whose leading axis indexes
// independent batch items. Rank-2 tensors can be viewed as gonum matrices
// without copying, which is how matrix products are computed.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tensor is a dense float64 array with a leading batch axis.
//
// Example:
//
//	x, _ := tensor.FromRows([][]float64{{1, 2, 3}})
//	x.Shape()      // (1, 3)
//	x.BatchSize()  // 1
type Tensor struct {
	shape Shape
	data  []float64
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Data returns the underlying storage in row-major order.
// Writes through the returned slice modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	return len(t.data)
}

// BatchSize returns the size of the leading axis.
func (t *Tensor) BatchSize() int {
	if len(t.shape) == 0 {
		return 1
	}
	return t.shape[0]
}

// ItemShape returns the per-item shape (everything after the batch axis).
func (t *Tensor) ItemShape() Shape {
	if len(t.shape) == 0 {
		return Shape{}
	}
	return t.shape[1:].Clone()
}

// ItemSize returns the number of elements in each batch item.
func (t *Tensor) ItemSize() int {
	if b := t.BatchSize(); b > 0 {
		return len(t.data) / b
	}
	return 0
}

// Row returns the storage of batch item r. The slice aliases the tensor.
func (t *Tensor) Row(r int) []float64 {
	n := t.ItemSize()
	return t.data[r*n : (r+1)*n : (r+1)*n]
}

// At returns element (i, j) of a rank-2 tensor.
func (t *Tensor) At(i, j int) float64 {
	return t.data[i*t.shape[1]+j]
}

// Set assigns element (i, j) of a rank-2 tensor.
func (t *Tensor) Set(i, j int, v float64) {
	t.data[i*t.shape[1]+j] = v
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// Reshape returns a copy of t with a new shape. One dimension may be Auto.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	resolved, err := Shape(shape).Resolve(len(t.data))
	if err != nil {
		return nil, fmt.Errorf("reshape %v: %w", t.shape, err)
	}
	out := t.Clone()
	out.shape = resolved
	return out, nil
}

// Dense returns a gonum view of a rank-2 tensor sharing its storage.
func (t *Tensor) Dense() *mat.Dense {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor.Dense: expected rank 2, got shape %v", t.shape))
	}
	return mat.NewDense(t.shape[0], t.shape[1], t.data)
}

// Vector returns a gonum view of a rank-1 tensor sharing its storage.
func (t *Tensor) Vector() *mat.VecDense {
	if len(t.shape) != 1 {
		panic(fmt.Sprintf("tensor.Vector: expected rank 1, got shape %v", t.shape))
	}
	return mat.NewVecDense(t.shape[0], t.data)
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if len(t.shape) == 2 {
		return fmt.Sprintf("Tensor%v\n%v", t.shape, mat.Formatted(t.Dense(), mat.Squeeze()))
	}
	return fmt.Sprintf("Tensor%v%v", t.shape, t.data)
}
