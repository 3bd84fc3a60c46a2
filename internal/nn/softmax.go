package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// Softmax normalises each row of a (batch, dim) array into a probability
// distribution.
//
//	y_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// Subtracting the row maximum keeps every exponent <= 0, so large inputs
// cannot overflow. Rows never interact.
type Softmax struct{}

// NewSoftmax creates a new Softmax layer.
func NewSoftmax() *Softmax {
	return &Softmax{}
}

// FProp applies a row-wise softmax.
func (s *Softmax) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	if inputs.Rank() != 2 {
		return nil, tensor.Mismatch("Softmax.FProp", tensor.Shape{tensor.Auto, tensor.Auto}, inputs.Shape())
	}
	return inputs.MapRows(func(dst, src []float64) {
		m := floats.Max(src)
		for i, v := range src {
			dst[i] = math.Exp(v - m)
		}
		floats.Scale(1/floats.Sum(dst), dst)
	}), nil
}

// BProp computes the vector-Jacobian product y ⊙ (g - Σ(g ⊙ y)) per row.
func (s *Softmax) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	if outputs.Rank() != 2 {
		return nil, tensor.Mismatch("Softmax.BProp", tensor.Shape{tensor.Auto, tensor.Auto}, outputs.Shape())
	}
	if err := checkSameShape("Softmax.BProp", outputs, inputs); err != nil {
		return nil, err
	}
	return tensor.ZipRows("Softmax.BProp", outputs, gradsWrtOutputs, func(dst, y, g []float64) {
		dot := floats.Dot(g, y)
		for i := range dst {
			dst[i] = y[i] * (g[i] - dot)
		}
	})
}

// String implements fmt.Stringer.
func (s *Softmax) String() string {
	return "Softmax"
}
