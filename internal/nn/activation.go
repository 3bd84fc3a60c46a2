package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// elementwiseFProp applies f to every element of inputs.
func elementwiseFProp(inputs *tensor.Tensor, f func(x float64) float64) (*tensor.Tensor, error) {
	return inputs.Map(f), nil
}

// elementwiseBProp returns gradsWrtOutputs ⊙ f'(x, y), where df receives each
// input x and the matching output y.
func elementwiseBProp(op string, inputs, outputs, gradsWrtOutputs *tensor.Tensor,
	df func(x, y float64) float64,
) (*tensor.Tensor, error) {
	return tensor.ZipMap3(op, inputs, outputs, gradsWrtOutputs, func(x, y, g float64) float64 {
		return g * df(x, y)
	})
}

// Sigmoid is a logistic sigmoid activation layer.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid struct{}

// NewSigmoid creates a new Sigmoid layer.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// FProp applies σ(x).
func (s *Sigmoid) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, sigmoid)
}

// BProp uses σ'(x) = y(1 - y).
func (s *Sigmoid) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("Sigmoid.BProp", inputs, outputs, gradsWrtOutputs, func(_, y float64) float64 {
		return y * (1 - y)
	})
}

// String implements fmt.Stringer.
func (s *Sigmoid) String() string {
	return "Sigmoid"
}

// sigmoid never evaluates exp of a positive argument.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// Tanh is a hyperbolic tangent activation layer.
//
// Tanh squashes values to the range (-1, 1).
type Tanh struct{}

// NewTanh creates a new Tanh layer.
func NewTanh() *Tanh {
	return &Tanh{}
}

// FProp applies tanh(x).
func (t *Tanh) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, math.Tanh)
}

// BProp uses tanh'(x) = 1 - y².
func (t *Tanh) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("Tanh.BProp", inputs, outputs, gradsWrtOutputs, func(_, y float64) float64 {
		return 1 - y*y
	})
}

// String implements fmt.Stringer.
func (t *Tanh) String() string {
	return "Tanh"
}

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The derivative at exactly 0 is taken from the non-negative branch, so
// gradients pass through unchanged where x == 0.
type ReLU struct{}

// NewReLU creates a new ReLU layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// FProp applies max(0, x).
func (r *ReLU) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, func(x float64) float64 {
		if x >= 0 {
			return x
		}
		return 0
	})
}

// BProp passes gradients where x >= 0.
func (r *ReLU) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("ReLU.BProp", inputs, outputs, gradsWrtOutputs, func(x, _ float64) float64 {
		if x >= 0 {
			return 1
		}
		return 0
	})
}

// String implements fmt.Stringer.
func (r *ReLU) String() string {
	return "ReLU"
}
