package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

const (
	geluSqrt2OverPi = 0.7978845608028654 // sqrt(2/π)
	geluCoeff       = 0.044715
)

// GELU is a Gaussian error linear unit layer using the tanh approximation:
//
//	f(x) = 0.5·x·(1 + tanh(√(2/π)·(x + 0.044715·x³)))
type GELU struct{}

// NewGELU creates a new GELU layer.
func NewGELU() *GELU {
	return &GELU{}
}

// FProp applies the tanh-form GELU.
func (g *GELU) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, func(x float64) float64 {
		return 0.5 * x * (1 + math.Tanh(geluInner(x)))
	})
}

// BProp uses the exact derivative of the tanh form:
//
//	f'(x) = 0.5·(1 + t) + 0.5·x·(1 - t²)·√(2/π)·(1 + 3·0.044715·x²)
//
// with t = tanh(√(2/π)·(x + 0.044715·x³)). Once tanh saturates the
// derivative is its limit, 0 or 1.
func (g *GELU) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("GELU.BProp", inputs, outputs, gradsWrtOutputs, func(x, _ float64) float64 {
		t := math.Tanh(geluInner(x))
		if 1-t*t == 0 {
			return 0.5 * (1 + t)
		}
		dInner := geluSqrt2OverPi * (1 + 3*geluCoeff*x*x)
		return 0.5*(1+t) + 0.5*x*(1-t*t)*dInner
	})
}

// String implements fmt.Stringer.
func (g *GELU) String() string {
	return "GELU"
}

func geluInner(x float64) float64 {
	return geluSqrt2OverPi * (x + geluCoeff*x*x*x)
}
