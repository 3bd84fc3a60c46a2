package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// Standard SELU constants from Klambauer et al., "Self-Normalizing Neural
// Networks" (2017).
const (
	SELUAlpha = 1.6732632423543772848170429916717
	SELUScale = 1.0507009873554804934193349852946
)

// ELU is an exponential linear unit layer.
//
//	f(x) = x             if x >= 0
//	f(x) = α(exp(x) - 1) if x < 0
//
// α sets the value the negative branch saturates to and is a fixed
// hyperparameter.
type ELU struct {
	alpha float64
}

// NewELU creates a new ELU layer.
func NewELU(alpha float64) *ELU {
	return &ELU{alpha: alpha}
}

// Alpha returns α.
func (e *ELU) Alpha() float64 {
	return e.alpha
}

// FProp applies the ELU transform.
func (e *ELU) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, func(x float64) float64 {
		return elu(x, e.alpha)
	})
}

// BProp uses f'(x) = 1 for x >= 0 and α·exp(x) otherwise.
func (e *ELU) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("ELU.BProp", inputs, outputs, gradsWrtOutputs, func(x, _ float64) float64 {
		return eluGrad(x, e.alpha)
	})
}

// String implements fmt.Stringer.
func (e *ELU) String() string {
	return fmt.Sprintf("ELU(alpha=%g)", e.alpha)
}

func elu(x, alpha float64) float64 {
	if x >= 0 {
		return x
	}
	return alpha * math.Expm1(x)
}

func eluGrad(x, alpha float64) float64 {
	if x >= 0 {
		return 1
	}
	return alpha * math.Exp(x)
}

// SELU is a scaled exponential linear unit layer: λ·ELU_α(x).
//
// Use SELUAlpha and SELUScale for the self-normalising parameterisation.
type SELU struct {
	alpha float64
	scale float64
}

// NewSELU creates a new SELU layer.
func NewSELU(alpha, scale float64) *SELU {
	return &SELU{alpha: alpha, scale: scale}
}

// Alpha returns α.
func (s *SELU) Alpha() float64 {
	return s.alpha
}

// Scale returns λ.
func (s *SELU) Scale() float64 {
	return s.scale
}

// FProp applies λx for x >= 0 and λα(exp(x) - 1) otherwise.
func (s *SELU) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, func(x float64) float64 {
		return s.scale * elu(x, s.alpha)
	})
}

// BProp uses f'(x) = λ for x >= 0 and λα·exp(x) otherwise.
func (s *SELU) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("SELU.BProp", inputs, outputs, gradsWrtOutputs, func(x, _ float64) float64 {
		return s.scale * eluGrad(x, s.alpha)
	})
}

// String implements fmt.Stringer.
func (s *SELU) String() string {
	return fmt.Sprintf("SELU(alpha=%g, scale=%g)", s.alpha, s.scale)
}
