// Package penalty implements parameter regularisers.
//
// A Penalty maps a parameter array to a scalar cost that is added to the
// training objective outside of the layers, together with its gradient.
package penalty

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidCoefficient is returned for a non-positive or non-finite
// coefficient.
var ErrInvalidCoefficient = errors.New("invalid penalty coefficient")

// Penalty is a scalar cost function of a parameter array.
type Penalty interface {
	// Value returns the penalty evaluated on p.
	Value(p *tensor.Tensor) float64

	// Grad returns the gradient of Value with respect to p, shaped like p.
	Grad(p *tensor.Tensor) *tensor.Tensor

	fmt.Stringer
}

// L1Penalty is coef·Σ|p|.
type L1Penalty struct {
	coef float64
}

// L1 creates an L1 penalty. coef must be positive and finite.
func L1(coef float64) (*L1Penalty, error) {
	if !(coef > 0) || math.IsInf(coef, 0) {
		return nil, fmt.Errorf("penalty.L1: %w: %g", ErrInvalidCoefficient, coef)
	}
	return &L1Penalty{coef: coef}, nil
}

// Value implements Penalty.
func (l *L1Penalty) Value(p *tensor.Tensor) float64 {
	return l.coef * floats.Norm(p.Data(), 1)
}

// Grad implements Penalty. The subgradient at 0 is 0.
func (l *L1Penalty) Grad(p *tensor.Tensor) *tensor.Tensor {
	return p.Map(func(x float64) float64 {
		switch {
		case x > 0:
			return l.coef
		case x < 0:
			return -l.coef
		default:
			return 0
		}
	})
}

// String implements fmt.Stringer.
func (l *L1Penalty) String() string {
	return fmt.Sprintf("L1Penalty(%g)", l.coef)
}

// L2Penalty is 0.5·coef·Σp².
type L2Penalty struct {
	coef float64
}

// L2 creates an L2 penalty. coef must be positive and finite.
func L2(coef float64) (*L2Penalty, error) {
	if !(coef > 0) || math.IsInf(coef, 0) {
		return nil, fmt.Errorf("penalty.L2: %w: %g", ErrInvalidCoefficient, coef)
	}
	return &L2Penalty{coef: coef}, nil
}

// Value implements Penalty.
func (l *L2Penalty) Value(p *tensor.Tensor) float64 {
	d := p.Data()
	return 0.5 * l.coef * floats.Dot(d, d)
}

// Grad implements Penalty.
func (l *L2Penalty) Grad(p *tensor.Tensor) *tensor.Tensor {
	return p.Scale(l.coef)
}

// String implements fmt.Stringer.
func (l *L2Penalty) String() string {
	return fmt.Sprintf("L2Penalty(%g)", l.coef)
}
