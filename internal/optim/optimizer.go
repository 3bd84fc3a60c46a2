// Package optim implements optimization algorithms for training layer
// parameters.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers never mutate parameters in place. Each Step computes new
// parameter values and writes them back through Target.SetParams, so any
// nn.Parameterized layer or a model.MultipleLayerModel can be trained.
//
// Example usage:
//
//	opt := optim.NewAdam(m, optim.AdamConfig{LR: 0.001})
//
//	for epoch := range epochs {
//	    acts, _ := m.FProp(inputs, false)
//	    grads, _ := m.GradsWrtParams(acts, lossGrads(acts[len(acts)-1], targets))
//	    if err := opt.Step(grads); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// ErrGradientMismatch is returned when gradients do not line up with the
// target's parameters.
var ErrGradientMismatch = errors.New("gradients do not match parameters")

// Target is anything whose parameters can be read and replaced wholesale.
type Target interface {
	Params() []*tensor.Tensor
	SetParams(values []*tensor.Tensor) error
}

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update using gradients given in Params order.
	Step(grads []*tensor.Tensor) error

	// LR returns the current learning rate.
	LR() float64

	// SetLR updates the learning rate, for scheduling.
	SetLR(lr float64)
}

// checkGrads validates grads against params.
func checkGrads(params, grads []*tensor.Tensor) error {
	if len(grads) != len(params) {
		return fmt.Errorf("%w: expected %d gradients, got %d", ErrGradientMismatch, len(params), len(grads))
	}
	for i, g := range grads {
		if g == nil || !g.Shape().Equal(params[i].Shape()) {
			var got tensor.Shape
			if g != nil {
				got = g.Shape()
			}
			return fmt.Errorf("%w: gradient %d: want %v, got %v", ErrGradientMismatch, i, params[i].Shape(), got)
		}
	}
	return nil
}

// zerosLike returns a zero tensor per parameter.
func zerosLike(params []*tensor.Tensor) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		out[i] = tensor.ZerosLike(p)
	}
	return out
}
