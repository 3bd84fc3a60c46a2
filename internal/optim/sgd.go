package optim

import (
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	opt := optim.NewSGD(layer, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	target     Target
	lr         float64
	momentum   float64
	velocities []*tensor.Tensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer for target.
func NewSGD(target Target, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		target:   target,
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// Step performs a single optimization step.
//
// The target is left untouched when grads do not match its parameters.
func (s *SGD) Step(grads []*tensor.Tensor) error {
	params := s.target.Params()
	if err := checkGrads(params, grads); err != nil {
		return err
	}

	step := grads
	if s.momentum != 0 {
		if s.velocities == nil {
			s.velocities = zerosLike(params)
		}
		for i, g := range grads {
			v := s.velocities[i].Data()
			floats.Scale(s.momentum, v)
			floats.Add(v, g.Data())
		}
		step = s.velocities
	}

	updated := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		next := tensor.ZerosLike(p)
		floats.AddScaledTo(next.Data(), p.Data(), -s.lr, step[i].Data())
		updated[i] = next
	}
	return s.target.SetParams(updated)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
