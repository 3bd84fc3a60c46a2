// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/mlp/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Target is anything whose parameters can be read and replaced.
type Target = optim.Target

// ErrGradientMismatch is returned when gradients do not line up with parameters.
var ErrGradientMismatch = optim.ErrGradientMismatch

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	layer, _ := nn.NewAffine(784, 10, nn.AffineConfig{WeightsInit: nn.Constant(0)})
//	optimizer := optim.NewSGD(layer, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(target Target, config SGDConfig) *SGD {
	return optim.NewSGD(target, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(target Target, config AdamConfig) *Adam {
	return optim.NewAdam(target, config)
}
