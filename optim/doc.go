// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training layers and
// models.
//
// # Overview
//
// Optimizers read parameters through Target.Params, compute new values and
// write them back with Target.SetParams. Any nn.Parameterized layer and any
// nn.MultipleLayerModel is a Target.
//
// # Available Optimizers
//
// SGD: Stochastic Gradient Descent with optional momentum
//
//	opt := optim.NewSGD(model, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam: Adaptive Moment Estimation
//
//	opt := optim.NewAdam(model, optim.AdamConfig{
//	    LR:      0.001,
//	    Beta1:   0.9,
//	    Beta2:   0.999,
//	    Epsilon: 1e-8,
//	})
//
// # Training Loop
//
//	for epoch := range epochs {
//	    acts, err := model.FProp(inputs, false)
//	    grads, err := model.GradsWrtParams(acts, lossGrads)
//	    if err := opt.Step(grads); err != nil {
//	        return err
//	    }
//	}
//
// Gradients passed to Step must follow Params order and shapes; otherwise
// Step returns an error wrapping ErrGradientMismatch and nothing changes.
package optim
