// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers with explicit forward and
// backward passes.
//
// # Overview
//
// This package contains:
//   - Layers: Affine, Reshape, Dropout
//   - Activations: Sigmoid, Tanh, ReLU, ELU, SELU, GELU, ISRLU, Softmax
//   - Capabilities: Layer, Parameterized, Regularized, Stochastic
//   - Utilities: MultipleLayerModel, initializers, penalties
//
// Every layer is stateless between calls. The caller keeps the inputs and
// outputs of FProp and hands them back to BProp:
//
//	outputs, err := layer.FProp(inputs)
//	gradsWrtInputs, err := layer.BProp(inputs, outputs, gradsWrtOutputs)
//
// # Basic Usage
//
//	src := nn.NewSource(nn.DefaultSeed)
//	hidden, _ := nn.NewAffine(784, 128, nn.AffineConfig{
//	    WeightsInit: nn.GlorotUniform(0, src),
//	})
//	output, _ := nn.NewAffine(128, 10, nn.AffineConfig{
//	    WeightsInit: nn.GlorotUniform(0, src),
//	})
//
//	model := nn.NewModel(hidden, nn.NewReLU(), output, nn.NewSoftmax())
//	activations, err := model.FProp(inputs, false)
//
// # Layers
//
// Affine: Fully connected layer y = x·Wᵀ + b
//
//	layer, err := nn.NewAffine(inputDim, outputDim, nn.AffineConfig{...})
//
// Reshape: Changes the per-item shape, one dimension may be tensor.Auto
//
//	flatten, err := nn.NewReshape()
//
// Dropout: Keeps each unit with probability p during training
//
//	dropout, err := nn.NewDropout(0.8, src)
//
// # Activations
//
// Elementwise activations accept inputs of any shape:
//
//	sigmoid := nn.NewSigmoid()
//	elu := nn.NewELU(1.0)
//	selu := nn.NewSELU(nn.SELUAlpha, nn.SELUScale)
//
// Softmax normalises each row of a (batch, dim) input.
//
// # Parameter Management
//
// Parameterized layers expose their parameters for optimization:
//
//	params := layer.Params()
//	grads, err := layer.GradsWrtParams(inputs, gradsWrtOutputs)
//
// # Errors
//
// Shape failures wrap ErrShapeMismatch, rejected SetParams calls wrap
// ErrParameterShapeMismatch and invalid constructor arguments wrap
// ErrInvalidConfig.
package nn
