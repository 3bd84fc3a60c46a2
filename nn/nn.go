// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/model"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/penalty"
	"github.com/born-ml/mlp/internal/rng"
)

// Capabilities

// Layer is the forward/backward contract shared by every layer.
type Layer = nn.Layer

// Parameterized is implemented by layers with learnable parameters.
type Parameterized = nn.Parameterized

// Regularized is implemented by layers whose penalty has a gradient.
type Regularized = nn.Regularized

// Stochastic is implemented by layers that sample during training.
type Stochastic = nn.Stochastic

// ParameterizedLayer is a Layer with learnable parameters.
type ParameterizedLayer = nn.ParameterizedLayer

// StochasticLayer is a Layer that samples during training.
type StochasticLayer = nn.StochasticLayer

// StochasticParameterizedLayer combines both capabilities.
type StochasticParameterizedLayer = nn.StochasticParameterizedLayer

// Errors

// ParameterError describes a rejected parameter assignment.
type ParameterError = nn.ParameterError

// Layer errors.
var (
	ErrShapeMismatch          = nn.ErrShapeMismatch
	ErrParameterShapeMismatch = nn.ErrParameterShapeMismatch
	ErrUnsupportedOperation   = nn.ErrUnsupportedOperation
	ErrInvalidConfig          = nn.ErrInvalidConfig
)

// Layers

// Affine represents a fully connected layer.
type Affine = nn.Affine

// AffineConfig holds construction options for an Affine layer.
type AffineConfig = nn.AffineConfig

// NewAffine creates a new Affine layer.
//
// Example:
//
//	src := nn.NewSource(nn.DefaultSeed)
//	layer, err := nn.NewAffine(784, 128, nn.AffineConfig{
//	    WeightsInit: nn.GlorotUniform(0, src),
//	})
func NewAffine(inputDim, outputDim int, cfg AffineConfig) (*Affine, error) {
	return nn.NewAffine(inputDim, outputDim, cfg)
}

// Reshape changes the per-item shape of a batch.
type Reshape = nn.Reshape

// NewReshape creates a Reshape layer. With no dimensions it flattens.
func NewReshape(outputShape ...int) (*Reshape, error) {
	return nn.NewReshape(outputShape...)
}

// Dropout randomly zeroes units during training.
type Dropout = nn.Dropout

// NewDropout creates a Dropout layer keeping units with probability includeProb.
func NewDropout(includeProb float64, src *Source) (*Dropout, error) {
	return nn.NewDropout(includeProb, src)
}

// Activations

// Sigmoid represents the logistic activation.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Tanh represents the hyperbolic tangent activation.
type Tanh = nn.Tanh

// NewTanh creates a new Tanh activation layer.
func NewTanh() *Tanh {
	return nn.NewTanh()
}

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// ELU represents the Exponential Linear Unit activation.
type ELU = nn.ELU

// NewELU creates a new ELU activation layer.
func NewELU(alpha float64) *ELU {
	return nn.NewELU(alpha)
}

// SELU represents the Scaled Exponential Linear Unit activation.
type SELU = nn.SELU

// Self-normalising SELU constants.
const (
	SELUAlpha = nn.SELUAlpha
	SELUScale = nn.SELUScale
)

// NewSELU creates a new SELU activation layer.
func NewSELU(alpha, scale float64) *SELU {
	return nn.NewSELU(alpha, scale)
}

// GELU represents the Gaussian Error Linear Unit (tanh approximation).
type GELU = nn.GELU

// NewGELU creates a new GELU activation layer.
func NewGELU() *GELU {
	return nn.NewGELU()
}

// ISRLU represents the Inverse Square Root Linear Unit activation.
type ISRLU = nn.ISRLU

// NewISRLU creates a new ISRLU activation layer.
func NewISRLU(alpha float64) *ISRLU {
	return nn.NewISRLU(alpha)
}

// Softmax represents the row-wise softmax.
type Softmax = nn.Softmax

// NewSoftmax creates a new Softmax layer.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// Models

// MultipleLayerModel chains layers and back-propagates through them.
type MultipleLayerModel = model.MultipleLayerModel

// NewModel creates a model applying layers in order.
func NewModel(layers ...Layer) *MultipleLayerModel {
	return model.New(layers...)
}

// Randomness

// Source is a seedable random number generator.
type Source = rng.Source

// DefaultSeed is the seed used by examples and the CLI.
const DefaultSeed = rng.DefaultSeed

// NewSource creates a Source seeded with seed.
func NewSource(seed uint64) *Source {
	return rng.New(seed)
}

// Initialization

// Initializer produces initial parameter values for a shape.
type Initializer = initializer.Initializer

// Constant fills parameters with v.
func Constant(v float64) Initializer {
	return initializer.Constant(v)
}

// Uniform draws parameters from U(low, high).
func Uniform(low, high float64, src *Source) Initializer {
	return initializer.Uniform(low, high, src)
}

// Normal draws parameters from N(mean, std²).
func Normal(mean, std float64, src *Source) Initializer {
	return initializer.Normal(mean, std, src)
}

// GlorotUniform draws (fanOut, fanIn) weights with Glorot/Xavier scaling.
// A zero gain means 1.
func GlorotUniform(gain float64, src *Source) Initializer {
	return initializer.GlorotUniform(gain, src)
}

// GlorotNormal is the normal variant of GlorotUniform.
func GlorotNormal(gain float64, src *Source) Initializer {
	return initializer.GlorotNormal(gain, src)
}

// Regularization

// Penalty is a differentiable parameter regulariser.
type Penalty = penalty.Penalty

// L1 returns coef·Σ|p|.
func L1(coef float64) (Penalty, error) {
	p, err := penalty.L1(coef)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// L2 returns 0.5·coef·Σp².
func L2(coef float64) (Penalty, error) {
	p, err := penalty.L2(coef)
	if err != nil {
		return nil, err
	}
	return p, nil
}
