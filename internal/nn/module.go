// Package nn implements the layer protocol and its concrete layers.
//
// This package provides:
//   - Layer: forward/backward transform of a batch of activations
//   - Parameterized: learnable parameters, their gradients and penalties
//   - Stochastic: forward passes driven by a random source
//   - Affine: fully connected layer
//   - Activations: Sigmoid, Tanh, ReLU, ELU, SELU, GELU, ISRLU
//   - Softmax, Reshape, Dropout
//
// Gradients are derived by hand for each layer. A driver holding the ordered
// list of layers feeds each layer's outputs to the next during FProp and walks
// the list backwards during BProp.
package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
)

// Layer is the base interface for all layers.
//
// Implementations never mutate their arguments and never retain them across
// calls. Example:
//
//	outputs, err := layer.FProp(inputs)
//	gradsWrtInputs, err := layer.BProp(inputs, outputs, gradsWrtOutputs)
type Layer interface {
	// FProp maps inputs of shape (batch, inputDim) to outputs of shape
	// (batch, outputDim).
	FProp(inputs *tensor.Tensor) (*tensor.Tensor, error)

	// BProp maps gradients with respect to outputs to gradients with
	// respect to inputs. inputs and outputs must be the pair produced by
	// FProp; the result is shaped like inputs.
	BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error)

	fmt.Stringer
}

// Parameterized is implemented by layers with learnable parameters.
type Parameterized interface {
	// Params returns the current parameter arrays in a fixed order.
	// The arrays are owned by the layer and must not be modified in place.
	Params() []*tensor.Tensor

	// SetParams replaces all parameters, in the order returned by Params.
	// Each value must have the shape of the parameter it replaces.
	SetParams(values []*tensor.Tensor) error

	// GradsWrtParams returns gradients with respect to each parameter,
	// in the order returned by Params. The caller owns the result.
	GradsWrtParams(inputs, gradsWrtOutputs *tensor.Tensor) ([]*tensor.Tensor, error)

	// ParamsPenalty returns the sum of the configured regularisers
	// evaluated on their parameters, or 0 if none are configured.
	ParamsPenalty() float64
}

// Regularized is implemented by parameterized layers that can report the
// gradient of ParamsPenalty with respect to each parameter.
type Regularized interface {
	ParamsPenaltyGrads() []*tensor.Tensor
}

// Stochastic is implemented by layers whose forward pass samples from a
// distribution.
//
// FPropMode with stochastic=true draws from the layer's random source;
// stochastic=false returns the expectation of the stochastic transform.
// BProp always corresponds to the stochastic mode, so outputs produced in
// deterministic mode must not be passed to it.
type Stochastic interface {
	FPropMode(inputs *tensor.Tensor, stochastic bool) (*tensor.Tensor, error)

	// Source returns the random source owned by the layer.
	Source() *rng.Source
}

// ParameterizedLayer is a Layer with learnable parameters.
type ParameterizedLayer interface {
	Layer
	Parameterized
}

// StochasticLayer is a Layer with a stochastic forward pass. Its FProp is
// FPropMode(inputs, true).
type StochasticLayer interface {
	Layer
	Stochastic
}

// StochasticParameterizedLayer combines both capabilities.
type StochasticParameterizedLayer interface {
	Layer
	Stochastic
	Parameterized
}

// UnimplementedLayer can be embedded by layers under construction.
// Every method reports ErrUnsupportedOperation.
type UnimplementedLayer struct{}

// FProp implements Layer.
func (UnimplementedLayer) FProp(*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, fmt.Errorf("FProp: %w", ErrUnsupportedOperation)
}

// BProp implements Layer.
func (UnimplementedLayer) BProp(_, _, _ *tensor.Tensor) (*tensor.Tensor, error) {
	return nil, fmt.Errorf("BProp: %w", ErrUnsupportedOperation)
}

// String implements fmt.Stringer.
func (UnimplementedLayer) String() string {
	return "UnimplementedLayer"
}

// UnimplementedParameterized can be embedded by parameterized layers under
// construction. It reports no parameters and a zero penalty.
type UnimplementedParameterized struct{}

// Params implements Parameterized.
func (UnimplementedParameterized) Params() []*tensor.Tensor {
	return nil
}

// SetParams implements Parameterized.
func (UnimplementedParameterized) SetParams([]*tensor.Tensor) error {
	return fmt.Errorf("SetParams: %w", ErrUnsupportedOperation)
}

// GradsWrtParams implements Parameterized.
func (UnimplementedParameterized) GradsWrtParams(_, _ *tensor.Tensor) ([]*tensor.Tensor, error) {
	return nil, fmt.Errorf("GradsWrtParams: %w", ErrUnsupportedOperation)
}

// ParamsPenalty implements Parameterized.
func (UnimplementedParameterized) ParamsPenalty() float64 {
	return 0
}

// UnimplementedStochastic can be embedded by stochastic layers under
// construction.
type UnimplementedStochastic struct{}

// FPropMode implements Stochastic.
func (UnimplementedStochastic) FPropMode(*tensor.Tensor, bool) (*tensor.Tensor, error) {
	return nil, fmt.Errorf("FPropMode: %w", ErrUnsupportedOperation)
}

// Source implements Stochastic.
func (UnimplementedStochastic) Source() *rng.Source {
	return nil
}
