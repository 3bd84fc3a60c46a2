package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/penalty"
	"github.com/born-ml/mlp/internal/tensor"
)

// AffineConfig holds construction options for an Affine layer.
type AffineConfig struct {
	WeightsInit    initializer.Initializer // Required
	BiasesInit     initializer.Initializer // Default: Constant(0)
	WeightsPenalty penalty.Penalty         // Optional regulariser on W
	BiasesPenalty  penalty.Penalty         // Optional regulariser on b
}

// Affine implements a fully connected layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, input_dim]
//   - W is the weight matrix with shape [output_dim, input_dim]
//   - b is the bias vector with shape [output_dim]
//   - y is the output with shape [batch_size, output_dim]
//
// Example:
//
//	src := rng.New(rng.DefaultSeed)
//	layer, err := nn.NewAffine(784, 128, nn.AffineConfig{
//	    WeightsInit: initializer.Uniform(-0.1, 0.1, src),
//	})
type Affine struct {
	inputDim       int
	outputDim      int
	weights        *tensor.Tensor // [output_dim, input_dim]
	biases         *tensor.Tensor // [output_dim]
	weightsPenalty penalty.Penalty
	biasesPenalty  penalty.Penalty
}

// NewAffine creates a new Affine layer, invoking each initializer once.
func NewAffine(inputDim, outputDim int, cfg AffineConfig) (*Affine, error) {
	if inputDim <= 0 || outputDim <= 0 {
		return nil, configErrorf("Affine: dimensions must be positive, got input=%d output=%d", inputDim, outputDim)
	}
	if cfg.WeightsInit == nil {
		return nil, configErrorf("Affine: weights initializer is required")
	}
	if cfg.BiasesInit == nil {
		cfg.BiasesInit = initializer.Constant(0)
	}

	l := &Affine{
		inputDim:       inputDim,
		outputDim:      outputDim,
		weightsPenalty: cfg.WeightsPenalty,
		biasesPenalty:  cfg.BiasesPenalty,
	}

	weightsShape := tensor.Shape{outputDim, inputDim}
	l.weights = cfg.WeightsInit.Initialize(weightsShape)
	if !l.weights.Shape().Equal(weightsShape) {
		return nil, &ParameterError{Layer: l.String(), Index: 0, Want: weightsShape, Got: l.weights.Shape()}
	}

	biasesShape := tensor.Shape{outputDim}
	l.biases = cfg.BiasesInit.Initialize(biasesShape)
	if !l.biases.Shape().Equal(biasesShape) {
		return nil, &ParameterError{Layer: l.String(), Index: 1, Want: biasesShape, Got: l.biases.Shape()}
	}

	return l, nil
}

// FProp computes y = x @ W.T + b.
//
// Input shape: [batch_size, input_dim]
// Output shape: [batch_size, output_dim]
func (l *Affine) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkBatch("Affine.FProp", inputs, l.inputDim); err != nil {
		return nil, err
	}

	outputs, err := tensor.MatMulTransB(inputs, l.weights)
	if err != nil {
		return nil, fmt.Errorf("Affine.FProp: %w", err)
	}
	if err := outputs.AddRowVector(l.biases.Data()); err != nil {
		return nil, fmt.Errorf("Affine.FProp: %w", err)
	}
	return outputs, nil
}

// BProp computes dL/dx = dL/dy @ W.
func (l *Affine) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	if err := l.checkBackward("Affine.BProp", inputs, gradsWrtOutputs); err != nil {
		return nil, err
	}
	if err := checkSameShape("Affine.BProp", outputs, gradsWrtOutputs); err != nil {
		return nil, err
	}

	grads, err := tensor.MatMul(gradsWrtOutputs, l.weights)
	if err != nil {
		return nil, fmt.Errorf("Affine.BProp: %w", err)
	}
	return grads, nil
}

// GradsWrtParams returns [dL/dW, dL/db] where
// dL/dW = (dL/dy).T @ x and dL/db sums dL/dy over the batch.
func (l *Affine) GradsWrtParams(inputs, gradsWrtOutputs *tensor.Tensor) ([]*tensor.Tensor, error) {
	if err := l.checkBackward("Affine.GradsWrtParams", inputs, gradsWrtOutputs); err != nil {
		return nil, err
	}

	gradsWrtWeights, err := tensor.TransAMatMul(gradsWrtOutputs, inputs)
	if err != nil {
		return nil, fmt.Errorf("Affine.GradsWrtParams: %w", err)
	}
	gradsWrtBiases := tensor.SumRows(gradsWrtOutputs)

	return []*tensor.Tensor{gradsWrtWeights, gradsWrtBiases}, nil
}

func (l *Affine) checkBackward(op string, inputs, gradsWrtOutputs *tensor.Tensor) error {
	if err := checkBatch(op, inputs, l.inputDim); err != nil {
		return err
	}
	if err := checkBatch(op, gradsWrtOutputs, l.outputDim); err != nil {
		return err
	}
	return checkSameBatch(op, inputs, gradsWrtOutputs)
}

// ParamsPenalty returns the weights penalty plus the biases penalty,
// each 0 when not configured.
func (l *Affine) ParamsPenalty() float64 {
	total := 0.0
	if l.weightsPenalty != nil {
		total += l.weightsPenalty.Value(l.weights)
	}
	if l.biasesPenalty != nil {
		total += l.biasesPenalty.Value(l.biases)
	}
	return total
}

// ParamsPenaltyGrads returns [d penalty/dW, d penalty/db].
func (l *Affine) ParamsPenaltyGrads() []*tensor.Tensor {
	grads := []*tensor.Tensor{tensor.ZerosLike(l.weights), tensor.ZerosLike(l.biases)}
	if l.weightsPenalty != nil {
		grads[0] = l.weightsPenalty.Grad(l.weights)
	}
	if l.biasesPenalty != nil {
		grads[1] = l.biasesPenalty.Grad(l.biases)
	}
	return grads
}

// Params returns [weights, biases].
func (l *Affine) Params() []*tensor.Tensor {
	return []*tensor.Tensor{l.weights, l.biases}
}

// SetParams replaces [weights, biases].
func (l *Affine) SetParams(values []*tensor.Tensor) error {
	if err := checkParams(l, l.Params(), values); err != nil {
		return err
	}
	l.weights = values[0]
	l.biases = values[1]
	return nil
}

// Weights returns the weight matrix [output_dim, input_dim].
func (l *Affine) Weights() *tensor.Tensor {
	return l.weights
}

// Biases returns the bias vector [output_dim].
func (l *Affine) Biases() *tensor.Tensor {
	return l.biases
}

// InputDim returns the number of input features.
func (l *Affine) InputDim() int {
	return l.inputDim
}

// OutputDim returns the number of output features.
func (l *Affine) OutputDim() int {
	return l.outputDim
}

// String implements fmt.Stringer.
func (l *Affine) String() string {
	return fmt.Sprintf("Affine(inputDim=%d, outputDim=%d)", l.inputDim, l.outputDim)
}
