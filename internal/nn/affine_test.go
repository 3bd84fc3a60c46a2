package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/penalty"
	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedInit returns an initializer yielding t, counting its invocations.
func fixedInit(t *tensor.Tensor, calls *int) initializer.Func {
	return func(tensor.Shape) *tensor.Tensor {
		*calls++
		return t.Clone()
	}
}

// TestAffineScenario walks through a hand-computed forward/backward pass.
func TestAffineScenario(t *testing.T) {
	var calls int
	layer, err := NewAffine(3, 2, AffineConfig{
		WeightsInit: fixedInit(tensor.MustFromRows([][]float64{{1, 0, 0}, {0, 1, 0}}), &calls),
		BiasesInit:  fixedInit(tensor.FromVector([]float64{0, 0}), &calls),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "each initializer must run exactly once")

	inputs := tensor.MustFromRows([][]float64{{1, 2, 3}})
	outputs, err := layer.FProp(inputs)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2}, outputs.Shape())
	assert.Equal(t, []float64{1, 2}, outputs.Data())

	grads := tensor.MustFromRows([][]float64{{1, 1}})
	gradsWrtInputs, err := layer.BProp(inputs, outputs, grads)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 0}, gradsWrtInputs.Data())

	paramGrads, err := layer.GradsWrtParams(inputs, grads)
	require.NoError(t, err)
	require.Len(t, paramGrads, 2)
	assert.Equal(t, tensor.Shape{2, 3}, paramGrads[0].Shape())
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, paramGrads[0].Data())
	assert.Equal(t, tensor.Shape{2}, paramGrads[1].Shape())
	assert.Equal(t, []float64{1, 1}, paramGrads[1].Data())

	assert.Zero(t, layer.ParamsPenalty())
}

// TestAffineBiasBroadcast checks that biases are added to every batch row.
func TestAffineBiasBroadcast(t *testing.T) {
	var calls int
	layer, err := NewAffine(2, 2, AffineConfig{
		WeightsInit: fixedInit(tensor.MustFromRows([][]float64{{1, 2}, {3, 4}}), &calls),
		BiasesInit:  initializer.Constant(0.5),
	})
	require.NoError(t, err)

	outputs, err := layer.FProp(tensor.MustFromRows([][]float64{{1, 0}, {0, 1}, {1, 1}}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3.5, 2.5, 4.5, 3.5, 7.5}, outputs.Data())
}

// TestAffineLinearity checks fprop(a·x1 + b·x2) = a·fprop(x1) + b·fprop(x2) - (a+b-1)·bias.
func TestAffineLinearity(t *testing.T) {
	layer := newTestAffine(t, 4, 3)
	src := rng.New(11)

	x1 := randomBatch(src, 5, 4)
	x2 := randomBatch(src, 5, 4)
	a, b := 0.7, -1.3

	mixed, err := tensor.AddScaled(x1.Scale(a), b, x2)
	require.NoError(t, err)
	lhs, err := layer.FProp(mixed)
	require.NoError(t, err)

	y1, err := layer.FProp(x1)
	require.NoError(t, err)
	y2, err := layer.FProp(x2)
	require.NoError(t, err)
	rhs, err := tensor.AddScaled(y1.Scale(a), b, y2)
	require.NoError(t, err)
	require.NoError(t, rhs.AddRowVector(layer.Biases().Scale(-(a + b - 1)).Data()))

	assert.True(t, tensor.AllClose(lhs, rhs, 1e-12, 1e-12))
}

// TestAffineSetParams checks wholesale replacement and its shape checks.
func TestAffineSetParams(t *testing.T) {
	layer := newTestAffine(t, 3, 2)

	w := tensor.Full(1, 2, 3)
	b := tensor.Full(-1, 2)
	require.NoError(t, layer.SetParams([]*tensor.Tensor{w, b}))

	params := layer.Params()
	require.Len(t, params, 2)
	assert.Same(t, w, params[0])
	assert.Same(t, b, params[1])

	outputs, err := layer.FProp(tensor.MustFromRows([][]float64{{1, 2, 3}}))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, outputs.Data())

	err = layer.SetParams([]*tensor.Tensor{tensor.Zeros(3, 2), b})
	assert.ErrorIs(t, err, ErrParameterShapeMismatch)

	err = layer.SetParams([]*tensor.Tensor{w})
	assert.ErrorIs(t, err, ErrParameterShapeMismatch)

	err = layer.SetParams([]*tensor.Tensor{w, nil})
	assert.ErrorIs(t, err, ErrParameterShapeMismatch)

	// Failed assignments leave the parameters untouched.
	assert.Same(t, w, layer.Weights())
	assert.Same(t, b, layer.Biases())
}

// TestAffinePenalty checks penalty values and gradients.
func TestAffinePenalty(t *testing.T) {
	l1, err := penalty.L1(0.1)
	require.NoError(t, err)
	l2, err := penalty.L2(2)
	require.NoError(t, err)

	var calls int
	layer, err := NewAffine(2, 1, AffineConfig{
		WeightsInit:    fixedInit(tensor.MustFromRows([][]float64{{3, -4}}), &calls),
		BiasesInit:     initializer.Constant(1),
		WeightsPenalty: l1,
		BiasesPenalty:  l2,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.1*7+0.5*2*1, layer.ParamsPenalty(), 1e-12)

	grads := layer.ParamsPenaltyGrads()
	require.Len(t, grads, 2)
	assert.InDeltaSlice(t, []float64{0.1, -0.1}, grads[0].Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{2}, grads[1].Data(), 1e-12)

	// Data gradients are unaffected by penalties.
	inputs := tensor.MustFromRows([][]float64{{1, 1}})
	paramGrads, err := layer.GradsWrtParams(inputs, tensor.MustFromRows([][]float64{{1}}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, paramGrads[0].Data())
}

// TestAffinePenaltyGradsWithoutPenalty returns zero arrays.
func TestAffinePenaltyGradsWithoutPenalty(t *testing.T) {
	layer := newTestAffine(t, 3, 2)
	grads := layer.ParamsPenaltyGrads()
	require.Len(t, grads, 2)
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, make([]float64, 6), grads[0].Data())
	assert.Equal(t, make([]float64, 2), grads[1].Data())
}

// TestNewAffineErrors checks construction failures.
func TestNewAffineErrors(t *testing.T) {
	src := rng.New(1)

	_, err := NewAffine(0, 2, AffineConfig{WeightsInit: initializer.Uniform(-1, 1, src)})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAffine(2, 2, AffineConfig{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var calls int
	_, err = NewAffine(2, 2, AffineConfig{WeightsInit: fixedInit(tensor.Zeros(3, 3), &calls)})
	assert.ErrorIs(t, err, ErrParameterShapeMismatch)
}
