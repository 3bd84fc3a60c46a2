package model

import (
	"strings"
	"testing"

	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/penalty"
	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

func newAffine(t *testing.T, in, out int, src *rng.Source, pen penalty.Penalty) *nn.Affine {
	t.Helper()
	layer, err := nn.NewAffine(in, out, nn.AffineConfig{
		WeightsInit:    initializer.GlorotUniform(0, src),
		BiasesInit:     initializer.Uniform(-0.1, 0.1, src),
		WeightsPenalty: pen,
	})
	require.NoError(t, err)
	return layer
}

// newTestModel builds Affine(3,4)+L2 -> Tanh -> Affine(4,2) -> Softmax.
func newTestModel(t *testing.T) *MultipleLayerModel {
	t.Helper()
	src := rng.New(rng.DefaultSeed)
	l2, err := penalty.L2(0.01)
	require.NoError(t, err)
	return New(
		newAffine(t, 3, 4, src, l2),
		nn.NewTanh(),
		newAffine(t, 4, 2, src, nil),
		nn.NewSoftmax(),
	)
}

func flatten(ts []*tensor.Tensor) []float64 {
	var out []float64
	for _, t := range ts {
		out = append(out, t.Data()...)
	}
	return out
}

func unflatten(t *testing.T, like []*tensor.Tensor, x []float64) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(like))
	offset := 0
	for i, p := range like {
		v, err := tensor.New(p.Shape(), append([]float64(nil), x[offset:offset+p.Len()]...))
		require.NoError(t, err)
		out[i] = v
		offset += p.Len()
	}
	return out
}

func TestFPropActivations(t *testing.T) {
	m := newTestModel(t)
	inputs := tensor.MustFromRows([][]float64{{1, 0, -1}, {0.5, 0.5, 0.5}})

	acts, err := m.FProp(inputs, false)
	require.NoError(t, err)
	require.Len(t, acts, m.Len()+1)

	assert.Same(t, inputs, acts[0])
	assert.Equal(t, tensor.Shape{2, 4}, acts[1].Shape())
	assert.Equal(t, tensor.Shape{2, 2}, acts[4].Shape())
	for r := 0; r < 2; r++ {
		assert.InDelta(t, 1.0, floats.Sum(acts[4].Row(r)), 1e-12)
	}

	predicted, err := m.Predict(inputs)
	require.NoError(t, err)
	assert.True(t, tensor.Equal(acts[4], predicted))
}

func TestFPropWrapsLayerErrors(t *testing.T) {
	m := newTestModel(t)
	_, err := m.FProp(tensor.Zeros(2, 5), false)
	require.ErrorIs(t, err, nn.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "layer 0")
}

// TestGradsWrtParams compares the model gradient, penalty included, with
// central differences of Σ g ⊙ outputs + ParamsPenalty.
func TestGradsWrtParams(t *testing.T) {
	m := newTestModel(t)
	src := rng.New(42)
	inputs := tensor.Zeros(5, 3)
	grads := tensor.Zeros(5, 2)
	for _, x := range [][]float64{inputs.Data(), grads.Data()} {
		for i := range x {
			x[i] = src.Uniform(-1, 1)
		}
	}

	acts, err := m.FProp(inputs, true)
	require.NoError(t, err)
	analytic, err := m.GradsWrtParams(acts, grads)
	require.NoError(t, err)
	require.Len(t, analytic, 4)

	original := m.Params()
	objective := func(x []float64) float64 {
		require.NoError(t, m.SetParams(unflatten(t, original, x)))
		out, err := m.Predict(inputs)
		require.NoError(t, err)
		return floats.Dot(out.Data(), grads.Data()) + m.ParamsPenalty()
	}
	numeric := fd.Gradient(nil, objective, flatten(original), &fd.Settings{Formula: fd.Central})
	require.NoError(t, m.SetParams(original))

	assert.InDeltaSlice(t, numeric, flatten(analytic), 1e-7)
}

func TestGradsWrtParamsChecksActivations(t *testing.T) {
	m := newTestModel(t)
	_, err := m.GradsWrtParams([]*tensor.Tensor{tensor.Zeros(1, 3)}, tensor.Zeros(1, 2))
	assert.Error(t, err)
}

func TestEvaluationModeIsDeterministic(t *testing.T) {
	dropout, err := nn.NewDropout(0.5, rng.New(rng.DefaultSeed))
	require.NoError(t, err)
	m := New(dropout)
	inputs := tensor.Full(4, 3, 3)

	acts, err := m.FProp(inputs, true)
	require.NoError(t, err)
	assert.True(t, tensor.Equal(tensor.Full(2, 3, 3), acts[1]))

	acts, err = m.FProp(inputs, false)
	require.NoError(t, err)
	for _, v := range acts[1].Data() {
		assert.Contains(t, []float64{0, 4}, v)
	}
}

func TestParamsAndSetParams(t *testing.T) {
	m := newTestModel(t)
	params := m.Params()
	require.Len(t, params, 4)
	assert.Equal(t, tensor.Shape{4, 3}, params[0].Shape())
	assert.Equal(t, tensor.Shape{4}, params[1].Shape())
	assert.Equal(t, tensor.Shape{2, 4}, params[2].Shape())
	assert.Equal(t, tensor.Shape{2}, params[3].Shape())

	err := m.SetParams(params[:3])
	require.ErrorIs(t, err, nn.ErrParameterShapeMismatch)

	replacement := []*tensor.Tensor{
		tensor.Full(1, 4, 3), tensor.Full(1, 4),
		tensor.Full(1, 2, 4), tensor.Full(1, 3),
	}
	err = m.SetParams(replacement)
	require.ErrorIs(t, err, nn.ErrParameterShapeMismatch)
	assert.Contains(t, err.Error(), "layer 2")
	for i, p := range m.Params() {
		assert.Same(t, params[i], p, "parameter %d restored", i)
	}

	replacement[3] = tensor.Full(1, 2)
	require.NoError(t, m.SetParams(replacement))
	for i, p := range m.Params() {
		assert.Same(t, replacement[i], p)
	}
}

func TestParamsPenalty(t *testing.T) {
	m := newTestModel(t)
	w := m.Params()[0]
	want := 0.5 * 0.01 * floats.Dot(w.Data(), w.Data())
	assert.InDelta(t, want, m.ParamsPenalty(), 1e-15)

	assert.Zero(t, New(nn.NewReLU()).ParamsPenalty())
	assert.Empty(t, New(nn.NewReLU()).Params())
}

func TestString(t *testing.T) {
	m := New(nn.NewReLU())
	m.Add(nn.NewSoftmax())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "Softmax", m.Layer(1).String())

	s := m.String()
	assert.True(t, strings.HasPrefix(s, "MultipleLayerModel(\n"))
	assert.Contains(t, s, "    ReLU\n    Softmax\n")

	assert.Panics(t, func() { m.Layer(2) })
}
