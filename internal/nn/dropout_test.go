package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/gradcheck"
	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDropout(t *testing.T, p float64, seed uint64) *Dropout {
	t.Helper()
	d, err := NewDropout(p, rng.New(seed))
	require.NoError(t, err)
	return d
}

// TestDropoutReproducible checks that equal seeds draw equal masks.
func TestDropoutReproducible(t *testing.T) {
	inputs := tensor.Full(1, 16, 8)

	a, err := newTestDropout(t, 0.5, rng.DefaultSeed).FProp(inputs)
	require.NoError(t, err)
	b, err := newTestDropout(t, 0.5, rng.DefaultSeed).FProp(inputs)
	require.NoError(t, err)
	assert.True(t, tensor.Equal(a, b))

	c, err := newTestDropout(t, 0.5, rng.DefaultSeed+1).FProp(inputs)
	require.NoError(t, err)
	assert.False(t, tensor.Equal(a, c))
}

// TestDropoutMask checks that every output is either its input or zero, and
// that roughly includeProb of the units survive.
func TestDropoutMask(t *testing.T) {
	d := newTestDropout(t, 0.75, rng.DefaultSeed)
	inputs := tensor.Full(2, 100, 100)

	outputs, err := d.FPropMode(inputs, true)
	require.NoError(t, err)

	kept := 0
	for _, v := range outputs.Data() {
		require.Contains(t, []float64{0, 2}, v)
		if v == 2 {
			kept++
		}
	}
	assert.InDelta(t, 0.75, float64(kept)/float64(outputs.Len()), 0.02)
}

// TestDropoutDeterministic checks that deterministic mode scales by
// includeProb and consumes no randomness.
func TestDropoutDeterministic(t *testing.T) {
	d := newTestDropout(t, 0.8, rng.DefaultSeed)
	inputs := tensor.MustFromRows([][]float64{{1, -2, 0}, {5, 10, -0.5}})

	outputs, err := d.FPropMode(inputs, false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.8, -1.6, 0, 4, 8, -0.4}, outputs.Data(), 1e-15)

	want := rng.New(rng.DefaultSeed).Float64()
	assert.Equal(t, want, d.Source().Float64())
}

// TestDropoutIncludeAll checks that includeProb 1 is the identity in both
// modes.
func TestDropoutIncludeAll(t *testing.T) {
	d := newTestDropout(t, 1, rng.DefaultSeed)
	inputs := randomBatch(rng.New(7), 4, 6)

	for _, stochastic := range []bool{true, false} {
		outputs, err := d.FPropMode(inputs, stochastic)
		require.NoError(t, err)
		assert.True(t, tensor.Equal(inputs, outputs), "stochastic=%v", stochastic)
	}
}

// TestDropoutBProp checks that gradients flow through kept units only, zero
// inputs included.
func TestDropoutBProp(t *testing.T) {
	const seed = 42
	d := newTestDropout(t, 0.5, seed)
	inputs := tensor.Zeros(2, 32)
	grads := tensor.Full(3, 2, 32)

	outputs, err := d.FProp(inputs)
	require.NoError(t, err)
	got, err := d.BProp(inputs, outputs, grads)
	require.NoError(t, err)

	draws := rng.New(seed)
	dropped := 0
	for i, v := range got.Data() {
		if draws.Float64() >= 0.5 {
			dropped++
			assert.Zero(t, v, "element %d", i)
		} else {
			assert.Equal(t, 3.0, v, "element %d", i)
		}
	}
	assert.Positive(t, dropped)

	_, err = d.BProp(inputs, outputs, tensor.Zeros(2, 3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = d.BProp(tensor.Zeros(1, 4), tensor.Zeros(1, 4), tensor.Zeros(1, 4))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

// TestDropoutBPropDeterministic checks that a deterministic pass scales
// gradients by includeProb.
func TestDropoutBPropDeterministic(t *testing.T) {
	d := newTestDropout(t, 0.8, rng.DefaultSeed)
	inputs := tensor.MustFromRows([][]float64{{1, 0, -2}})
	grads := tensor.MustFromRows([][]float64{{10, 20, 30}})

	outputs, err := d.FPropMode(inputs, false)
	require.NoError(t, err)
	got, err := d.BProp(inputs, outputs, grads)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{8, 16, 24}, got.Data(), 1e-12)
}

// TestDropoutBPropBeforeFProp checks that BProp needs a recorded pass.
func TestDropoutBPropBeforeFProp(t *testing.T) {
	d := newTestDropout(t, 0.5, rng.DefaultSeed)
	x := tensor.Zeros(1, 2)

	_, err := d.BProp(x, x, x)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

// TestDropoutGradients checks BProp numerically with a fixed mask.
func TestDropoutGradients(t *testing.T) {
	src := rng.New(rng.DefaultSeed)
	d := newTestDropout(t, 0.6, 99)
	inputs := randomBatch(src, 3, 5)
	grads := randomBatch(src, 3, 5)

	settings := &gradcheck.Settings{BeforeFProp: func() { d.Source().Seed(99) }}
	res, err := gradcheck.Inputs(d, inputs, grads, settings)
	require.NoError(t, err)
	assert.True(t, res.Within(gradRTol, gradATol), res.String())

	zeros := tensor.Zeros(3, 5)
	res, err = gradcheck.Inputs(d, zeros, grads, settings)
	require.NoError(t, err)
	assert.True(t, res.Within(gradRTol, gradATol), res.String())
}

// TestNewDropoutInvalid checks configuration validation.
func TestNewDropoutInvalid(t *testing.T) {
	src := rng.New(rng.DefaultSeed)
	for _, p := range []float64{0, -0.1, 1.5} {
		_, err := NewDropout(p, src)
		assert.ErrorIs(t, err, ErrInvalidConfig, "p=%g", p)
	}
	_, err := NewDropout(0.5, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestDropoutIsStochastic checks the capability contracts.
func TestDropoutIsStochastic(t *testing.T) {
	var layer Layer = newTestDropout(t, 0.5, rng.DefaultSeed)

	_, ok := layer.(Stochastic)
	assert.True(t, ok)
	_, ok = layer.(Parameterized)
	assert.False(t, ok)
}
