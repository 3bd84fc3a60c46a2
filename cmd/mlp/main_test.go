package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "mlp "+version+"\n", out)
}

func TestUsage(t *testing.T) {
	code, out, _ := runCLI()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "gradcheck")

	code, _, errOut := runCLI("train")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "train"`)
}

func TestLayers(t *testing.T) {
	code, out, _ := runCLI("layers")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 11)
	assert.Contains(t, lines[0], "Affine(inputDim=4, outputDim=4)")
	assert.Contains(t, lines[0], "[parameterized]")
	assert.Contains(t, out, "Softmax")
	assert.Contains(t, lines[10], "Dropout(includeProb=0.8)")
	assert.Contains(t, lines[10], "[stochastic]")
}

func TestGradcheckPasses(t *testing.T) {
	code, out, errOut := runCLI("gradcheck", "-batch", "3", "-dim", "4", "-seed", "7")
	require.Equal(t, 0, code, "stdout:\n%s\nstderr:\n%s", out, errOut)
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "all gradients match")

	// One input check per layer plus two parameter checks for Affine.
	assert.Equal(t, 13, strings.Count(out, "PASS"))
}

func TestGradcheckFlags(t *testing.T) {
	code, _, errOut := runCLI("gradcheck", "-dim", "0")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "must be positive")

	code, _, _ = runCLI("gradcheck", "-nope")
	assert.Equal(t, 2, code)
}

// identityGrad passes gradients through unchanged, ignoring the derivative.
type identityGrad struct {
	nn.Layer
}

func (l identityGrad) BProp(inputs, outputs, grads *tensor.Tensor) (*tensor.Tensor, error) {
	return grads.Clone(), nil
}

func TestCheckLayerDetectsWrongGradient(t *testing.T) {
	layer := identityGrad{nn.NewSigmoid()}
	results, err := checkLayer(layer, 2, 3, rng.New(1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Within(checkRTol, checkATol))
}
