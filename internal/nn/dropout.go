package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
)

// Dropout randomly zeroes units during training.
//
// In stochastic mode each element is kept with probability includeProb and
// zeroed otherwise. In deterministic mode every element is scaled by
// includeProb, the expectation of the stochastic transform.
//
// The layer records the mode and mask of its most recent forward pass, and
// BProp differentiates that pass. A Dropout is not safe for concurrent use.
type Dropout struct {
	includeProb float64
	src         *rng.Source

	ran  bool           // a forward pass has been recorded
	mask *tensor.Tensor // 1 for kept units, 0 for dropped; nil after a deterministic pass
}

// NewDropout creates a Dropout layer drawing masks from src.
func NewDropout(includeProb float64, src *rng.Source) (*Dropout, error) {
	if !(includeProb > 0 && includeProb <= 1) {
		return nil, configErrorf("Dropout: include probability must be in (0, 1], got %g", includeProb)
	}
	if src == nil {
		return nil, configErrorf("Dropout: random source is required")
	}
	return &Dropout{includeProb: includeProb, src: src}, nil
}

// IncludeProb returns the probability of keeping a unit.
func (d *Dropout) IncludeProb() float64 {
	return d.includeProb
}

// Source implements Stochastic.
func (d *Dropout) Source() *rng.Source {
	return d.src
}

// FProp applies a freshly sampled dropout mask.
func (d *Dropout) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return d.FPropMode(inputs, true)
}

// FPropMode implements Stochastic.
//
// Masks are drawn sequentially in row-major order so that a seeded source
// yields the same mask regardless of parallel settings.
func (d *Dropout) FPropMode(inputs *tensor.Tensor, stochastic bool) (*tensor.Tensor, error) {
	d.ran = true
	if !stochastic {
		d.mask = nil
		return inputs.Scale(d.includeProb), nil
	}
	mask := tensor.Full(1, inputs.Shape()...)
	outputs := inputs.Clone()
	m, data := mask.Data(), outputs.Data()
	for i := range data {
		if d.src.Float64() >= d.includeProb {
			m[i] = 0
			data[i] = 0
		}
	}
	d.mask = mask
	return outputs, nil
}

// BProp differentiates the most recent forward pass: gradients flow through
// kept units after a stochastic pass and are scaled by includeProb after a
// deterministic one.
func (d *Dropout) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	const op = "Dropout.BProp"
	if !d.ran {
		return nil, fmt.Errorf("%s: %w: no forward pass recorded", op, ErrUnsupportedOperation)
	}
	if !inputs.Shape().Equal(outputs.Shape()) {
		return nil, tensor.Mismatch(op, inputs.Shape(), outputs.Shape())
	}
	if d.mask == nil {
		return tensor.ZipMap(op, inputs, gradsWrtOutputs, func(_, g float64) float64 {
			return d.includeProb * g
		})
	}
	if !d.mask.Shape().Equal(inputs.Shape()) {
		return nil, tensor.Mismatchf(op, inputs.Shape(), "recorded mask has shape %v", d.mask.Shape())
	}
	return tensor.ZipMap3(op, inputs, d.mask, gradsWrtOutputs, func(_, m, g float64) float64 {
		if m == 0 {
			return 0
		}
		return g
	})
}

// String implements fmt.Stringer.
func (d *Dropout) String() string {
	return fmt.Sprintf("Dropout(includeProb=%g)", d.includeProb)
}
