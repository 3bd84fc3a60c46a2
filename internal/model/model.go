// Package model chains layers into a feed-forward network.
package model

import (
	"fmt"
	"strings"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// MultipleLayerModel applies a list of layers in order.
//
// Each layer's output becomes the next layer's input:
//
//	m := model.New(affine1, nn.NewReLU(), affine2, nn.NewSoftmax())
//	acts, err := m.FProp(inputs, false)
//	outputs := acts[len(acts)-1]
//
// The model's parameters are the concatenation of every parameterised
// layer's parameters, in layer order.
type MultipleLayerModel struct {
	layers []nn.Layer
}

// New creates a model from layers.
func New(layers ...nn.Layer) *MultipleLayerModel {
	return &MultipleLayerModel{layers: append([]nn.Layer(nil), layers...)}
}

// Add appends a layer to the model.
func (m *MultipleLayerModel) Add(layer nn.Layer) {
	m.layers = append(m.layers, layer)
}

// Len returns the number of layers.
func (m *MultipleLayerModel) Len() int {
	return len(m.layers)
}

// Layer returns the layer at index.
//
// Panics if index is out of bounds.
func (m *MultipleLayerModel) Layer(index int) nn.Layer {
	if index < 0 || index >= len(m.layers) {
		panic("MultipleLayerModel.Layer: index out of bounds")
	}
	return m.layers[index]
}

// FProp runs the forward pass and returns every activation, starting with
// inputs themselves, so the result has Len()+1 entries.
//
// When evaluation is true stochastic layers run their deterministic
// transform; otherwise they sample.
func (m *MultipleLayerModel) FProp(inputs *tensor.Tensor, evaluation bool) ([]*tensor.Tensor, error) {
	activations := make([]*tensor.Tensor, 0, len(m.layers)+1)
	activations = append(activations, inputs)
	for i, layer := range m.layers {
		var (
			out *tensor.Tensor
			err error
		)
		if s, ok := layer.(nn.Stochastic); ok {
			out, err = s.FPropMode(activations[i], !evaluation)
		} else {
			out, err = layer.FProp(activations[i])
		}
		if err != nil {
			return nil, fmt.Errorf("layer %d (%v): %w", i, layer, err)
		}
		activations = append(activations, out)
	}
	return activations, nil
}

// Predict returns the final activation of an evaluation forward pass.
func (m *MultipleLayerModel) Predict(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	acts, err := m.FProp(inputs, true)
	if err != nil {
		return nil, err
	}
	return acts[len(acts)-1], nil
}

// GradsWrtParams back-propagates gradsWrtOutputs through the activations
// returned by FProp and returns gradients in Params order.
//
// Penalty gradients of nn.Regularized layers are included, so the result
// is the gradient of the data objective plus ParamsPenalty.
func (m *MultipleLayerModel) GradsWrtParams(activations []*tensor.Tensor, gradsWrtOutputs *tensor.Tensor) ([]*tensor.Tensor, error) {
	if len(activations) != len(m.layers)+1 {
		return nil, fmt.Errorf("%v: expected %d activations, got %d", m, len(m.layers)+1, len(activations))
	}

	perLayer := make([][]*tensor.Tensor, len(m.layers))
	grads := gradsWrtOutputs
	for i := len(m.layers) - 1; i >= 0; i-- {
		layer := m.layers[i]
		inputs, outputs := activations[i], activations[i+1]

		if p, ok := layer.(nn.Parameterized); ok {
			pg, err := p.GradsWrtParams(inputs, grads)
			if err != nil {
				return nil, fmt.Errorf("layer %d (%v): %w", i, layer, err)
			}
			if r, ok := layer.(nn.Regularized); ok {
				if pg, err = addPenaltyGrads(pg, r.ParamsPenaltyGrads()); err != nil {
					return nil, fmt.Errorf("layer %d (%v): %w", i, layer, err)
				}
			}
			perLayer[i] = pg
		}

		if i == 0 {
			break
		}
		var err error
		if grads, err = layer.BProp(inputs, outputs, grads); err != nil {
			return nil, fmt.Errorf("layer %d (%v): %w", i, layer, err)
		}
	}

	var out []*tensor.Tensor
	for _, pg := range perLayer {
		out = append(out, pg...)
	}
	return out, nil
}

func addPenaltyGrads(grads, penalty []*tensor.Tensor) ([]*tensor.Tensor, error) {
	out := make([]*tensor.Tensor, len(grads))
	for j, g := range grads {
		if j >= len(penalty) || penalty[j] == nil {
			out[j] = g
			continue
		}
		sum, err := tensor.Add(g, penalty[j])
		if err != nil {
			return nil, err
		}
		out[j] = sum
	}
	return out, nil
}

// Params returns the parameters of every parameterised layer in order.
func (m *MultipleLayerModel) Params() []*tensor.Tensor {
	var params []*tensor.Tensor
	for _, layer := range m.layers {
		if p, ok := layer.(nn.Parameterized); ok {
			params = append(params, p.Params()...)
		}
	}
	return params
}

// SetParams splits values across the parameterised layers. The total count
// is checked first, and layers already updated are restored if a later
// layer rejects its values.
func (m *MultipleLayerModel) SetParams(values []*tensor.Tensor) error {
	if want := len(m.Params()); len(values) != want {
		return &nn.ParameterError{
			Layer:   "MultipleLayerModel",
			Index:   -1,
			Details: fmt.Sprintf("expected %d parameters, got %d", want, len(values)),
		}
	}

	type applied struct {
		layer    nn.Parameterized
		previous []*tensor.Tensor
	}
	var done []applied
	offset := 0
	for i, layer := range m.layers {
		p, ok := layer.(nn.Parameterized)
		if !ok {
			continue
		}
		previous := p.Params()
		n := len(previous)
		if err := p.SetParams(values[offset : offset+n]); err != nil {
			for _, a := range done {
				_ = a.layer.SetParams(a.previous)
			}
			return fmt.Errorf("layer %d: %w", i, err)
		}
		done = append(done, applied{layer: p, previous: previous})
		offset += n
	}
	return nil
}

// ParamsPenalty returns the summed penalty of every parameterised layer.
func (m *MultipleLayerModel) ParamsPenalty() float64 {
	var total float64
	for _, layer := range m.layers {
		if p, ok := layer.(nn.Parameterized); ok {
			total += p.ParamsPenalty()
		}
	}
	return total
}

// String implements fmt.Stringer.
func (m *MultipleLayerModel) String() string {
	var b strings.Builder
	b.WriteString("MultipleLayerModel(\n")
	for _, layer := range m.layers {
		fmt.Fprintf(&b, "    %v\n", layer)
	}
	b.WriteString(")")
	return b.String()
}
