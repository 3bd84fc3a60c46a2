package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// Reshape changes the per-item shape of a batch while preserving the batch
// axis and element order.
//
// One output dimension may be tensor.Auto, in which case it is inferred from
// the per-item element count:
//
//	flatten, _ := nn.NewReshape()             // (batch, 2, 3) -> (batch, 6)
//	images, _ := nn.NewReshape(1, 28, 28)     // (batch, 784) -> (batch, 1, 28, 28)
//	rows, _ := nn.NewReshape(tensor.Auto, 4)  // (batch, 12)  -> (batch, 3, 4)
type Reshape struct {
	outputShape tensor.Shape
}

// NewReshape creates a Reshape layer. With no dimensions the layer flattens
// each item to a vector.
func NewReshape(outputShape ...int) (*Reshape, error) {
	shape := tensor.Shape(outputShape).Clone()
	if len(shape) == 0 {
		shape = tensor.Shape{tensor.Auto}
	}
	if err := shape.CheckPattern(); err != nil {
		return nil, configErrorf("Reshape: %v", err)
	}
	return &Reshape{outputShape: shape}, nil
}

// OutputShape returns the configured per-item shape, possibly containing Auto.
func (r *Reshape) OutputShape() tensor.Shape {
	return r.outputShape.Clone()
}

// FProp reshapes inputs to (batch,) + outputShape.
func (r *Reshape) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	if inputs.Rank() < 1 {
		return nil, tensor.Mismatchf("Reshape.FProp", inputs.Shape(), "inputs need a batch axis")
	}
	item, err := r.outputShape.Resolve(inputs.ItemSize())
	if err != nil {
		return nil, fmt.Errorf("Reshape.FProp: %w", err)
	}
	shape := append([]int{inputs.BatchSize()}, item...)
	return inputs.Reshape(shape...)
}

// BProp reshapes gradsWrtOutputs back to the exact shape of inputs.
func (r *Reshape) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	if gradsWrtOutputs.Len() != inputs.Len() {
		return nil, tensor.Mismatchf("Reshape.BProp", gradsWrtOutputs.Shape(),
			"%d gradients cannot be reshaped to inputs %v", gradsWrtOutputs.Len(), inputs.Shape())
	}
	if err := checkSameBatch("Reshape.BProp", inputs, gradsWrtOutputs); err != nil {
		return nil, err
	}
	return gradsWrtOutputs.Reshape(inputs.Shape()...)
}

// String implements fmt.Stringer.
func (r *Reshape) String() string {
	return fmt.Sprintf("Reshape(outputShape=%v)", r.outputShape)
}
