package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// checkParams validates a SetParams call against the current parameters.
func checkParams(layer fmt.Stringer, current, values []*tensor.Tensor) error {
	if len(values) != len(current) {
		return &ParameterError{
			Layer:   layer.String(),
			Index:   -1,
			Details: fmt.Sprintf("expected %d parameters, got %d", len(current), len(values)),
		}
	}
	for i, v := range values {
		if v == nil || !v.Shape().Equal(current[i].Shape()) {
			var got tensor.Shape
			if v != nil {
				got = v.Shape()
			}
			return &ParameterError{
				Layer: layer.String(),
				Index: i,
				Want:  current[i].Shape(),
				Got:   got,
			}
		}
	}
	return nil
}

// checkBatch validates a (batch, dim) array.
func checkBatch(op string, x *tensor.Tensor, dim int) error {
	if x.Rank() != 2 || x.Dim(1) != dim {
		return tensor.Mismatch(op, tensor.Shape{tensor.Auto, dim}, x.Shape())
	}
	return nil
}

// checkSameBatch validates that a and b index the same batch items.
func checkSameBatch(op string, a, b *tensor.Tensor) error {
	if a.BatchSize() != b.BatchSize() {
		return tensor.Mismatchf(op, b.Shape(), "batch size %d does not match %d", b.BatchSize(), a.BatchSize())
	}
	return nil
}

// checkSameShape validates that got has the shape of want.
func checkSameShape(op string, want, got *tensor.Tensor) error {
	if !want.Shape().Equal(got.Shape()) {
		return tensor.Mismatch(op, want.Shape(), got.Shape())
	}
	return nil
}
