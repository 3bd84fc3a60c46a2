package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// Layer errors.
var (
	// ErrShapeMismatch is shared with the tensor package so that
	// errors.Is works for failures raised at either level.
	ErrShapeMismatch          = tensor.ErrShapeMismatch
	ErrParameterShapeMismatch = errors.New("parameter shape mismatch")
	ErrUnsupportedOperation   = errors.New("unsupported operation")
	ErrInvalidConfig          = errors.New("invalid layer configuration")
)

// ParameterError describes a rejected parameter assignment.
type ParameterError struct {
	Layer   string       // Layer description
	Index   int          // Parameter position, -1 for a count mismatch
	Want    tensor.Shape // Shape of the existing parameter
	Got     tensor.Shape // Shape supplied
	Details string
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v: %s", e.Layer, ErrParameterShapeMismatch, e.Details)
	}
	return fmt.Sprintf("%s: %v: parameter %d: want %v, got %v",
		e.Layer, ErrParameterShapeMismatch, e.Index, e.Want, e.Got)
}

// Unwrap makes errors.Is(err, ErrParameterShapeMismatch) hold.
func (e *ParameterError) Unwrap() error {
	return ErrParameterShapeMismatch
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
