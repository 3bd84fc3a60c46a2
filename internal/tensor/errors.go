package tensor

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch reports an array whose rank or dimensions are incompatible
// with an operation.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError provides detailed information about a shape mismatch.
type ShapeError struct {
	Op      string // Operation that rejected the array (e.g. "Affine.FProp")
	Want    Shape  // Expected shape; -1 entries match any size
	Got     Shape  // Shape actually supplied
	Details string // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	switch {
	case e.Want != nil && e.Details != "":
		return fmt.Sprintf("%s: %v: want %v, got %v: %s", e.Op, ErrShapeMismatch, e.Want, e.Got, e.Details)
	case e.Want != nil:
		return fmt.Sprintf("%s: %v: want %v, got %v", e.Op, ErrShapeMismatch, e.Want, e.Got)
	default:
		return fmt.Sprintf("%s: %v: got %v: %s", e.Op, ErrShapeMismatch, e.Got, e.Details)
	}
}

// Unwrap makes errors.Is(err, ErrShapeMismatch) hold.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// Mismatch builds a ShapeError for op.
func Mismatch(op string, want, got Shape) error {
	return &ShapeError{Op: op, Want: want.Clone(), Got: got.Clone()}
}

// Mismatchf builds a ShapeError for op with a formatted detail message.
func Mismatchf(op string, got Shape, format string, args ...any) error {
	return &ShapeError{Op: op, Got: got.Clone(), Details: fmt.Sprintf(format, args...)}
}
