package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// ISRLU is an inverse square root linear unit layer.
//
//	f(x) = x                 if x >= 0
//	f(x) = x / √(1 + α·x²)   if x < 0
//
// With α < 0 the radicand turns negative for x < -1/√(-α). The resulting
// NaN values are propagated rather than reported; keep 1 + α·x² positive by
// bounding α or normalising the inputs.
type ISRLU struct {
	alpha float64
}

// NewISRLU creates a new ISRLU layer.
func NewISRLU(alpha float64) *ISRLU {
	return &ISRLU{alpha: alpha}
}

// Alpha returns α.
func (l *ISRLU) Alpha() float64 {
	return l.alpha
}

// FProp applies the ISRLU transform.
func (l *ISRLU) FProp(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseFProp(inputs, func(x float64) float64 {
		if x >= 0 {
			return x
		}
		return x / math.Sqrt(1+l.alpha*x*x)
	})
}

// BProp uses f'(x) = 1 for x >= 0 and (1 / √(1 + α·x²))³ otherwise.
func (l *ISRLU) BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error) {
	return elementwiseBProp("ISRLU.BProp", inputs, outputs, gradsWrtOutputs, func(x, _ float64) float64 {
		if x >= 0 {
			return 1
		}
		inv := 1 / math.Sqrt(1+l.alpha*x*x)
		return inv * inv * inv
	})
}

// String implements fmt.Stringer.
func (l *ISRLU) String() string {
	return fmt.Sprintf("ISRLU(alpha=%g)", l.alpha)
}
