// Package gradcheck compares hand-derived layer gradients against centered
// finite differences.
//
// For gradients g with respect to a layer's outputs, the checked objective is
// L(x) = Σ g ⊙ FProp(x), whose gradient is exactly BProp(x, FProp(x), g).
// The same objective as a function of each parameter checks GradsWrtParams.
package gradcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Transform is the forward/backward contract being checked.
type Transform interface {
	FProp(inputs *tensor.Tensor) (*tensor.Tensor, error)
	BProp(inputs, outputs, gradsWrtOutputs *tensor.Tensor) (*tensor.Tensor, error)
}

// ParamTransform is a Transform with learnable parameters.
type ParamTransform interface {
	Transform
	Params() []*tensor.Tensor
	SetParams(values []*tensor.Tensor) error
	GradsWrtParams(inputs, gradsWrtOutputs *tensor.Tensor) ([]*tensor.Tensor, error)
}

// Settings tunes the finite-difference estimate.
type Settings struct {
	Step float64 // Default: fd's step for the central formula.

	// BeforeFProp runs before every forward pass. Stochastic layers use it
	// to re-seed their source so that each evaluation samples the same mask.
	BeforeFProp func()
}

// Result summarises one comparison.
type Result struct {
	Name      string
	Analytic  []float64
	Numeric   []float64
	MaxAbsErr float64
	MaxRelErr float64
}

// Within reports whether |analytic - numeric| <= atol + rtol·|numeric| holds
// for every element.
func (r Result) Within(rtol, atol float64) bool {
	return floats.EqualFunc(r.Analytic, r.Numeric, func(a, n float64) bool {
		return math.Abs(a-n) <= atol+rtol*math.Abs(n)
	})
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("%s: max abs err %.3g, max rel err %.3g", r.Name, r.MaxAbsErr, r.MaxRelErr)
}

func newResult(name string, analytic, numeric []float64) Result {
	r := Result{Name: name, Analytic: analytic, Numeric: numeric}
	for i := range analytic {
		abs := math.Abs(analytic[i] - numeric[i])
		r.MaxAbsErr = math.Max(r.MaxAbsErr, abs)
		if scale := math.Max(math.Abs(analytic[i]), math.Abs(numeric[i])); scale > 0 {
			r.MaxRelErr = math.Max(r.MaxRelErr, abs/scale)
		}
	}
	return r
}

func (s *Settings) fdSettings() *fd.Settings {
	if s == nil {
		return &fd.Settings{Formula: fd.Central}
	}
	return &fd.Settings{Formula: fd.Central, Step: s.Step}
}

func (s *Settings) before() {
	if s != nil && s.BeforeFProp != nil {
		s.BeforeFProp()
	}
}

// objective evaluates Σ g ⊙ FProp(x) and records the first failure in errp.
func objective(layer Transform, shape tensor.Shape, g *tensor.Tensor, s *Settings, errp *error) func([]float64) float64 {
	return func(x []float64) float64 {
		in, err := tensor.New(shape, x)
		if err == nil {
			s.before()
			var out *tensor.Tensor
			if out, err = layer.FProp(in); err == nil {
				var v float64
				if v, err = tensor.Dot(g, out); err == nil {
					return v
				}
			}
		}
		if *errp == nil {
			*errp = err
		}
		return math.NaN()
	}
}

// Inputs checks BProp against finite differences with respect to inputs.
func Inputs(layer Transform, inputs, gradsWrtOutputs *tensor.Tensor, s *Settings) (Result, error) {
	s.before()
	outputs, err := layer.FProp(inputs)
	if err != nil {
		return Result{}, fmt.Errorf("gradcheck: fprop: %w", err)
	}
	analytic, err := layer.BProp(inputs, outputs, gradsWrtOutputs)
	if err != nil {
		return Result{}, fmt.Errorf("gradcheck: bprop: %w", err)
	}

	var evalErr error
	x := append([]float64(nil), inputs.Data()...)
	numeric := fd.Gradient(nil, objective(layer, inputs.Shape(), gradsWrtOutputs, s, &evalErr), x, s.fdSettings())
	if evalErr != nil {
		return Result{}, fmt.Errorf("gradcheck: objective: %w", evalErr)
	}

	name := "inputs"
	if str, ok := layer.(fmt.Stringer); ok {
		name = str.String() + " inputs"
	}
	return newResult(name, append([]float64(nil), analytic.Data()...), numeric), nil
}

// Params checks GradsWrtParams against finite differences with respect to
// each parameter. The layer's parameters are restored before returning.
func Params(layer ParamTransform, inputs, gradsWrtOutputs *tensor.Tensor, s *Settings) (results []Result, err error) {
	analytic, err := layer.GradsWrtParams(inputs, gradsWrtOutputs)
	if err != nil {
		return nil, fmt.Errorf("gradcheck: grads wrt params: %w", err)
	}

	original := layer.Params()
	defer func() {
		if restoreErr := layer.SetParams(original); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
	}()

	for i, p := range original {
		shape := p.Shape()
		var evalErr error
		f := func(theta []float64) float64 {
			q, err := tensor.New(shape, theta)
			if err == nil {
				params := append([]*tensor.Tensor(nil), original...)
				params[i] = q
				if err = layer.SetParams(params); err == nil {
					return objective(layer, inputs.Shape(), gradsWrtOutputs, s, &evalErr)(inputs.Data())
				}
			}
			if evalErr == nil {
				evalErr = err
			}
			return math.NaN()
		}

		theta := append([]float64(nil), p.Data()...)
		numeric := fd.Gradient(nil, f, theta, s.fdSettings())
		if evalErr != nil {
			return nil, fmt.Errorf("gradcheck: param %d objective: %w", i, evalErr)
		}
		results = append(results, newResult(fmt.Sprintf("param %d", i),
			append([]float64(nil), analytic[i].Data()...), numeric))
	}
	return results, nil
}

// Jacobian returns the numeric Jacobian of FProp at inputs, with one row per
// output element and one column per input element (row-major flattening).
func Jacobian(layer Transform, inputs *tensor.Tensor, s *Settings) (*mat.Dense, error) {
	s.before()
	outputs, err := layer.FProp(inputs)
	if err != nil {
		return nil, fmt.Errorf("gradcheck: fprop: %w", err)
	}

	var evalErr error
	f := func(y, x []float64) {
		in, err := tensor.New(inputs.Shape(), x)
		if err == nil {
			s.before()
			var out *tensor.Tensor
			if out, err = layer.FProp(in); err == nil {
				copy(y, out.Data())
				return
			}
		}
		if evalErr == nil {
			evalErr = err
		}
		for i := range y {
			y[i] = math.NaN()
		}
	}

	jac := mat.NewDense(outputs.Len(), inputs.Len(), nil)
	x := append([]float64(nil), inputs.Data()...)
	settings := &fd.JacobianSettings{Formula: fd.Central}
	if s != nil {
		settings.Step = s.Step
	}
	fd.Jacobian(jac, f, x, settings)
	if evalErr != nil {
		return nil, fmt.Errorf("gradcheck: jacobian: %w", evalErr)
	}
	return jac, nil
}
