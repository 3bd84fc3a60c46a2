package tensor

import (
	"math"

	"github.com/born-ml/mlp/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// parallelCfg controls row-parallel execution of elementwise and row-wise ops.
var parallelCfg = parallel.DefaultConfig()

// SetParallel replaces the execution config used by row-wise operations.
// It must not be called while operations are running.
func SetParallel(cfg parallel.Config) {
	parallelCfg = cfg
}

// ParallelConfig returns the execution config used by row-wise operations.
func ParallelConfig() parallel.Config {
	return parallelCfg
}

// forRows runs f over every batch row of t.
func forRows(t *Tensor, f func(r int)) {
	parallel.ForRows(t.BatchSize(), t.ItemSize(), f, parallelCfg)
}

// Map returns f applied to every element.
func (t *Tensor) Map(f func(x float64) float64) *Tensor {
	out := ZerosLike(t)
	forRows(t, func(r int) {
		src, dst := t.Row(r), out.Row(r)
		for i, v := range src {
			dst[i] = f(v)
		}
	})
	return out
}

// MapRows returns a tensor whose row r is produced by f(dst, src) from row r
// of t. f must only write dst.
func (t *Tensor) MapRows(f func(dst, src []float64)) *Tensor {
	out := ZerosLike(t)
	forRows(t, func(r int) {
		f(out.Row(r), t.Row(r))
	})
	return out
}

// ZipMap returns f(a[i], b[i]) for every element. a and b must have equal shapes.
func ZipMap(op string, a, b *Tensor, f func(x, y float64) float64) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch(op, a.shape, b.shape)
	}
	out := ZerosLike(a)
	forRows(a, func(r int) {
		ar, br, dst := a.Row(r), b.Row(r), out.Row(r)
		for i := range dst {
			dst[i] = f(ar[i], br[i])
		}
	})
	return out, nil
}

// ZipMap3 returns f(a[i], b[i], c[i]) for every element. All shapes must match.
func ZipMap3(op string, a, b, c *Tensor, f func(x, y, z float64) float64) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch(op, a.shape, b.shape)
	}
	if !a.shape.Equal(c.shape) {
		return nil, Mismatch(op, a.shape, c.shape)
	}
	out := ZerosLike(a)
	forRows(a, func(r int) {
		ar, br, cr, dst := a.Row(r), b.Row(r), c.Row(r), out.Row(r)
		for i := range dst {
			dst[i] = f(ar[i], br[i], cr[i])
		}
	})
	return out, nil
}

// MatMul returns a · b for rank-2 tensors.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 || a.shape[1] != b.shape[0] {
		return nil, Mismatchf("tensor.MatMul", b.shape, "cannot multiply %v by %v", a.shape, b.shape)
	}
	out := Zeros(a.shape[0], b.shape[1])
	out.Dense().Mul(a.Dense(), b.Dense())
	return out, nil
}

// MatMulTransB returns a · bᵀ for rank-2 tensors.
func MatMulTransB(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 || a.shape[1] != b.shape[1] {
		return nil, Mismatchf("tensor.MatMulTransB", b.shape, "cannot multiply %v by transpose of %v", a.shape, b.shape)
	}
	out := Zeros(a.shape[0], b.shape[0])
	out.Dense().Mul(a.Dense(), b.Dense().T())
	return out, nil
}

// TransAMatMul returns aᵀ · b for rank-2 tensors.
func TransAMatMul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 || a.shape[0] != b.shape[0] {
		return nil, Mismatchf("tensor.TransAMatMul", b.shape, "cannot multiply transpose of %v by %v", a.shape, b.shape)
	}
	out := Zeros(a.shape[1], b.shape[1])
	out.Dense().Mul(a.Dense().T(), b.Dense())
	return out, nil
}

// AddRowVector adds v to every batch row of t in place.
func (t *Tensor) AddRowVector(v []float64) error {
	if t.ItemSize() != len(v) {
		return Mismatchf("tensor.AddRowVector", t.shape, "row length %d, vector length %d", t.ItemSize(), len(v))
	}
	forRows(t, func(r int) {
		floats.Add(t.Row(r), v)
	})
	return nil
}

// SumRows returns the sum over the batch axis, with the per-item shape.
func SumRows(t *Tensor) *Tensor {
	out := &Tensor{shape: t.ItemShape(), data: make([]float64, t.ItemSize())}
	if len(out.shape) == 0 {
		out.shape = Shape{1}
	}
	for r := 0; r < t.BatchSize(); r++ {
		floats.Add(out.data, t.Row(r))
	}
	return out
}

// Add returns a + b.
func Add(a, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch("tensor.Add", a.shape, b.shape)
	}
	out := ZerosLike(a)
	floats.AddTo(out.data, a.data, b.data)
	return out, nil
}

// Sub returns a - b.
func Sub(a, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch("tensor.Sub", a.shape, b.shape)
	}
	out := ZerosLike(a)
	floats.SubTo(out.data, a.data, b.data)
	return out, nil
}

// AddScaled returns a + alpha·b.
func AddScaled(a *Tensor, alpha float64, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch("tensor.AddScaled", a.shape, b.shape)
	}
	out := ZerosLike(a)
	floats.AddScaledTo(out.data, a.data, alpha, b.data)
	return out, nil
}

// Scale returns c·t.
func (t *Tensor) Scale(c float64) *Tensor {
	out := ZerosLike(t)
	floats.ScaleTo(out.data, c, t.data)
	return out
}

// Dot returns the sum of elementwise products of a and b.
func Dot(a, b *Tensor) (float64, error) {
	if !a.shape.Equal(b.shape) {
		return 0, Mismatch("tensor.Dot", a.shape, b.shape)
	}
	return floats.Dot(a.data, b.data), nil
}

// Equal reports whether a and b have equal shapes and identical values.
func Equal(a, b *Tensor) bool {
	return a.shape.Equal(b.shape) && floats.Equal(a.data, b.data)
}

// AllClose reports whether a and b have equal shapes and
// |a-b| <= atol + rtol·|b| holds elementwise.
func AllClose(a, b *Tensor, rtol, atol float64) bool {
	if !a.shape.Equal(b.shape) {
		return false
	}
	return floats.EqualFunc(a.data, b.data, func(x, y float64) bool {
		return math.Abs(x-y) <= atol+rtol*math.Abs(y)
	})
}

// AllFinite reports whether every element is neither NaN nor infinite.
func (t *Tensor) AllFinite() bool {
	for _, v := range t.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ZipRows returns a tensor whose row r is produced by f(dst, a_r, b_r).
// a and b must have equal shapes and f must only write dst.
func ZipRows(op string, a, b *Tensor, f func(dst, x, y []float64)) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, Mismatch(op, a.shape, b.shape)
	}
	out := ZerosLike(a)
	forRows(a, func(r int) {
		f(out.Row(r), a.Row(r), b.Row(r))
	})
	return out, nil
}
