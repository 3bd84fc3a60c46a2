// Package initializer produces initial parameter arrays for parameterized layers.
//
// An Initializer is invoked once per parameter when a layer is constructed.
// Random initializers draw from a caller-supplied *rng.Source so that
// construction is reproducible.
package initializer

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
)

// Initializer creates a freshly allocated array of the given shape.
type Initializer interface {
	Initialize(shape tensor.Shape) *tensor.Tensor
}

// Func adapts a plain function to the Initializer interface.
type Func func(shape tensor.Shape) *tensor.Tensor

// Initialize calls f(shape).
func (f Func) Initialize(shape tensor.Shape) *tensor.Tensor {
	return f(shape)
}

// ConstantInit fills every element with Value.
type ConstantInit struct {
	Value float64
}

// Constant returns an initializer filling arrays with v.
//
// Commonly used for biases:
//
//	biases := initializer.Constant(0)
func Constant(v float64) *ConstantInit {
	return &ConstantInit{Value: v}
}

// Initialize implements Initializer.
func (c *ConstantInit) Initialize(shape tensor.Shape) *tensor.Tensor {
	return tensor.Full(c.Value, shape...)
}

// String implements fmt.Stringer.
func (c *ConstantInit) String() string {
	return fmt.Sprintf("Constant(%g)", c.Value)
}

// UniformInit draws values from U(Low, High).
type UniformInit struct {
	Low, High float64
	src       *rng.Source
}

// Uniform returns an initializer drawing from U(low, high) using src.
func Uniform(low, high float64, src *rng.Source) *UniformInit {
	return &UniformInit{Low: low, High: high, src: src}
}

// Initialize implements Initializer.
func (u *UniformInit) Initialize(shape tensor.Shape) *tensor.Tensor {
	t := tensor.Zeros(shape...)
	data := t.Data()
	for i := range data {
		data[i] = u.src.Uniform(u.Low, u.High)
	}
	return t
}

// String implements fmt.Stringer.
func (u *UniformInit) String() string {
	return fmt.Sprintf("Uniform(%g, %g)", u.Low, u.High)
}

// NormalInit draws values from N(Mean, Std²).
type NormalInit struct {
	Mean, Std float64
	src       *rng.Source
}

// Normal returns an initializer drawing from N(mean, std²) using src.
func Normal(mean, std float64, src *rng.Source) *NormalInit {
	return &NormalInit{Mean: mean, Std: std, src: src}
}

// Initialize implements Initializer.
func (n *NormalInit) Initialize(shape tensor.Shape) *tensor.Tensor {
	t := tensor.Zeros(shape...)
	data := t.Data()
	for i := range data {
		data[i] = n.src.Normal(n.Mean, n.Std)
	}
	return t
}

// String implements fmt.Stringer.
func (n *NormalInit) String() string {
	return fmt.Sprintf("Normal(%g, %g)", n.Mean, n.Std)
}

// GlorotUniformInit implements Glorot/Xavier uniform initialization.
//
// Values are drawn from U(-b, b) with b = Gain·sqrt(6 / (fanIn + fanOut)),
// where the fans are read from a 2-D (fanOut, fanIn) weight shape.
type GlorotUniformInit struct {
	Gain float64
	src  *rng.Source
}

// GlorotUniform returns a Glorot uniform initializer. A zero gain means 1.
func GlorotUniform(gain float64, src *rng.Source) *GlorotUniformInit {
	if gain == 0 {
		gain = 1
	}
	return &GlorotUniformInit{Gain: gain, src: src}
}

// Initialize implements Initializer.
//
// Panics if shape is not 2-D.
func (g *GlorotUniformInit) Initialize(shape tensor.Shape) *tensor.Tensor {
	fanIn, fanOut := fans("GlorotUniform", shape)
	bound := g.Gain * math.Sqrt(6.0/float64(fanIn+fanOut))
	return Uniform(-bound, bound, g.src).Initialize(shape)
}

// String implements fmt.Stringer.
func (g *GlorotUniformInit) String() string {
	return fmt.Sprintf("GlorotUniform(gain=%g)", g.Gain)
}

// GlorotNormalInit implements Glorot/Xavier normal initialization with
// std = Gain·sqrt(2 / (fanIn + fanOut)).
type GlorotNormalInit struct {
	Gain float64
	src  *rng.Source
}

// GlorotNormal returns a Glorot normal initializer. A zero gain means 1.
func GlorotNormal(gain float64, src *rng.Source) *GlorotNormalInit {
	if gain == 0 {
		gain = 1
	}
	return &GlorotNormalInit{Gain: gain, src: src}
}

// Initialize implements Initializer.
//
// Panics if shape is not 2-D.
func (g *GlorotNormalInit) Initialize(shape tensor.Shape) *tensor.Tensor {
	fanIn, fanOut := fans("GlorotNormal", shape)
	std := g.Gain * math.Sqrt(2.0/float64(fanIn+fanOut))
	return Normal(0, std, g.src).Initialize(shape)
}

// String implements fmt.Stringer.
func (g *GlorotNormalInit) String() string {
	return fmt.Sprintf("GlorotNormal(gain=%g)", g.Gain)
}

func fans(name string, shape tensor.Shape) (fanIn, fanOut int) {
	if len(shape) != 2 {
		panic(fmt.Sprintf("%s: expected 2-D (fanOut, fanIn) shape, got %v", name, shape))
	}
	return shape[1], shape[0]
}
