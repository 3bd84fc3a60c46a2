// Package main provides the mlp command line tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/mlp/internal/gradcheck"
	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/penalty"
	"github.com/born-ml/mlp/internal/rng"
	"github.com/born-ml/mlp/internal/tensor"
)

const version = "v0.1.0-dev"

// Gradient check tolerances.
const (
	checkRTol = 1e-5
	checkATol = 1e-7
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "mlp %s\n", version)
		return 0
	case "layers":
		return listLayers(stdout, stderr)
	case "gradcheck":
		return runGradcheck(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mlp - Feed-forward layers with hand-derived gradients")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version      Show version")
	fmt.Fprintln(w, "  layers       List available layers")
	fmt.Fprintln(w, "  gradcheck    Compare analytic and numeric gradients of every layer")
	fmt.Fprintln(w, "               [-batch N] [-dim D] [-seed S]")
}

// catalog builds one instance of every layer for inputs of width dim.
func catalog(dim int, src *rng.Source) ([]nn.Layer, error) {
	l2, err := penalty.L2(0.01)
	if err != nil {
		return nil, err
	}
	affine, err := nn.NewAffine(dim, dim, nn.AffineConfig{
		WeightsInit:    initializer.GlorotUniform(0, src),
		BiasesInit:     initializer.Uniform(-0.1, 0.1, src),
		WeightsPenalty: l2,
	})
	if err != nil {
		return nil, err
	}
	reshape, err := nn.NewReshape(1, tensor.Auto)
	if err != nil {
		return nil, err
	}
	dropout, err := nn.NewDropout(0.8, rng.New(src.Uint64()))
	if err != nil {
		return nil, err
	}
	return []nn.Layer{
		affine,
		nn.NewSigmoid(),
		nn.NewTanh(),
		nn.NewReLU(),
		nn.NewELU(1.0),
		nn.NewSELU(nn.SELUAlpha, nn.SELUScale),
		nn.NewGELU(),
		nn.NewISRLU(0.5),
		nn.NewSoftmax(),
		reshape,
		dropout,
	}, nil
}

func listLayers(stdout, stderr io.Writer) int {
	layers, err := catalog(4, rng.New(rng.DefaultSeed))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	for _, layer := range layers {
		var caps []string
		if _, ok := layer.(nn.Parameterized); ok {
			caps = append(caps, "parameterized")
		}
		if _, ok := layer.(nn.Stochastic); ok {
			caps = append(caps, "stochastic")
		}
		fmt.Fprintf(stdout, "%-40s %v\n", layer, caps)
	}
	return 0
}

func runGradcheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	batch := fs.Int("batch", 4, "batch size")
	dim := fs.Int("dim", 5, "input dimension")
	seed := fs.Uint64("seed", rng.DefaultSeed, "random seed")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *batch <= 0 || *dim <= 0 {
		fmt.Fprintln(stderr, "error: -batch and -dim must be positive")
		return 2
	}

	src := rng.New(*seed)
	layers, err := catalog(*dim, src)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	failed := 0
	for _, layer := range layers {
		results, err := checkLayer(layer, *batch, *dim, src)
		if err != nil {
			fmt.Fprintf(stdout, "ERROR %v: %v\n", layer, err)
			failed++
			continue
		}
		for _, r := range results {
			status := "PASS"
			if !r.Within(checkRTol, checkATol) {
				status = "FAIL"
				failed++
			}
			fmt.Fprintf(stdout, "%s  %v\n", status, r)
		}
	}

	if failed > 0 {
		fmt.Fprintf(stdout, "\n%d check(s) failed\n", failed)
		return 1
	}
	fmt.Fprintln(stdout, "\nall gradients match")
	return 0
}

// checkLayer runs the input check and, for parameterised layers, the
// parameter checks on random data.
func checkLayer(layer nn.Layer, batch, dim int, src *rng.Source) ([]gradcheck.Result, error) {
	var settings *gradcheck.Settings
	if s, ok := layer.(nn.Stochastic); ok {
		seed := src.Uint64()
		settings = &gradcheck.Settings{BeforeFProp: func() { s.Source().Seed(seed) }}
		settings.BeforeFProp()
	}

	inputs := sample(src, batch, dim)
	outputs, err := layer.FProp(inputs)
	if err != nil {
		return nil, err
	}
	grads := sample(src, outputs.Shape()...)

	res, err := gradcheck.Inputs(layer, inputs, grads, settings)
	if err != nil {
		return nil, err
	}
	results := []gradcheck.Result{res}

	if p, ok := layer.(nn.ParameterizedLayer); ok {
		paramResults, err := gradcheck.Params(p, inputs, grads, settings)
		if err != nil {
			return nil, err
		}
		for _, r := range paramResults {
			r.Name = fmt.Sprintf("%v %s", layer, r.Name)
			results = append(results, r)
		}
	}
	return results, nil
}

// sample draws values in [-2, 2] kept away from the kinks of piecewise
// activations.
func sample(src *rng.Source, shape ...int) *tensor.Tensor {
	t := tensor.Zeros(shape...)
	data := t.Data()
	for i := range data {
		v := src.Uniform(-2, 2)
		if v > -0.05 && v < 0.05 {
			v += 0.1
		}
		data[i] = v
	}
	return t
}
