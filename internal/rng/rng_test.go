package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draw(s *Source, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Float64()
	}
	return out
}

func TestSameSeedSameStream(t *testing.T) {
	a := New(DefaultSeed)
	b := New(DefaultSeed)
	assert.Equal(t, draw(a, 16), draw(b, 16))
}

func TestDifferentSeedsDiffer(t *testing.T) {
	assert.NotEqual(t, draw(New(1), 8), draw(New(2), 8))
}

func TestReseedReplaysStream(t *testing.T) {
	s := New(42)
	first := draw(s, 10)
	_ = s.NormFloat64()

	s.Seed(42)
	assert.Equal(t, first, draw(s, 10))
}

func TestUniformRange(t *testing.T) {
	s := New(DefaultSeed)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(-0.5, 2)
		assert.GreaterOrEqual(t, v, -0.5)
		assert.Less(t, v, 2.0)
	}
}

func TestNormalMoments(t *testing.T) {
	s := New(DefaultSeed)
	n := 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := s.Normal(3, 2)
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean

	assert.InDelta(t, 3.0, mean, 0.1)
	assert.InDelta(t, 4.0, variance, 0.2)
}

func TestChildSourcesAreReproducible(t *testing.T) {
	a := New(New(DefaultSeed).Uint64())
	b := New(New(DefaultSeed).Uint64())
	assert.Equal(t, draw(a, 8), draw(b, 8))
}
