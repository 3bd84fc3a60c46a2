// Package rng provides the seeded random source consumed by initializers and
// stochastic layers.
//
// Components never create a source themselves: callers construct one with
// New and pass it in, typically seeded with DefaultSeed for reproducible runs.
package rng

import "math/rand/v2"

// DefaultSeed is the process-wide default seed.
const DefaultSeed uint64 = 123456

// Source is a seeded generator of uniform and normal samples.
//
// A Source is not safe for concurrent use.
type Source struct {
	pcg  *rand.PCG
	rand *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed uint64) *Source {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{pcg: pcg, rand: rand.New(pcg)}
}

// Seed resets the generator so that it replays the stream of New(seed).
func (s *Source) Seed(seed uint64) {
	s.pcg.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// Float64 returns a uniform sample in [0, 1).
func (s *Source) Float64() float64 {
	return s.rand.Float64()
}

// Uniform returns a uniform sample in [low, high).
func (s *Source) Uniform(low, high float64) float64 {
	return low + (high-low)*s.rand.Float64()
}

// NormFloat64 returns a standard normal sample.
func (s *Source) NormFloat64() float64 {
	return s.rand.NormFloat64()
}

// Normal returns a sample from N(mean, std²).
func (s *Source) Normal(mean, std float64) float64 {
	return mean + std*s.rand.NormFloat64()
}

// Uint64 returns a uniform 64-bit sample, typically used to seed a child
// Source.
func (s *Source) Uint64() uint64 {
	return s.rand.Uint64()
}
