// Package testkit provides deterministic seeded sample generators for
// gold-standard tests. Same seed, same data.
package testkit

import (
	"math/rand"
)

// Generator produces reproducible synthetic samples.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator with a fixed seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns n values drawn from N(mean, sd^2).
func (g *Generator) Normal(n int, mean, sd float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sd*g.rng.NormFloat64()
	}
	return out
}

// Binary returns n values that are 1 with probability p, else 0.
func (g *Generator) Binary(n int, p float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if g.rng.Float64() < p {
			out[i] = 1
		}
	}
	return out
}

// AR1 returns an order-1 autoregressive series with coefficient phi and unit
// innovation variance. |phi| close to 1 gives strong lag-1 correlation.
func (g *Generator) AR1(n int, phi float64) []float64 {
	out := make([]float64, n)
	prev := g.rng.NormFloat64()
	for i := range out {
		prev = phi*prev + g.rng.NormFloat64()
		out[i] = prev
	}
	return out
}
