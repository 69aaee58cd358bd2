package algorithms

import (
	"math"
	"math/rand/v2"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

// newRand returns a PCG source seeded with seed and a generator drawing from it.
func newRand(seed uint64) (*rand.PCG, *rand.Rand) {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return src, rand.New(src)
}

// cloneRand copies the state of src, so the copy produces the same sequence
// as src would from now on.
func cloneRand(src *rand.PCG) (*rand.PCG, *rand.Rand) {
	c := *src
	return &c, rand.New(&c)
}

// sbx performs SBX (Simulated Binary Crossover)
func sbx(rng *rand.Rand, parent1, parent2 []float64, b []framework.Bounds, crossoverRate float64) ([]float64, []float64) {
	child1 := make([]float64, len(parent1))
	child2 := make([]float64, len(parent2))

	if rng.Float64() >= crossoverRate {
		copy(child1, parent1)
		copy(child2, parent2)
		return child1, child2
	}

	for i := range parent1 {
		beta := 0.0
		if rng.Float64() <= 0.5 {
			beta = math.Pow(2*rng.Float64(), 1.0/3.0)
		} else {
			beta = math.Pow(1.0/(2*(1.0-rng.Float64())), 1.0/3.0)
		}

		child1[i] = 0.5 * ((1+beta)*parent1[i] + (1-beta)*parent2[i])
		child2[i] = 0.5 * ((1-beta)*parent1[i] + (1+beta)*parent2[i])
	}
	framework.Clamp(child1, b)
	framework.Clamp(child2, b)
	return child1, child2
}

// polynomialMutation mutates x in place, keeping it inside b.
func polynomialMutation(rng *rand.Rand, x []float64, b []framework.Bounds, mutationRate float64) {
	for i := range x {
		if rng.Float64() >= mutationRate {
			continue
		}
		delta := 0.0
		if rng.Float64() <= 0.5 {
			delta = math.Pow(2*rng.Float64(), 1.0/3.0) - 1
		} else {
			delta = 1 - math.Pow(2*(1-rng.Float64()), 1.0/3.0)
		}
		x[i] += delta * (b[i].H - b[i].L)
	}
	framework.Clamp(x, b)
}
