package algorithms

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darioizzo/pagmo/pkg/multiobjective/benchmarks"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
	"github.com/darioizzo/pagmo/pkg/multiobjective/util"
)

// Test problem: ZDT1 benchmark function
func TestNSGAIIWithZDT1(t *testing.T) {
	numVars := 30
	popSize := 40

	// Create the ZDT1 problem instance
	zdt1 := benchmarks.NewZDT1(numVars)
	pop := randomPopulation(t, zdt1, popSize, 7)

	// Create NSGA-II instance
	cfg := DefaultNSGAIIConfig()
	cfg.Generations = 100
	cfg.Seed = 7
	nsga, err := NewNSGAII(cfg)
	require.NoError(t, err)

	// Run algorithm
	require.NoError(t, nsga.Evolve(context.Background(), pop))

	// Basic validation
	assert.Equal(t, popSize, pop.Size())

	// Verify Pareto front characteristics
	points := framework.ObjectivePoints(pop.Individuals())
	fronts := framework.NonDominatedSort(points)
	require.NotEmpty(t, fronts, "No fronts found in final population")

	firstFront := make([]framework.ObjectiveSpacePoint, len(fronts[0]))
	for i, idx := range fronts[0] {
		firstFront[i] = points[idx]
	}
	require.NoError(t, util.PlotResults(t.TempDir(), firstFront, zdt1, NSGAIIName))

	// Check if first front is non-dominated
	for i := range firstFront {
		for j := range firstFront {
			if i != j && framework.Dominates(firstFront[i], firstFront[j]) {
				t.Error("First front contains dominated solutions")
			}
		}
	}
}

func TestNSGAIICloneIsDeterministic(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(5)
	cfg := DefaultNSGAIIConfig()
	cfg.Generations = 5
	nsga, err := NewNSGAII(cfg)
	require.NoError(t, err)

	pop1 := randomPopulation(t, zdt1, 10, 3)
	pop2 := randomPopulation(t, zdt1, 10, 3)
	require.NoError(t, nsga.Clone().Evolve(context.Background(), pop1))
	require.NoError(t, nsga.Clone().Evolve(context.Background(), pop2))

	if diff := cmp.Diff(pop1.Individuals(), pop2.Individuals()); diff != "" {
		t.Errorf("clones diverged (-first +second):\n%s", diff)
	}
}

func TestCrowdingDistanceBoundaries(t *testing.T) {
	front := []ranked{
		{Individual: framework.Individual{Objectives: []float64{0, 1}}},
		{Individual: framework.Individual{Objectives: []float64{0.5, 0.5}}},
		{Individual: framework.Individual{Objectives: []float64{1, 0}}},
	}
	CrowdingDistance(front)

	for _, r := range front {
		if r.Objectives[0] == 0.5 {
			assert.InDelta(t, 2.0, r.Distance, 1e-12)
		} else {
			assert.True(t, r.Distance > 1e300)
		}
	}
}

func TestNSGAIIConfigValidate(t *testing.T) {
	cfg := DefaultNSGAIIConfig()
	cfg.CrossoverRate = 2
	_, err := NewNSGAII(cfg)
	assert.Error(t, err)

	cfg = DefaultNSGAIIConfig()
	cfg.Generations = -1
	_, err = NewNSGAII(cfg)
	assert.Error(t, err)
}
