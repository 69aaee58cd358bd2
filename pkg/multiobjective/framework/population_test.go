package framework_test

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darioizzo/pagmo/pkg/multiobjective/benchmarks"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

type countingProblem struct {
	framework.Problem
	evaluations atomic.Int64
}

func (p *countingProblem) Evaluate(x []float64) ([]float64, error) {
	p.evaluations.Add(1)
	return p.Problem.Evaluate(x)
}

// boxProblem has value receivers and slice fields, so its values cannot be
// compared with ==.
type boxProblem struct {
	bounds []framework.Bounds
	scale  func(float64) float64
}

func (p boxProblem) Name() string               { return "box" }
func (p boxProblem) NumObjectives() int         { return 1 }
func (p boxProblem) Bounds() []framework.Bounds { return p.bounds }

func (p boxProblem) Evaluate(x []float64) ([]float64, error) {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	if p.scale != nil {
		sum = p.scale(sum)
	}
	return []float64{sum}, nil
}

func TestReplaceUncomparableProblem(t *testing.T) {
	double := func(v float64) float64 { return 2 * v }
	tests := []struct {
		name    string
		problem boxProblem
		other   func(pop *framework.Population) *framework.Population
		wantErr bool
	}{
		{
			name:    "empty of the same population",
			problem: boxProblem{bounds: []framework.Bounds{{L: 0, H: 1}}, scale: double},
			other:   (*framework.Population).Empty,
		},
		{
			name:    "equal problem value",
			problem: boxProblem{bounds: []framework.Bounds{{L: 0, H: 1}}},
			other: func(*framework.Population) *framework.Population {
				return framework.NewPopulation(boxProblem{bounds: []framework.Bounds{{L: 0, H: 1}}})
			},
		},
		{
			name:    "different bounds",
			problem: boxProblem{bounds: []framework.Bounds{{L: 0, H: 1}}},
			other: func(*framework.Population) *framework.Population {
				return framework.NewPopulation(boxProblem{bounds: []framework.Bounds{{L: 0, H: 2}}})
			},
			wantErr: true,
		},
		{
			name:    "different problem type",
			problem: boxProblem{bounds: []framework.Bounds{{L: 0, H: 1}}},
			other: func(*framework.Population) *framework.Population {
				return framework.NewPopulation(benchmarks.NewSphere(1))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := framework.NewPopulation(tt.problem)
			require.NoError(t, pop.Append([]float64{0.5}))

			next := tt.other(pop)
			var err error
			require.NotPanics(t, func() { err = pop.Replace(next) })
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 1, pop.Size())
				return
			}
			require.NoError(t, err)
			assert.Zero(t, pop.Size())
		})
	}
}

type failingProblem struct {
	framework.Problem
}

func (p *failingProblem) Evaluate([]float64) ([]float64, error) {
	return nil, errors.New("evaluation failed")
}

func TestAppendValidatesFeasibility(t *testing.T) {
	pop := framework.NewPopulation(benchmarks.NewZDT1(3))

	require.NoError(t, pop.Append([]float64{0.5, 0, 1}))
	assert.Error(t, pop.Append([]float64{0.5, 0}))
	assert.Error(t, pop.Append([]float64{1.5, 0, 0}))
	assert.Equal(t, 1, pop.Size())

	ind := pop.Individual(0)
	assert.Equal(t, []float64{0.5, 0, 1}, ind.Variables)
	assert.Len(t, ind.Objectives, 2)

	failing := framework.NewPopulation(&failingProblem{benchmarks.NewZDT1(3)})
	assert.Error(t, failing.Append([]float64{0.5, 0, 1}))
	assert.Zero(t, failing.Size())
}

func TestIndividualsAreCopies(t *testing.T) {
	pop := framework.NewPopulation(benchmarks.NewSphere(2))
	require.NoError(t, pop.Append([]float64{1, 2}))

	pop.Individual(0).Variables[0] = 4
	pop.Variables()[0][1] = 4
	pop.Individuals()[0].Objectives[0] = -1
	assert.Equal(t, framework.Individual{Variables: []float64{1, 2}, Objectives: []float64{5}}, pop.Individual(0))
}

func TestChampion(t *testing.T) {
	pop := framework.NewPopulation(benchmarks.NewSphere(2))
	_, err := pop.Champion()
	assert.ErrorIs(t, err, framework.ErrEmptyPopulation)

	for _, x := range [][]float64{{2, 2}, {1, 0}, {0, 1}, {3, 3}} {
		require.NoError(t, pop.Append(x))
	}
	champion, err := pop.Champion()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, champion.Variables)

	mo := framework.NewPopulation(benchmarks.NewZDT1(2))
	for _, x := range [][]float64{{0.5, 1}, {0.5, 0}, {0.2, 0}} {
		require.NoError(t, mo.Append(x))
	}
	champion, err = mo.Champion()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, champion.Variables)
}

func TestReplace(t *testing.T) {
	prob := benchmarks.NewSphere(1)
	pop := framework.NewPopulation(prob)
	require.NoError(t, pop.Append([]float64{1}))

	next := pop.Empty()
	assert.Zero(t, next.Size())
	require.NoError(t, next.Append([]float64{2}))
	require.NoError(t, next.Append([]float64{3}))

	require.NoError(t, pop.Replace(next))
	assert.Equal(t, [][]float64{{2}, {3}}, pop.Variables())

	other := framework.NewPopulation(benchmarks.NewSphere(1))
	assert.Error(t, pop.Replace(other))

	pop.Clear()
	assert.Zero(t, pop.Size())
}

func TestNewRandomPopulation(t *testing.T) {
	prob := benchmarks.NewZDT1(4)
	pop, err := framework.NewRandomPopulation(prob, 25, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 25, pop.Size())
	for _, x := range pop.Variables() {
		assert.NoError(t, framework.Feasible(x, prob.Bounds()))
	}
}

func TestCachedProblem(t *testing.T) {
	inner := &countingProblem{Problem: benchmarks.NewZDT1(3)}
	cached := framework.NewCachedProblem(inner, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := cached.Evaluate([]float64{0.25, 0, 0})
			assert.NoError(t, err)
			assert.InDelta(t, 0.5, f[1], 1e-12)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cached.Len())
	assert.LessOrEqual(t, inner.evaluations.Load(), int64(50))

	before := inner.evaluations.Load()
	f, err := cached.Evaluate([]float64{0.25, 0, 0})
	require.NoError(t, err)
	f[0] = 42
	g, err := cached.Evaluate([]float64{0.25, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.25, g[0])
	assert.Equal(t, before, inner.evaluations.Load())
	assert.Equal(t, 2, cached.NumObjectives())
}

func TestFeasibleAndClamp(t *testing.T) {
	b := []framework.Bounds{{L: 0, H: 1}, {L: -1, H: 1}}
	x := []float64{2, -3}
	assert.Error(t, framework.Feasible(x, b))
	framework.Clamp(x, b)
	assert.Equal(t, []float64{1, -1}, x)
	assert.NoError(t, framework.Feasible(x, b))
}
