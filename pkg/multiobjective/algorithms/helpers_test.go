package algorithms

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

var errBoom = errors.New("boom")

// stubSolver leaves populations untouched. The clone numbered failOn fails.
type stubSolver struct {
	clones *atomic.Int64
	failOn int64
	fail   bool
	calls  *atomic.Int64
}

func newStubSolver(failOn int64) *stubSolver {
	return &stubSolver{clones: &atomic.Int64{}, calls: &atomic.Int64{}, failOn: failOn}
}

func (s *stubSolver) Name() string   { return "stub" }
func (s *stubSolver) String() string { return "noop" }

func (s *stubSolver) Clone() framework.Algorithm {
	n := s.clones.Add(1) - 1
	return &stubSolver{clones: s.clones, calls: s.calls, failOn: s.failOn, fail: n == s.failOn}
}

func (s *stubSolver) Evolve(ctx context.Context, pop *framework.Population) error {
	s.calls.Add(1)
	if s.fail {
		return errBoom
	}
	return nil
}

// flakyProblem fails every evaluation once armed.
type flakyProblem struct {
	framework.Problem
	armed atomic.Bool
}

func (p *flakyProblem) Evaluate(x []float64) ([]float64, error) {
	if p.armed.Load() {
		return nil, errBoom
	}
	return p.Problem.Evaluate(x)
}

func randomPopulation(t *testing.T, prob framework.Problem, n int, seed uint64) *framework.Population {
	t.Helper()
	pop, err := framework.NewRandomPopulation(prob, n, rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)
	return pop
}
