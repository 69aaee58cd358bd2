package framework

import (
	"context"
	"fmt"
)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Problem describes the contract a specific optimization problem needs to implement.
type Problem interface {
	Name() string

	// NumObjectives is the length of every fitness vector returned by Evaluate.
	NumObjectives() int

	// Bounds are the box bounds of the decision vector. Their length is the
	// decision vector dimension.
	Bounds() []Bounds

	// Evaluate computes the fitness vector of x. Lower values are better.
	// It must not mutate the problem, since the same problem is evaluated
	// from many goroutines at once.
	Evaluate(x []float64) ([]float64, error)
}

// Bounds is the closed interval [L, H] of a single decision variable.
type Bounds struct {
	L float64
	H float64
}

// Individual represents a solution in the population
type Individual struct {
	Variables  []float64
	Objectives []float64
}

func (ind Individual) Clone() Individual {
	c := Individual{
		Variables:  make([]float64, len(ind.Variables)),
		Objectives: make([]float64, len(ind.Objectives)),
	}
	copy(c.Variables, ind.Variables)
	copy(c.Objectives, ind.Objectives)
	return c
}

// Algorithm describes the contract that an optimization algorithm needs to implement.
//
// Implementations may carry internal adaptive state (random sources, step
// sizes), so an Algorithm must never be shared between goroutines. Clone
// returns a deep copy that can be handed to another goroutine.
type Algorithm interface {
	Name() string
	Clone() Algorithm

	// Evolve runs the algorithm on pop, replacing its content in place.
	Evolve(ctx context.Context, pop *Population) error

	// String returns the human readable configuration of the algorithm.
	fmt.Stringer
}
