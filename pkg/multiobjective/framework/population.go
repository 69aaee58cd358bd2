package framework

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
)

// ErrEmptyPopulation is returned when a champion is requested from a
// population without individuals.
var ErrEmptyPopulation = errors.New("population is empty")

// Population is a set of evaluated individuals bound to a single Problem.
// Every individual stored in it has a feasible decision vector and a fitness
// vector computed by that problem.
//
// A Population is not safe for concurrent mutation.
type Population struct {
	problem     Problem
	individuals []Individual
	// origin is the population Empty was called on.
	origin *Population
}

// NewPopulation creates an empty population for the given problem.
func NewPopulation(problem Problem) *Population {
	return &Population{problem: problem}
}

// NewRandomPopulation creates a population of n individuals uniformly
// distributed in the box bounds of the problem.
func NewRandomPopulation(problem Problem, n int, rng *rand.Rand) (*Population, error) {
	pop := NewPopulation(problem)
	b := problem.Bounds()
	for i := 0; i < n; i++ {
		vars := make([]float64, len(b))
		for j := range vars {
			vars[j] = b[j].L + rng.Float64()*(b[j].H-b[j].L)
		}
		if err := pop.Append(vars); err != nil {
			return nil, err
		}
	}
	return pop, nil
}

func (pop *Population) Problem() Problem {
	return pop.problem
}

func (pop *Population) Size() int {
	return len(pop.individuals)
}

// Individual returns a copy of the i-th individual.
func (pop *Population) Individual(i int) Individual {
	return pop.individuals[i].Clone()
}

// Individuals returns a copy of every individual, in population order.
func (pop *Population) Individuals() []Individual {
	out := make([]Individual, len(pop.individuals))
	for i := range pop.individuals {
		out[i] = pop.individuals[i].Clone()
	}
	return out
}

// Variables returns a copy of every decision vector, in population order.
func (pop *Population) Variables() [][]float64 {
	out := make([][]float64, len(pop.individuals))
	for i := range pop.individuals {
		out[i] = append([]float64(nil), pop.individuals[i].Variables...)
	}
	return out
}

// Evaluate checks x against the problem bounds and computes its fitness.
// The population is not modified.
func (pop *Population) Evaluate(x []float64) (Individual, error) {
	if err := Feasible(x, pop.problem.Bounds()); err != nil {
		return Individual{}, err
	}
	f, err := pop.problem.Evaluate(x)
	if err != nil {
		return Individual{}, fmt.Errorf("evaluating %s: %w", pop.problem.Name(), err)
	}
	if len(f) != pop.problem.NumObjectives() {
		return Individual{}, fmt.Errorf("%s returned %d objectives, want %d", pop.problem.Name(), len(f), pop.problem.NumObjectives())
	}
	vars := make([]float64, len(x))
	copy(vars, x)
	return Individual{Variables: vars, Objectives: f}, nil
}

// Append evaluates x and adds it at the end of the population.
func (pop *Population) Append(x []float64) error {
	ind, err := pop.Evaluate(x)
	if err != nil {
		return err
	}
	pop.individuals = append(pop.individuals, ind)
	return nil
}

// Set replaces the i-th individual. ind must have been produced by Evaluate
// on a population of the same problem.
func (pop *Population) Set(i int, ind Individual) {
	pop.individuals[i] = ind.Clone()
}

// Clear removes every individual.
func (pop *Population) Clear() {
	pop.individuals = nil
}

// Empty returns a new population without individuals on the same problem.
func (pop *Population) Empty() *Population {
	return &Population{problem: pop.problem, origin: pop}
}

// Replace moves the content of other into pop. Both populations must be
// bound to the same problem: a population obtained from pop.Empty always is.
// other must not be used afterwards.
func (pop *Population) Replace(other *Population) error {
	if other.origin != pop && !sameProblem(other.problem, pop.problem) {
		return fmt.Errorf("cannot replace population of %s with population of %s", pop.problem.Name(), other.problem.Name())
	}
	pop.individuals = other.individuals
	other.individuals = nil
	return nil
}

// sameProblem compares problems by identity when their dynamic values are
// comparable and by deep equality otherwise.
func sameProblem(a, b Problem) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Champion returns a copy of the best individual. On single objective
// problems it is the individual with the lowest fitness, the first one
// winning ties. On multi-objective problems it is the first individual of
// the first non-dominated front.
func (pop *Population) Champion() (Individual, error) {
	if len(pop.individuals) == 0 {
		return Individual{}, ErrEmptyPopulation
	}
	if pop.problem.NumObjectives() == 1 {
		best := 0
		for i := 1; i < len(pop.individuals); i++ {
			if pop.individuals[i].Objectives[0] < pop.individuals[best].Objectives[0] {
				best = i
			}
		}
		return pop.individuals[best].Clone(), nil
	}
	fronts := NonDominatedSort(ObjectivePoints(pop.individuals))
	return pop.individuals[fronts[0][0]].Clone(), nil
}

// Feasible reports whether x has the dimension of b and lies inside it.
func Feasible(x []float64, b []Bounds) error {
	if len(x) != len(b) {
		return fmt.Errorf("decision vector has dimension %d, want %d", len(x), len(b))
	}
	for i, v := range x {
		if math.IsNaN(v) || v < b[i].L || v > b[i].H {
			return fmt.Errorf("decision variable %d = %v is outside [%v, %v]", i, v, b[i].L, b[i].H)
		}
	}
	return nil
}

// Clamp forces every component of x inside b.
func Clamp(x []float64, b []Bounds) {
	for i := range x {
		x[i] = math.Max(b[i].L, math.Min(b[i].H, x[i]))
	}
}
