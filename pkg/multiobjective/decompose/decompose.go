// Package decompose turns a multi-objective problem into a single objective
// one by scalarizing its fitness vector against a weight vector.
package decompose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	// DefaultPenalty is the boundary intersection penalty coefficient.
	DefaultPenalty = 5.0

	weightTolerance = 1e-9
)

// Option configures a decomposed problem.
type Option func(*Problem)

// WithReferencePoint sets the ideal point z* used by Tchebycheff and
// boundary intersection. It defaults to the origin.
func WithReferencePoint(z []float64) Option {
	return func(p *Problem) {
		p.reference = append([]float64(nil), z...)
	}
}

// WithPenalty sets the boundary intersection penalty coefficient.
func WithPenalty(theta float64) Option {
	return func(p *Problem) {
		p.penalty = theta
	}
}

// Problem is the single objective decomposition of a multi-objective
// problem along one weight vector. It keeps the decision space of the
// original problem unchanged.
type Problem struct {
	original  framework.Problem
	method    Method
	weights   []float64
	reference []float64
	penalty   float64
}

var _ framework.Problem = &Problem{}

// New decomposes original with the given method and weight vector. weights
// must have one non-negative entry per objective and sum to one.
func New(original framework.Problem, method Method, weights []float64, opts ...Option) (*Problem, error) {
	m := original.NumObjectives()
	if len(weights) != m {
		return nil, fmt.Errorf("weight vector has %d components, %s has %d objectives", len(weights), original.Name(), m)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("weight %d is %v, weights must be non-negative", i, w)
		}
	}
	if sum := floats.Sum(weights); math.Abs(sum-1) > weightTolerance {
		return nil, fmt.Errorf("weights sum to %v, want 1", sum)
	}
	switch method {
	case Weighted, Tchebycheff, BoundaryIntersection:
	default:
		return nil, fmt.Errorf("unsupported decomposition method %v", method)
	}

	p := &Problem{
		original:  original,
		method:    method,
		weights:   append([]float64(nil), weights...),
		reference: make([]float64, m),
		penalty:   DefaultPenalty,
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.reference) != m {
		return nil, fmt.Errorf("reference point has %d components, %s has %d objectives", len(p.reference), original.Name(), m)
	}
	return p, nil
}

func (p *Problem) Name() string {
	return fmt.Sprintf("%s [%s decomposition]", p.original.Name(), p.method)
}

func (p *Problem) NumObjectives() int {
	return 1
}

func (p *Problem) Bounds() []framework.Bounds {
	return p.original.Bounds()
}

// Weights returns a copy of the weight vector.
func (p *Problem) Weights() []float64 {
	return append([]float64(nil), p.weights...)
}

func (p *Problem) Method() Method {
	return p.method
}

// Original returns the problem that was decomposed.
func (p *Problem) Original() framework.Problem {
	return p.original
}

func (p *Problem) Evaluate(x []float64) ([]float64, error) {
	f, err := p.original.Evaluate(x)
	if err != nil {
		return nil, err
	}
	if len(f) != len(p.weights) {
		return nil, fmt.Errorf("%s returned %d objectives, want %d", p.original.Name(), len(f), len(p.weights))
	}
	return []float64{p.Scalarize(f)}, nil
}

// Scalarize reduces the fitness vector f to a single value.
func (p *Problem) Scalarize(f []float64) float64 {
	switch p.method {
	case Tchebycheff:
		fmax := math.Inf(-1)
		for i := range f {
			fmax = math.Max(fmax, p.weights[i]*math.Abs(f[i]-p.reference[i]))
		}
		return fmax
	case BoundaryIntersection:
		norm := floats.Norm(p.weights, 2)
		diff := make([]float64, len(f))
		floats.SubTo(diff, f, p.reference)
		// d1 is the distance from the reference point along the weight direction
		d1 := floats.Dot(diff, p.weights) / norm
		// d2 is the perpendicular distance from that direction
		foot := make([]float64, len(f))
		floats.AddScaledTo(foot, p.reference, d1/norm, p.weights)
		d2 := floats.Distance(f, foot, 2)
		return d1 + p.penalty*d2
	default:
		return floats.Dot(p.weights, f)
	}
}
