package benchmarks

import (
	"fmt"
	"strings"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

// Benchmark is a multi-objective problem with a known Pareto front.
type Benchmark interface {
	framework.Problem

	// TrueParetoFront returns up to numPoints points sampled on the true
	// Pareto front, or nil when it cannot be sampled for the configured
	// number of objectives.
	TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint
}

var (
	_ Benchmark = &ZDT1{}
	_ Benchmark = &ZDT2{}
	_ Benchmark = &DTLZ2{}
)

// New returns the benchmark registered under name (case insensitive).
// numObjectives is only used by the scalable DTLZ family.
func New(name string, numVars, numObjectives int) (Benchmark, error) {
	if numVars < 2 {
		return nil, fmt.Errorf("benchmark %s needs at least 2 variables, got %d", name, numVars)
	}
	switch strings.ToUpper(name) {
	case ZDT1Name:
		return NewZDT1(numVars), nil
	case ZDT2Name:
		return NewZDT2(numVars), nil
	case DTLZ2Name:
		if numObjectives < 2 || numObjectives > numVars {
			return nil, fmt.Errorf("benchmark %s needs 2 <= objectives <= variables, got %d objectives and %d variables", name, numObjectives, numVars)
		}
		return NewDTLZ2(numVars, numObjectives), nil
	default:
		return nil, fmt.Errorf("unknown benchmark %q", name)
	}
}

func unitBounds(n int) []framework.Bounds {
	b := make([]framework.Bounds, n)
	for i := range n {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

func checkDimension(p framework.Problem, x []float64) error {
	if want := len(p.Bounds()); len(x) != want {
		return fmt.Errorf("%s: decision vector has dimension %d, want %d", p.Name(), len(x), want)
	}
	return nil
}
