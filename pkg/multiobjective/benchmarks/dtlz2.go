package benchmarks

import (
	"math"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	DTLZ2Name = "DTLZ2"
)

// DTLZ2 has a spherical Pareto front
// It's easier than DTLZ1 as it has no local fronts
type DTLZ2 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ2) Name() string {
	return DTLZ2Name
}

func (p *DTLZ2) NumObjectives() int {
	return p.numObjectives
}

func (p *DTLZ2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *DTLZ2) Evaluate(x []float64) ([]float64, error) {
	if err := checkDimension(p, x); err != nil {
		return nil, err
	}
	g := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		g += math.Pow(x[i]-0.5, 2)
	}

	f := make([]float64, p.numObjectives)
	for m := range f {
		f[m] = 1 + g
		// Product of cos terms
		for i := 0; i < p.numObjectives-m-1; i++ {
			f[m] *= math.Cos(x[i] * math.Pi / 2)
		}
		// Last term is sin for all objectives except the first
		if m > 0 {
			f[m] *= math.Sin(x[p.numObjectives-m-1] * math.Pi / 2)
		}
	}
	return f, nil
}

func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// For DTLZ2, the true Pareto front is on a unit sphere: sum(f_i^2) = 1
	// For 2 objectives, it's a quarter circle
	if p.numObjectives == 2 {
		points := make([]framework.ObjectiveSpacePoint, numPoints)
		for i := 0; i < numPoints; i++ {
			theta := (math.Pi / 2) * float64(i) / float64(numPoints-1)
			points[i] = framework.ObjectiveSpacePoint{
				math.Cos(theta),
				math.Sin(theta),
			}
		}
		return points
	}
	if p.numObjectives == 3 {
		sqrtN := int(math.Sqrt(float64(numPoints)))
		points := make([]framework.ObjectiveSpacePoint, 0, sqrtN*sqrtN)
		for i := 0; i < sqrtN; i++ {
			theta := (math.Pi / 2) * float64(i) / float64(sqrtN-1)
			for j := 0; j < sqrtN; j++ {
				phi := (math.Pi / 2) * float64(j) / float64(sqrtN-1)
				points = append(points, framework.ObjectiveSpacePoint{
					math.Cos(theta) * math.Cos(phi),
					math.Sin(theta) * math.Cos(phi),
					math.Sin(phi),
				})
			}
		}
		return points
	}
	return nil
}
