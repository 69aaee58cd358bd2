package benchmarks

import (
	"math"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	ZDT2Name = "ZDT2"
)

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	numVars int
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{numVars: numVars}
}

func (p *ZDT2) Name() string {
	return ZDT2Name
}

func (p *ZDT2) NumObjectives() int {
	return 2
}

func (p *ZDT2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT2) Evaluate(x []float64) ([]float64, error) {
	if err := checkDimension(p, x); err != nil {
		return nil, err
	}
	g := zdtG(x)
	// ZDT2 uses (1 - (x1/g)^2) instead of sqrt
	return []float64{x[0], g * (1.0 - math.Pow(x[0]/g, 2))}, nil
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - x*x,
		}
	}
	return points
}
