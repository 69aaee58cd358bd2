package benchmarks

import (
	"math"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	ZDT1Name = "ZDT1"
)

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{
		numVars,
	}
}

func (p *ZDT1) Name() string {
	return ZDT1Name
}

func (p *ZDT1) NumObjectives() int {
	return 2
}

func (p *ZDT1) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT1) Evaluate(x []float64) ([]float64, error) {
	if err := checkDimension(p, x); err != nil {
		return nil, err
	}
	g := zdtG(x)
	return []float64{x[0], g * (1.0 - math.Sqrt(x[0]/g))}, nil
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - math.Sqrt(x),
		}
	}
	return points
}

// zdtG is the distance function shared by the ZDT family.
func zdtG(x []float64) float64 {
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	return g
}
