package benchmarks

import (
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	SphereName = "Sphere"
)

// Sphere is the single objective sum of squares on [-5, 5]^n, minimized at
// the origin.
type Sphere struct {
	numVars int
}

func NewSphere(numVars int) *Sphere {
	return &Sphere{numVars: numVars}
}

func (p *Sphere) Name() string {
	return SphereName
}

func (p *Sphere) NumObjectives() int {
	return 1
}

func (p *Sphere) Bounds() []framework.Bounds {
	b := make([]framework.Bounds, p.numVars)
	for i := range b {
		b[i] = framework.Bounds{L: -5, H: 5}
	}
	return b
}

func (p *Sphere) Evaluate(x []float64) ([]float64, error) {
	if err := checkDimension(p, x); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return []float64{sum}, nil
}
