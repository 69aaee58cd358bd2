package decompose

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darioizzo/pagmo/pkg/multiobjective/benchmarks"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

// identity returns the first objective-count variables as the fitness vector.
type identity struct {
	m   int
	err error
}

func (p *identity) Name() string       { return "identity" }
func (p *identity) NumObjectives() int { return p.m }
func (p *identity) Bounds() []framework.Bounds {
	b := make([]framework.Bounds, p.m)
	for i := range b {
		b[i] = framework.Bounds{L: -10, H: 10}
	}
	return b
}
func (p *identity) Evaluate(x []float64) ([]float64, error) {
	if p.err != nil {
		return nil, p.err
	}
	return append([]float64(nil), x[:p.m]...), nil
}

func TestScalarize(t *testing.T) {
	tests := []struct {
		name    string
		method  Method
		weights []float64
		opts    []Option
		f       []float64
		want    float64
	}{
		{"weighted", Weighted, []float64{0.5, 0.5}, nil, []float64{1, 3}, 2},
		{"weighted corner", Weighted, []float64{1, 0}, nil, []float64{1, 3}, 1},
		{"tchebycheff", Tchebycheff, []float64{0.25, 0.75}, nil, []float64{1, 3}, 2.25},
		{"tchebycheff reference", Tchebycheff, []float64{0.5, 0.5}, []Option{WithReferencePoint([]float64{1, 1})}, []float64{0, 4}, 1.5},
		{"bi on direction", BoundaryIntersection, []float64{0.5, 0.5}, nil, []float64{1, 1}, math.Sqrt2},
		{"bi perpendicular", BoundaryIntersection, []float64{1, 0}, nil, []float64{0, 1}, DefaultPenalty},
		{"bi custom penalty", BoundaryIntersection, []float64{1, 0}, []Option{WithPenalty(2)}, []float64{1, 1}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(&identity{m: 2}, tt.method, tt.weights, tt.opts...)
			require.NoError(t, err)

			got, err := p.Evaluate(tt.f)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want, got[0], 1e-12)
		})
	}
}

func TestNewRejectsInvalidWeights(t *testing.T) {
	original := &identity{m: 2}

	_, err := New(original, Weighted, []float64{1})
	assert.Error(t, err)
	_, err = New(original, Weighted, []float64{0.5, 0.6})
	assert.Error(t, err)
	_, err = New(original, Weighted, []float64{1.5, -0.5})
	assert.Error(t, err)
	_, err = New(original, Method(7), []float64{0.5, 0.5})
	assert.Error(t, err)
	_, err = New(original, Tchebycheff, []float64{0.5, 0.5}, WithReferencePoint([]float64{0}))
	assert.Error(t, err)
}

func TestDecomposedProblemKeepsDecisionSpace(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(10)
	p, err := New(zdt1, Tchebycheff, []float64{0.3, 0.7})
	require.NoError(t, err)

	assert.Equal(t, 1, p.NumObjectives())
	assert.Equal(t, zdt1.Bounds(), p.Bounds())
	assert.Equal(t, "ZDT1 [tchebycheff decomposition]", p.Name())
	assert.Equal(t, []float64{0.3, 0.7}, p.Weights())
	assert.Same(t, zdt1, p.Original())
}

func TestEvaluatePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	p, err := New(&identity{m: 2, err: boom}, Weighted, []float64{0.5, 0.5})
	require.NoError(t, err)

	_, err = p.Evaluate([]float64{1, 2})
	assert.ErrorIs(t, err, boom)
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{Weighted, Tchebycheff, BoundaryIntersection} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMethod("Boundary-Intersection")
	require.NoError(t, err)
	assert.Equal(t, BoundaryIntersection, got)

	_, err = ParseMethod("pbi")
	assert.Error(t, err)
}
