package benchmarks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZDT1ParetoOptimal(t *testing.T) {
	p := NewZDT1(5)
	f, err := p.Evaluate([]float64{0.25, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, f[0], 1e-12)
	assert.InDelta(t, 0.5, f[1], 1e-12)

	_, err = p.Evaluate([]float64{0.25})
	assert.Error(t, err)
}

func TestZDT2ParetoOptimal(t *testing.T) {
	p := NewZDT2(3)
	f, err := p.Evaluate([]float64{0.5, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, f[1], 1e-12)
}

func TestDTLZ2OnUnitSphere(t *testing.T) {
	p := NewDTLZ2(7, 3)
	x := []float64{0.3, 0.8, 0.5, 0.5, 0.5, 0.5, 0.5}
	f, err := p.Evaluate(x)
	require.NoError(t, err)
	require.Len(t, f, 3)

	sum := 0.0
	for _, v := range f {
		sum += v * v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	for _, pt := range p.TrueParetoFront(100) {
		assert.InDelta(t, 1.0, pt[0]*pt[0]+pt[1]*pt[1]+pt[2]*pt[2], 1e-12)
	}
}

func TestSphere(t *testing.T) {
	f, err := NewSphere(2).Evaluate([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{25}, f)
}

func TestNew(t *testing.T) {
	b, err := New("zdt1", 30, 0)
	require.NoError(t, err)
	assert.Equal(t, ZDT1Name, b.Name())
	assert.Len(t, b.Bounds(), 30)

	b, err = New("DTLZ2", 12, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.NumObjectives())

	_, err = New("DTLZ2", 12, 1)
	assert.Error(t, err)
	_, err = New("rosenbrock", 12, 2)
	assert.Error(t, err)
	_, err = New("zdt1", 1, 2)
	assert.Error(t, err)
}

func TestTrueParetoFrontEndpoints(t *testing.T) {
	front := NewZDT1(30).TrueParetoFront(11)
	require.Len(t, front, 11)
	assert.Equal(t, 0.0, front[0][0])
	assert.Equal(t, 1.0, front[0][1])
	assert.InDelta(t, 0.0, front[10][1], 1e-12)
	assert.False(t, math.IsNaN(front[5][1]))
}
