package weights

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce enumerates [0, h-1]^m and keeps the tuples summing to h-1.
func bruteForce(h, m int) [][]int {
	var out [][]int
	tuple := make([]int, m)
	var walk func(int)
	walk = func(i int) {
		if i == m {
			sum := 0
			for _, v := range tuple {
				sum += v
			}
			if sum == h-1 {
				out = append(out, slices.Clone(tuple))
			}
			return
		}
		for v := 0; v < h; v++ {
			tuple[i] = v
			walk(i + 1)
		}
	}
	walk(0)
	return out
}

func TestGenerateMatchesBruteForce(t *testing.T) {
	lexLess := func(a, b []int) bool { return slices.Compare(a, b) < 0 }

	for _, tc := range []struct{ h, m int }{
		{2, 1}, {2, 2}, {3, 2}, {5, 3}, {6, 4}, {4, 5}, {21, 2}, {8, 3},
	} {
		got, err := Generate(tc.h, tc.m)
		require.NoError(t, err)

		scaled := make([][]int, len(got))
		for i, w := range got {
			require.Len(t, w, tc.m)
			sum := 0.0
			scaled[i] = make([]int, tc.m)
			for j, v := range w {
				assert.GreaterOrEqual(t, v, 0.0)
				sum += v
				scaled[i][j] = int(math.Round(v * float64(tc.h-1)))
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "h=%d m=%d weight %v", tc.h, tc.m, w)
		}

		want := bruteForce(tc.h, tc.m)
		if diff := cmp.Diff(want, scaled, cmpopts.SortSlices(lexLess)); diff != "" {
			t.Errorf("h=%d m=%d compositions mismatch (-want +got):\n%s", tc.h, tc.m, diff)
		}
		assert.Equal(t, len(want), Count(tc.h, tc.m), "h=%d m=%d", tc.h, tc.m)
	}
}

func TestGenerateSingleObjective(t *testing.T) {
	got, err := Generate(5, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.0}}, got)
}

func TestGenerateDefaultResolution(t *testing.T) {
	got, err := Generate(DefaultResolution, 2)
	require.NoError(t, err)
	assert.Len(t, got, 21)
	assert.Equal(t, 21, Count(DefaultResolution, 2))
	assert.Equal(t, 231, Count(DefaultResolution, 3))
}

func TestGenerateInvalid(t *testing.T) {
	_, err := Generate(1, 2)
	assert.Error(t, err)
	_, err = Generate(5, 0)
	assert.Error(t, err)
	assert.Zero(t, Count(1, 2))
}

func TestGenerateVectorsAreIndependent(t *testing.T) {
	got, err := Generate(4, 3)
	require.NoError(t, err)
	got[0][0] = 42
	for _, w := range got[1:] {
		assert.NotEqual(t, 42.0, w[0])
	}
}
