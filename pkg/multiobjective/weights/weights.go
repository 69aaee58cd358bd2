// Package weights enumerates uniformly spread weight vectors on the unit
// simplex, one per scalar sub-problem of a decomposition.
package weights

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// DefaultResolution is the number of per-axis divisions used when none is
// configured.
const DefaultResolution = 21

// Generate returns every vector of m non-negative multiples of 1/(h-1)
// summing to one. There are Count(h, m) of them.
func Generate(h, m int) ([][]float64, error) {
	if h < 2 {
		return nil, fmt.Errorf("resolution must be at least 2, got %d", h)
	}
	if m < 1 {
		return nil, fmt.Errorf("dimension must be positive, got %d", m)
	}

	var compositions [][]int
	compose(&compositions, h-1, m, h-1, nil)

	out := make([][]float64, len(compositions))
	for i, c := range compositions {
		w := make([]float64, m)
		for j, v := range c {
			w[j] = float64(v) / float64(h-1)
		}
		out[i] = w
	}
	return out, nil
}

// compose appends to out every extension of prefix by m values in [0, max]
// that sum to s.
func compose(out *[][]int, max, m, s int, prefix []int) {
	if m == 1 {
		if s < 0 || s > max {
			return
		}
		*out = append(*out, append(append([]int(nil), prefix...), s))
		return
	}
	for v := 0; v <= max && v <= s; v++ {
		next := append(append(make([]int, 0, len(prefix)+1), prefix...), v)
		compose(out, max, m-1, s-v, next)
	}
}

// Count returns the number of weight vectors Generate(h, m) produces, the
// number of compositions of h-1 into m parts.
func Count(h, m int) int {
	if h < 2 || m < 1 {
		return 0
	}
	return combin.Binomial(h-1+m-1, m-1)
}
