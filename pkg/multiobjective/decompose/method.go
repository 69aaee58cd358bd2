package decompose

import (
	"fmt"
	"strings"
)

// Method selects how a fitness vector is reduced to a single value.
type Method int

// enumeration of Method
const (
	Weighted Method = iota
	Tchebycheff
	BoundaryIntersection
)

func (m Method) String() string {
	switch m {
	case Weighted:
		return "weighted"
	case Tchebycheff:
		return "tchebycheff"
	case BoundaryIntersection:
		return "bi"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod is the inverse of Method.String. It also accepts
// "boundary-intersection".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "weighted":
		return Weighted, nil
	case "tchebycheff":
		return Tchebycheff, nil
	case "bi", "boundary-intersection":
		return BoundaryIntersection, nil
	default:
		return 0, fmt.Errorf("unsupported decomposition method %q", s)
	}
}
