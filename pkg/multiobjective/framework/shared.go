package framework

// NonDominatedSort performs non-dominated sorting on the given objective
// vectors. Each front holds indices into points, in increasing index order
// for the first front.
func NonDominatedSort(points []ObjectiveSpacePoint) [][]int {
	var fronts [][]int
	dominated := make([][]int, len(points))
	domCount := make([]int, len(points))

	// Calculate domination for each point
	for i := 0; i < len(points); i++ {
		for j := 0; j < len(points); j++ {
			if i == j {
				continue
			}
			if Dominates(points[i], points[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(points[j], points[i]) {
				domCount[i]++
			}
		}
	}

	// Find first front
	currentFront := []int{}
	for i := range points {
		if domCount[i] == 0 {
			currentFront = append(currentFront, i)
		}
	}
	if len(currentFront) == 0 {
		return nil
	}

	// Find subsequent fronts
	for len(currentFront) > 0 {
		fronts = append(fronts, currentFront)
		nextFront := []int{}
		for _, idx := range currentFront {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		currentFront = nextFront
	}

	return fronts
}

// Dominates checks if point a dominates point b
func Dominates(a, b ObjectiveSpacePoint) bool {
	better := false
	for i := 0; i < len(a); i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// ObjectivePoints returns the objective vectors of the individuals, sharing
// their backing arrays.
func ObjectivePoints(individuals []Individual) []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, len(individuals))
	for i := range individuals {
		points[i] = individuals[i].Objectives
	}
	return points
}
