package algorithms

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for invalid algorithm parameters and for
	// problems the algorithm cannot be applied to.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInsufficientWeights is returned when the weight lattice has fewer
	// vectors than the population has individuals.
	ErrInsufficientWeights = errors.New("not enough weight vectors")
)

// TaskError reports the failure of one decomposed sub-problem. Task is the
// index of the sub-problem, equal to the index of the individual it would
// have produced.
type TaskError struct {
	Batch int
	Task  int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("batch %d task %d: %v", e.Batch, e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
