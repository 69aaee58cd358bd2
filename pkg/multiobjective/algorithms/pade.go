package algorithms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/darioizzo/pagmo/pkg/multiobjective/archipelago"
	"github.com/darioizzo/pagmo/pkg/multiobjective/decompose"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
	"github.com/darioizzo/pagmo/pkg/multiobjective/metrics"
	"github.com/darioizzo/pagmo/pkg/multiobjective/weights"
)

const (
	PaDeName = "Parallel Decomposition (PaDe)"
)

// PaDeConfig represents the PaDe algorithm configuration
type PaDeConfig struct {
	// Generations is the number of times each sub-problem solver is evolved.
	// Zero turns Evolve into a no-op.
	Generations int
	// MaxParallelism is the number of sub-problems evolved in one batch.
	MaxParallelism int
	// Workers caps the goroutines evolving a batch. Zero runs every task of
	// a batch on its own goroutine.
	Workers int
	Method  decompose.Method
	// Resolution is the number of divisions per objective axis of the
	// weight lattice. Zero means weights.DefaultResolution.
	Resolution int
	// Solver is the single objective algorithm cloned for every sub-problem.
	Solver           framework.Algorithm
	DecomposeOptions []decompose.Option
	Metrics          *metrics.Metrics
}

func (c PaDeConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("%w: number of generations must be non-negative, got %d", ErrConfiguration, c.Generations)
	}
	if c.MaxParallelism <= 0 {
		return fmt.Errorf("%w: max parallelism must be positive, got %d", ErrConfiguration, c.MaxParallelism)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrConfiguration, c.Workers)
	}
	if c.Resolution != 0 && c.Resolution < 2 {
		return fmt.Errorf("%w: resolution must be at least 2, got %d", ErrConfiguration, c.Resolution)
	}
	if c.Solver == nil {
		return fmt.Errorf("%w: a single objective solver is required", ErrConfiguration)
	}
	return nil
}

// PaDe decomposes a multi-objective problem into one single objective
// sub-problem per individual, solves the sub-problems in isolated parallel
// batches and replaces the population with their champions.
//
// Every sub-problem population is seeded with all the chromosomes of the
// parent population, not a partition of them.
type PaDe struct {
	cfg    PaDeConfig
	solver framework.Algorithm
}

var _ framework.Algorithm = &PaDe{}

// NewPaDe validates cfg and keeps its own clone of the solver.
func NewPaDe(cfg PaDeConfig) (*PaDe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	solver := cfg.Solver.Clone()
	cfg.Solver = nil
	if cfg.Resolution == 0 {
		cfg.Resolution = weights.DefaultResolution
	}
	return &PaDe{cfg: cfg, solver: solver}, nil
}

func (p *PaDe) Name() string {
	return PaDeName
}

// String returns a formatted string displaying the parameters of the algorithm.
func (p *PaDe) String() string {
	return fmt.Sprintf("gen:%d max_parallelism:%d method:%s solver:%s[%s]",
		p.cfg.Generations, p.cfg.MaxParallelism, p.cfg.Method, p.solver.Name(), p.solver)
}

// Clone performs a deep copy.
func (p *PaDe) Clone() framework.Algorithm {
	return &PaDe{cfg: p.cfg, solver: p.solver.Clone()}
}

// Evolve runs the configured generations on pop. On failure pop is left
// untouched.
func (p *PaDe) Evolve(ctx context.Context, pop *framework.Population) error {
	prob := pop.Problem()
	numObjectives := prob.NumObjectives()
	if numObjectives < 2 {
		return fmt.Errorf("%w: %s has %d objectives, %s needs a multi-objective problem", ErrConfiguration, prob.Name(), numObjectives, PaDeName)
	}

	// Get out if there is nothing to do.
	popSize := pop.Size()
	if p.cfg.Generations == 0 || popSize == 0 {
		return nil
	}

	w, err := weights.Generate(p.cfg.Resolution, numObjectives)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if len(w) < popSize {
		return fmt.Errorf("%w: resolution %d gives %d weight vectors for %d objectives, population has %d individuals",
			ErrInsufficientWeights, p.cfg.Resolution, len(w), numObjectives, popSize)
	}

	chromosomes := pop.Variables()
	batches := Partition(popSize, p.cfg.MaxParallelism)

	logger := klog.FromContext(ctx).WithValues("algorithm", PaDeName, "problem", prob.Name())
	logger.V(4).Info("Evolving population", "size", popSize, "batches", len(batches), "generations", p.cfg.Generations)

	next := pop.Empty()
	for b, tasks := range batches {
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf("batch %d: %w", b, err)
			logger.Error(err, "Evolution cancelled", "batch", b, "remainingBatches", len(batches)-b)
			return err
		}

		start := time.Now()
		champions, err := p.evolveBatch(klog.NewContext(ctx, logger.WithValues("batch", b)), prob, w, chromosomes, tasks)
		p.cfg.Metrics.ObserveBatch(batchOutcome(len(tasks), err), time.Since(start))
		if err != nil {
			var taskErr *TaskError
			if errors.As(err, &taskErr) {
				taskErr.Batch = b
			}
			logger.Error(err, "Batch failed", "batch", b)
			return err
		}

		for i, champion := range champions {
			if err := next.Append(champion.Variables); err != nil {
				return &TaskError{Batch: b, Task: tasks[i], Err: err}
			}
		}
		logger.V(4).Info("Batch evolved", "batch", b, "tasks", len(tasks), "elapsed", time.Since(start))
	}

	return pop.Replace(next)
}

// evolveBatch solves the sub-problems of the given task indices concurrently
// and returns their champions in task order.
func (p *PaDe) evolveBatch(ctx context.Context, prob framework.Problem, w [][]float64, chromosomes [][]float64, tasks []int) ([]framework.Individual, error) {
	arch := archipelago.New(archipelago.Unconnected(len(tasks)), archipelago.WithWorkers(p.cfg.Workers))
	for _, task := range tasks {
		sub, err := decompose.New(prob, p.cfg.Method, w[task], p.cfg.DecomposeOptions...)
		if err != nil {
			return nil, &TaskError{Task: task, Err: err}
		}
		subPop := framework.NewPopulation(sub)
		for _, x := range chromosomes {
			if err := subPop.Append(x); err != nil {
				return nil, &TaskError{Task: task, Err: err}
			}
		}
		arch.PushBack(archipelago.NewIsland(p.solver, subPop))
	}

	if err := arch.Evolve(ctx, p.cfg.Generations); err != nil {
		var islandErr *archipelago.IslandError
		if errors.As(err, &islandErr) {
			return nil, &TaskError{Task: tasks[islandErr.Island], Err: islandErr.Err}
		}
		return nil, err
	}

	champions := make([]framework.Individual, len(tasks))
	for i := range tasks {
		champion, err := arch.Island(i).Champion()
		if err != nil {
			return nil, &TaskError{Task: tasks[i], Err: err}
		}
		champions[i] = champion
	}
	return champions, nil
}

// batchOutcome attributes a batch error to at most one failed task. The
// other tasks were cancelled with it, as were all of them when the error
// comes from the caller's context.
func batchOutcome(size int, err error) metrics.BatchOutcome {
	if err == nil {
		return metrics.BatchOutcome{Succeeded: size}
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return metrics.BatchOutcome{Failed: 1, Cancelled: size - 1}
	}
	return metrics.BatchOutcome{Cancelled: size}
}

// Partition splits task indices 0..n-1 into consecutive batches of at most
// size tasks.
func Partition(n, size int) [][]int {
	if n <= 0 || size <= 0 {
		return nil
	}
	batches := make([][]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		batch := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, i)
		}
		batches = append(batches, batch)
	}
	return batches
}
