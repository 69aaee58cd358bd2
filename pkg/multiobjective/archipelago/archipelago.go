// Package archipelago runs groups of islands, each evolving its own
// population with its own algorithm, concurrently.
package archipelago

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"k8s.io/klog/v2"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

// ErrMigrationUnsupported is returned when the topology connects islands.
var ErrMigrationUnsupported = errors.New("migration between islands is not supported")

// IslandError reports the failure of a single island.
type IslandError struct {
	Island int
	Err    error
}

func (e *IslandError) Error() string {
	return fmt.Sprintf("island %d: %v", e.Island, e.Err)
}

func (e *IslandError) Unwrap() error {
	return e.Err
}

// Island pairs a population with the algorithm evolving it. Both are owned
// exclusively by the island.
type Island struct {
	algorithm  framework.Algorithm
	population *framework.Population
}

// NewIsland creates an island evolving pop with a clone of algo.
func NewIsland(algo framework.Algorithm, pop *framework.Population) *Island {
	return &Island{
		algorithm:  algo.Clone(),
		population: pop,
	}
}

func (is *Island) Population() *framework.Population {
	return is.population
}

// Champion returns the best individual of the island population.
func (is *Island) Champion() (framework.Individual, error) {
	return is.population.Champion()
}

func (is *Island) evolve(ctx context.Context, generations int) error {
	for gen := 0; gen < generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := is.algorithm.Evolve(ctx, is.population); err != nil {
			return err
		}
	}
	return nil
}

// Unconnected returns a topology of n islands without any edge.
func Unconnected(n int) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	return g
}

// Archipelago is a set of islands laid out on a topology whose node IDs are
// the island indices. An edge from i to j would let solutions migrate from
// island i to island j.
type Archipelago struct {
	islands  []*Island
	topology graph.Directed
	workers  int
}

// Option configures an Archipelago.
type Option func(*Archipelago)

// WithWorkers caps the number of islands evolving at the same time. Zero
// means no cap.
func WithWorkers(n int) Option {
	return func(a *Archipelago) {
		a.workers = n
	}
}

func New(topology graph.Directed, opts ...Option) *Archipelago {
	a := &Archipelago{topology: topology}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PushBack appends an island. Its index is the previous Size.
func (a *Archipelago) PushBack(is *Island) {
	a.islands = append(a.islands, is)
}

func (a *Archipelago) Size() int {
	return len(a.islands)
}

func (a *Archipelago) Island(i int) *Island {
	return a.islands[i]
}

// Evolve evolves every island for the given number of generations and
// waits for all of them. The first failing island cancels the others and
// its error is returned as an *IslandError.
func (a *Archipelago) Evolve(ctx context.Context, generations int) error {
	if err := a.checkTopology(); err != nil {
		return err
	}

	logger := klog.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)
	if a.workers > 0 {
		g.SetLimit(a.workers)
	}
	for i, is := range a.islands {
		g.Go(func() error {
			if err := is.evolve(gctx, generations); err != nil {
				return &IslandError{Island: i, Err: err}
			}
			logger.V(5).Info("Island evolved", "island", i, "generations", generations)
			return nil
		})
	}
	return g.Wait()
}

func (a *Archipelago) checkTopology() error {
	nodes, edges := 0, 0
	for it := a.topology.Nodes(); it.Next(); {
		nodes++
		for from := a.topology.From(it.Node().ID()); from.Next(); {
			edges++
		}
	}
	if nodes != len(a.islands) {
		return fmt.Errorf("topology has %d nodes for %d islands", nodes, len(a.islands))
	}
	if edges > 0 {
		return fmt.Errorf("%w: topology has %d edges", ErrMigrationUnsupported, edges)
	}
	return nil
}
