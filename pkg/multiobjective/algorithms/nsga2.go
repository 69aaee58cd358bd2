package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	NSGAIIName = "NSGA-II"
)

// NSGAIIConfig represents the NSGA-II algorithm configuration
type NSGAIIConfig struct {
	// Generations is the number of generations run by each Evolve call.
	Generations   int
	CrossoverRate float64
	MutationRate  float64
	Seed          uint64
}

func DefaultNSGAIIConfig() NSGAIIConfig {
	return NSGAIIConfig{
		Generations:   50,
		CrossoverRate: 0.8,
		MutationRate:  0.1,
	}
}

func (c NSGAIIConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("number of generations must be non-negative, got %d", c.Generations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1], got %v", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate)
	}
	return nil
}

// NSGAII is the elitist non-dominated sorting genetic algorithm. It works
// with any number of objectives.
type NSGAII struct {
	cfg NSGAIIConfig
	src *rand.PCG
	rng *rand.Rand
}

var _ framework.Algorithm = &NSGAII{}

// NewNSGAII creates a new instance of NSGA-II with given parameters
func NewNSGAII(cfg NSGAIIConfig) (*NSGAII, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, rng := newRand(cfg.Seed)
	return &NSGAII{cfg: cfg, src: src, rng: rng}, nil
}

func (n *NSGAII) Name() string {
	return NSGAIIName
}

func (n *NSGAII) String() string {
	return fmt.Sprintf("gen:%d cr:%g m:%g seed:%d", n.cfg.Generations, n.cfg.CrossoverRate, n.cfg.MutationRate, n.cfg.Seed)
}

func (n *NSGAII) Clone() framework.Algorithm {
	src, rng := cloneRand(n.src)
	return &NSGAII{cfg: n.cfg, src: src, rng: rng}
}

// ranked carries the NSGA-II specific rank and crowding distance.
type ranked struct {
	framework.Individual
	Rank     int
	Distance float64
}

// CrowdingDistance calculates crowding distance for individuals in a front
func CrowdingDistance(front []ranked) {
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Objectives)
	for i := range front {
		front[i].Distance = 0
	}

	for m := 0; m < numObjectives; m++ {
		// Sort by each objective
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		// Set boundary points to infinity
		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)

		objectiveRange := front[len(front)-1].Objectives[m] - front[0].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Objectives[m] - front[i-1].Objectives[m]) / objectiveRange
		}
	}
}

// tournamentSelect is a binary tournament on rank, then crowding distance.
func (n *NSGAII) tournamentSelect(population []ranked) ranked {
	best := population[n.rng.IntN(len(population))]
	contestant := population[n.rng.IntN(len(population))]
	if contestant.Rank < best.Rank || (contestant.Rank == best.Rank && contestant.Distance > best.Distance) {
		best = contestant
	}
	return best
}

// Evolve executes the NSGA-II generations starting from the individuals of pop.
func (n *NSGAII) Evolve(ctx context.Context, pop *framework.Population) error {
	popSize := pop.Size()
	if popSize == 0 {
		return nil
	}
	b := pop.Problem().Bounds()

	population := rankAndCrowd(pop.Individuals(), popSize)
	for gen := 0; gen < n.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Generate offspring
		offspring := make([]framework.Individual, 0, popSize)
		for len(offspring) < popSize {
			parent1 := n.tournamentSelect(population)
			parent2 := n.tournamentSelect(population)

			child1, child2 := sbx(n.rng, parent1.Variables, parent2.Variables, b, n.cfg.CrossoverRate)
			polynomialMutation(n.rng, child1, b, n.cfg.MutationRate)
			polynomialMutation(n.rng, child2, b, n.cfg.MutationRate)

			for _, child := range [][]float64{child1, child2} {
				if len(offspring) == popSize {
					break
				}
				ind, err := pop.Evaluate(child)
				if err != nil {
					return err
				}
				offspring = append(offspring, ind)
			}
		}

		// Combine populations
		combined := make([]framework.Individual, 0, 2*popSize)
		for _, r := range population {
			combined = append(combined, r.Individual)
		}
		combined = append(combined, offspring...)

		population = rankAndCrowd(combined, popSize)
	}

	for i := range population {
		pop.Set(i, population[i].Individual)
	}
	return nil
}

// rankAndCrowd keeps the popSize best individuals by non-dominated rank and
// crowding distance.
func rankAndCrowd(individuals []framework.Individual, popSize int) []ranked {
	fronts := framework.NonDominatedSort(framework.ObjectivePoints(individuals))

	population := make([]ranked, 0, popSize)
	for rank, indices := range fronts {
		front := make([]ranked, len(indices))
		for i, idx := range indices {
			front[i] = ranked{Individual: individuals[idx], Rank: rank}
		}
		CrowdingDistance(front)

		if len(population)+len(front) <= popSize {
			population = append(population, front...)
			continue
		}

		// Add remaining individuals based on crowding distance
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Distance > front[j].Distance
		})
		population = append(population, front[:popSize-len(population)]...)
		break
	}
	return population
}
