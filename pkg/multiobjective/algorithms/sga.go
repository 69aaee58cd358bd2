package algorithms

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	SGAName = "Simple Genetic Algorithm (SGA)"
)

// SGAConfig holds the parameters of the single objective genetic algorithm.
type SGAConfig struct {
	// Generations is the number of generations run by each Evolve call.
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
	Seed           uint64
}

func DefaultSGAConfig() SGAConfig {
	return SGAConfig{
		Generations:    20,
		Elite:          1,
		TournamentSize: 2,
		CrossoverRate:  0.9,
		MutationRate:   0.1,
	}
}

func (c SGAConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("number of generations must be non-negative, got %d", c.Generations)
	}
	if c.Elite < 0 {
		return fmt.Errorf("elite size must be non-negative, got %d", c.Elite)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("tournament size must be positive, got %d", c.TournamentSize)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1], got %v", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate)
	}
	return nil
}

// SGA is a generational genetic algorithm with elitism, tournament
// selection, SBX crossover and polynomial mutation. It solves single
// objective problems only.
type SGA struct {
	cfg SGAConfig
	src *rand.PCG
	rng *rand.Rand
}

var _ framework.Algorithm = &SGA{}

func NewSGA(cfg SGAConfig) (*SGA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, rng := newRand(cfg.Seed)
	return &SGA{cfg: cfg, src: src, rng: rng}, nil
}

func (s *SGA) Name() string {
	return SGAName
}

func (s *SGA) String() string {
	return fmt.Sprintf("gen:%d elite:%d tournament:%d cr:%g m:%g seed:%d",
		s.cfg.Generations, s.cfg.Elite, s.cfg.TournamentSize, s.cfg.CrossoverRate, s.cfg.MutationRate, s.cfg.Seed)
}

func (s *SGA) Clone() framework.Algorithm {
	src, rng := cloneRand(s.src)
	return &SGA{cfg: s.cfg, src: src, rng: rng}
}

func (s *SGA) Evolve(ctx context.Context, pop *framework.Population) error {
	prob := pop.Problem()
	if prob.NumObjectives() != 1 {
		return fmt.Errorf("%s cannot solve %s with %d objectives", SGAName, prob.Name(), prob.NumObjectives())
	}
	popSize := pop.Size()
	if popSize == 0 {
		return nil
	}
	b := prob.Bounds()

	population := pop.Individuals()
	idxs := make([]int, popSize)
	for gen := 0; gen < s.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for i := range idxs {
			idxs[i] = i
		}
		sort.SliceStable(idxs, func(i, j int) bool {
			return population[idxs[i]].Objectives[0] < population[idxs[j]].Objectives[0]
		})

		// Elitism (carry over the best individuals unchanged)
		next := make([]framework.Individual, 0, popSize)
		for e := 0; e < s.cfg.Elite && e < popSize; e++ {
			next = append(next, population[idxs[e]])
		}

		for len(next) < popSize {
			p1 := s.tournamentSelect(population)
			p2 := s.tournamentSelect(population)

			child1, child2 := sbx(s.rng, population[p1].Variables, population[p2].Variables, b, s.cfg.CrossoverRate)
			polynomialMutation(s.rng, child1, b, s.cfg.MutationRate)
			polynomialMutation(s.rng, child2, b, s.cfg.MutationRate)

			for _, child := range [][]float64{child1, child2} {
				if len(next) == popSize {
					break
				}
				ind, err := pop.Evaluate(child)
				if err != nil {
					return err
				}
				next = append(next, ind)
			}
		}
		population = next
	}

	for i := range population {
		pop.Set(i, population[i])
	}
	return nil
}

// tournamentSelect returns the index of the fittest of TournamentSize
// randomly drawn individuals.
func (s *SGA) tournamentSelect(population []framework.Individual) int {
	best := s.rng.IntN(len(population))
	for i := 1; i < s.cfg.TournamentSize; i++ {
		contestant := s.rng.IntN(len(population))
		if population[contestant].Objectives[0] < population[best].Objectives[0] {
			best = contestant
		}
	}
	return best
}
