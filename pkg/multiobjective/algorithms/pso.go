package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

const (
	PSOName = "Particle Swarm Optimization (PSO)"
)

// These params are calculated using the constriction factor of Clerc and
// Kennedy for c1 = c2 = 2.05: the cognition and social parameters are 2.05
// multiplied by the constriction coefficient, which is also the inertia.
const (
	DefaultCognition = 1.496179765663133
	DefaultSocial    = 1.496179765663133
	DefaultInertia   = 0.7298437881283576
)

// PSOConfig holds the parameters of the global best particle swarm.
type PSOConfig struct {
	// Generations is the number of swarm moves made by each Evolve call.
	Generations int
	Inertia     float64
	Cognition   float64
	Social      float64
	// VMax is the maximum velocity per dimension as a fraction of the
	// variable range.
	VMax float64
	Seed uint64
}

func DefaultPSOConfig() PSOConfig {
	return PSOConfig{
		Generations: 20,
		Inertia:     DefaultInertia,
		Cognition:   DefaultCognition,
		Social:      DefaultSocial,
		VMax:        0.5,
	}
}

func (c PSOConfig) Validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("number of generations must be non-negative, got %d", c.Generations)
	}
	if c.Inertia < 0 {
		return fmt.Errorf("inertia must be non-negative, got %v", c.Inertia)
	}
	if c.Cognition < 0 || c.Social < 0 {
		return fmt.Errorf("cognition and social must be non-negative, got %v and %v", c.Cognition, c.Social)
	}
	if c.VMax <= 0 || c.VMax > 1 {
		return fmt.Errorf("vmax must be in (0, 1], got %v", c.VMax)
	}
	return nil
}

// PSO is a global best particle swarm for single objective problems. The
// population holds the personal bests of the particles between Evolve calls.
type PSO struct {
	cfg PSOConfig
	src *rand.PCG
	rng *rand.Rand
}

var _ framework.Algorithm = &PSO{}

func NewPSO(cfg PSOConfig) (*PSO, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, rng := newRand(cfg.Seed)
	return &PSO{cfg: cfg, src: src, rng: rng}, nil
}

func (s *PSO) Name() string {
	return PSOName
}

func (s *PSO) String() string {
	return fmt.Sprintf("gen:%d omega:%g eta1:%g eta2:%g vmax:%g seed:%d",
		s.cfg.Generations, s.cfg.Inertia, s.cfg.Cognition, s.cfg.Social, s.cfg.VMax, s.cfg.Seed)
}

func (s *PSO) Clone() framework.Algorithm {
	src, rng := cloneRand(s.src)
	return &PSO{cfg: s.cfg, src: src, rng: rng}
}

type particle struct {
	pos  []float64
	vel  []float64
	best framework.Individual
}

func (s *PSO) Evolve(ctx context.Context, pop *framework.Population) error {
	prob := pop.Problem()
	if prob.NumObjectives() != 1 {
		return fmt.Errorf("%s cannot solve %s with %d objectives", PSOName, prob.Name(), prob.NumObjectives())
	}
	if pop.Size() == 0 {
		return nil
	}
	b := prob.Bounds()
	vmax := make([]float64, len(b))
	for i := range b {
		vmax[i] = s.cfg.VMax * (b[i].H - b[i].L)
	}

	swarm := make([]particle, pop.Size())
	gbest := 0
	for i := range swarm {
		ind := pop.Individual(i)
		p := particle{
			pos:  append([]float64(nil), ind.Variables...),
			vel:  make([]float64, len(b)),
			best: ind,
		}
		for j := range p.vel {
			p.vel[j] = vmax[j] * (1 - 2*s.rng.Float64())
		}
		swarm[i] = p
		if ind.Objectives[0] < swarm[gbest].best.Objectives[0] {
			gbest = i
		}
	}

	for gen := 0; gen < s.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g := swarm[gbest].best.Variables
		for i := range swarm {
			p := &swarm[i]
			for j := range p.vel {
				// r1 and r2 are drawn for each dimension
				r1, r2 := s.rng.Float64(), s.rng.Float64()
				p.vel[j] = s.cfg.Inertia*p.vel[j] +
					s.cfg.Cognition*r1*(p.best.Variables[j]-p.pos[j]) +
					s.cfg.Social*r2*(g[j]-p.pos[j])
				if math.Abs(p.vel[j]) > vmax[j] {
					p.vel[j] = math.Copysign(vmax[j], p.vel[j])
				}
				p.pos[j] += p.vel[j]
			}
			framework.Clamp(p.pos, b)

			ind, err := pop.Evaluate(p.pos)
			if err != nil {
				return err
			}
			if ind.Objectives[0] < p.best.Objectives[0] {
				p.best = ind
			}
		}
		for i := range swarm {
			if swarm[i].best.Objectives[0] < swarm[gbest].best.Objectives[0] {
				gbest = i
			}
		}
	}

	for i := range swarm {
		pop.Set(i, swarm[i].best)
	}
	return nil
}
