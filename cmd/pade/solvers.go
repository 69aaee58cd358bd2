package main

import (
	"fmt"

	"github.com/darioizzo/pagmo/apis/pade/v1alpha1"
	"github.com/darioizzo/pagmo/pkg/multiobjective/algorithms"
	"github.com/darioizzo/pagmo/pkg/multiobjective/decompose"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
	"github.com/darioizzo/pagmo/pkg/multiobjective/metrics"
)

// newSolver builds the single objective solver described by defaulted args.
func newSolver(args v1alpha1.SolverArgs) (framework.Algorithm, error) {
	gens := int(*args.Generations)
	switch args.Name {
	case "sga":
		cfg := algorithms.DefaultSGAConfig()
		cfg.Generations, cfg.Seed = gens, args.Seed
		if args.CrossoverRate != nil {
			cfg.CrossoverRate = *args.CrossoverRate
		}
		if args.MutationRate != nil {
			cfg.MutationRate = *args.MutationRate
		}
		s, err := algorithms.NewSGA(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "pso":
		cfg := algorithms.DefaultPSOConfig()
		cfg.Generations, cfg.Seed = gens, args.Seed
		s, err := algorithms.NewPSO(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "nsga2":
		cfg := algorithms.DefaultNSGAIIConfig()
		cfg.Generations, cfg.Seed = gens, args.Seed
		if args.CrossoverRate != nil {
			cfg.CrossoverRate = *args.CrossoverRate
		}
		if args.MutationRate != nil {
			cfg.MutationRate = *args.MutationRate
		}
		s, err := algorithms.NewNSGAII(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown solver %q", args.Name)
	}
}

func newPaDe(args *v1alpha1.PaDeArgs, m *metrics.Metrics) (*algorithms.PaDe, error) {
	method, err := decompose.ParseMethod(args.Method)
	if err != nil {
		return nil, err
	}
	solver, err := newSolver(args.Solver)
	if err != nil {
		return nil, err
	}

	opts := []decompose.Option{decompose.WithPenalty(*args.Penalty)}
	if len(args.ReferencePoint) > 0 {
		opts = append(opts, decompose.WithReferencePoint(args.ReferencePoint))
	}
	return algorithms.NewPaDe(algorithms.PaDeConfig{
		Generations:      int(*args.Generations),
		MaxParallelism:   int(*args.MaxParallelism),
		Workers:          int(*args.Workers),
		Method:           method,
		Resolution:       int(*args.Resolution),
		Solver:           solver,
		DecomposeOptions: opts,
		Metrics:          m,
	})
}
