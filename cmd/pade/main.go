// Command pade evolves a random population of a benchmark problem with the
// Parallel Decomposition algorithm and reports the resulting front.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/darioizzo/pagmo/apis/pade/v1alpha1"
	"github.com/darioizzo/pagmo/pkg/multiobjective/algorithms"
	"github.com/darioizzo/pagmo/pkg/multiobjective/benchmarks"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
	"github.com/darioizzo/pagmo/pkg/multiobjective/metrics"
	"github.com/darioizzo/pagmo/pkg/multiobjective/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage error")

type options struct {
	configFile  string
	problem     string
	variables   int
	objectives  int
	population  int
	seed        uint64
	cache       bool
	output      string
	plotDir     string
	metricsFile string

	// Overrides of the configuration file, applied only when set.
	generations       int32
	maxParallelism    int32
	workers           int32
	method            string
	resolution        int32
	solver            string
	solverGenerations int32
	solverSeed        uint64

	flags *pflag.FlagSet
}

func newOptions() *options {
	return &options{
		problem:           "zdt1",
		variables:         30,
		objectives:        3,
		population:        20,
		seed:              1,
		generations:       v1alpha1.DefaultGenerations,
		maxParallelism:    v1alpha1.DefaultMaxParallelism,
		method:            v1alpha1.DefaultMethod,
		resolution:        v1alpha1.DefaultResolution,
		solver:            v1alpha1.DefaultSolver,
		solverGenerations: v1alpha1.DefaultSolverGenerations,
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", o.configFile, "Path to a PaDeArgs configuration file. Flags take precedence over it.")
	fs.StringVar(&o.problem, "problem", o.problem, "Benchmark problem: zdt1, zdt2 or dtlz2.")
	fs.IntVar(&o.variables, "variables", o.variables, "Dimension of the decision vector.")
	fs.IntVar(&o.objectives, "objectives", o.objectives, "Number of objectives, used by dtlz2 only.")
	fs.IntVar(&o.population, "population", o.population, "Size of the initial random population.")
	fs.Uint64Var(&o.seed, "seed", o.seed, "Seed of the initial population.")
	fs.BoolVar(&o.cache, "cache", o.cache, "Memoize fitness evaluations of the problem.")
	fs.StringVar(&o.output, "output", o.output, "Write the PaDeResult document to this file.")
	fs.StringVar(&o.plotDir, "plot-dir", o.plotDir, "Render the final front against the true front into this directory.")
	fs.StringVar(&o.metricsFile, "metrics-file", o.metricsFile, "Write the collected metrics in text format to this file.")

	fs.Int32Var(&o.generations, "generations", o.generations, "Number of times each sub-problem solver is evolved.")
	fs.Int32Var(&o.maxParallelism, "max-parallelism", o.maxParallelism, "Number of sub-problems solved concurrently.")
	fs.Int32Var(&o.workers, "workers", o.workers, "Goroutines evolving a batch, 0 for one per sub-problem.")
	fs.StringVar(&o.method, "method", o.method, "Decomposition method: weighted, tchebycheff or bi.")
	fs.Int32Var(&o.resolution, "resolution", o.resolution, "Divisions per objective axis of the weight lattice.")
	fs.StringVar(&o.solver, "solver", o.solver, "Single objective solver: sga, pso or nsga2.")
	fs.Int32Var(&o.solverGenerations, "solver-generations", o.solverGenerations, "Generations run by the solver each time it is evolved.")
	fs.Uint64Var(&o.solverSeed, "solver-seed", o.solverSeed, "Seed of the solver random source.")
	o.flags = fs
}

// args loads the configuration file, if any, and applies the flags that were
// set explicitly on top of it.
func (o *options) args() (*v1alpha1.PaDeArgs, error) {
	args := &v1alpha1.PaDeArgs{}
	if o.configFile != "" {
		loaded, err := v1alpha1.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		args = loaded
	}

	changed := func(name string) bool { return o.flags != nil && o.flags.Changed(name) }
	if changed("generations") {
		args.Generations = ptr.To(o.generations)
	}
	if changed("max-parallelism") {
		args.MaxParallelism = ptr.To(o.maxParallelism)
	}
	if changed("workers") {
		args.Workers = ptr.To(o.workers)
	}
	if changed("method") {
		args.Method = o.method
	}
	if changed("resolution") {
		args.Resolution = ptr.To(o.resolution)
	}
	if changed("solver") {
		args.Solver.Name = o.solver
	}
	if changed("solver-generations") {
		args.Solver.Generations = ptr.To(o.solverGenerations)
	}
	if changed("solver-seed") {
		args.Solver.Seed = o.solverSeed
	}

	v1alpha1.SetDefaults_PaDeArgs(args)
	if err := v1alpha1.ValidatePaDeArgs(nil, args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return args, nil
}

func run(ctx context.Context, argv []string, out io.Writer) error {
	opts := newOptions()
	fs := pflag.NewFlagSet("pade", pflag.ContinueOnError)
	fs.SetOutput(out)
	opts.addFlags(fs)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %d", errUsage, opts.population)
	}

	args, err := opts.args()
	if err != nil {
		return err
	}

	bench, err := benchmarks.New(opts.problem, opts.variables, opts.objectives)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	var prob framework.Problem = bench
	var cache *framework.CachedProblem
	if opts.cache {
		cache = framework.NewCachedProblem(bench, 0)
		prob = cache
	}

	pop, err := framework.NewRandomPopulation(prob, opts.population, rand.New(rand.NewPCG(opts.seed, opts.seed)))
	if err != nil {
		return fmt.Errorf("sampling initial population: %w", err)
	}

	registry := prometheus.NewRegistry()
	algo, err := newPaDe(args, metrics.New(registry))
	if err != nil {
		return err
	}

	logger := klog.FromContext(ctx).WithName("pade").WithValues("problem", bench.Name())
	ctx = klog.NewContext(ctx, logger)
	logger.V(2).Info("Starting evolution", "algorithm", algo.String(), "population", pop.Size())

	start := time.Now()
	if err := algo.Evolve(ctx, pop); err != nil {
		return fmt.Errorf("evolving %s: %w", bench.Name(), err)
	}
	elapsed := time.Since(start)

	result := newResult(bench, algo, pop)
	logFront(logger, result)

	fmt.Fprintf(out, "%s on %s\n", algo.Name(), bench.Name())
	fmt.Fprintf(out, "  configuration: %s\n", algo)
	fmt.Fprintf(out, "  population:    %s individuals\n", humanize.Comma(int64(pop.Size())))
	fmt.Fprintf(out, "  batches:       %s\n", humanize.Comma(int64(len(algorithms.Partition(pop.Size(), int(*args.MaxParallelism))))))
	fmt.Fprintf(out, "  first front:   %s solutions\n", humanize.Comma(int64(countRank(result, 0))))
	if cache != nil {
		fmt.Fprintf(out, "  evaluations:   %s distinct\n", humanize.Comma(int64(cache.Len())))
	}
	fmt.Fprintf(out, "  elapsed:       %s\n", elapsed.Round(time.Millisecond))

	if opts.output != "" {
		data, err := v1alpha1.MarshalResult(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "  result:        %s (%s)\n", opts.output, humanize.Bytes(uint64(len(data))))
	}
	if opts.plotDir != "" {
		path, err := util.WritePlot(opts.plotDir, framework.ObjectivePoints(pop.Individuals()), bench, algo.Name())
		if err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
		fmt.Fprintf(out, "  plot:          %s\n", path)
	}
	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func newResult(bench benchmarks.Benchmark, algo framework.Algorithm, pop *framework.Population) *v1alpha1.PaDeResult {
	individuals := pop.Individuals()
	ranks := make([]int, len(individuals))
	for rank, front := range framework.NonDominatedSort(framework.ObjectivePoints(individuals)) {
		for _, i := range front {
			ranks[i] = rank
		}
	}

	result := &v1alpha1.PaDeResult{
		Problem:   bench.Name(),
		Algorithm: fmt.Sprintf("%s[%s]", algo.Name(), algo),
		Solutions: make([]v1alpha1.OptimizationSolution, len(individuals)),
	}
	result.GeneratedAt.Time = time.Now()
	for i, ind := range individuals {
		result.Solutions[i] = v1alpha1.OptimizationSolution{
			Rank:       ranks[i],
			Variables:  ind.Variables,
			Objectives: ind.Objectives,
		}
	}
	return result
}

func countRank(result *v1alpha1.PaDeResult, rank int) int {
	n := 0
	for _, s := range result.Solutions {
		if s.Rank == rank {
			n++
		}
	}
	return n
}

func logFront(logger logr.Logger, result *v1alpha1.PaDeResult) {
	if !logger.V(4).Enabled() {
		return
	}
	for i, s := range result.Solutions {
		if s.Rank == 0 {
			logger.V(4).Info("Non-dominated solution", "index", i, "objectives", s.Objectives)
		}
	}
}
