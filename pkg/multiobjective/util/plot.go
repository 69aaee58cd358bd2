package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/darioizzo/pagmo/pkg/multiobjective/benchmarks"
	"github.com/darioizzo/pagmo/pkg/multiobjective/framework"
)

// PlotResults creates a scatter plot comparing the true Pareto front of the given Problem
// with the final population resulted from the algorithm. The HTML file is
// written into dir and its path is returned.
func PlotResults(dir string, results []framework.ObjectiveSpacePoint, problem benchmarks.Benchmark, algorithmName string) error {
	_, err := WritePlot(dir, results, problem, algorithmName)
	return err
}

// WritePlot is PlotResults returning the path of the rendered file.
func WritePlot(dir string, results []framework.ObjectiveSpacePoint, problem benchmarks.Benchmark, algorithmName string) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("results are empty for %s Benchmark", problem.Name())
	}

	if len(results[0]) != 2 {
		return "", fmt.Errorf("can only plot 2D for %s Benchmark", problem.Name())
	}

	// Create scatter chart
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	trueParetoFront := problem.TrueParetoFront(100)
	trueX := make([]opts.ScatterData, len(trueParetoFront))
	for i, p := range trueParetoFront {
		trueX[i] = opts.ScatterData{
			Value:      []float64(p),
			Symbol:     "circle",
			SymbolSize: 10,
		}
	}

	foundX := make([]opts.ScatterData, len(results))
	for i, res := range results {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	// Add data series
	scatter.AddSeries("True Pareto Front", trueX).
		AddSeries(fmt.Sprintf("%s Solutions", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileName(problem.Name(), algorithmName))

	// Create HTML file
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return path, scatter.Render(f)
}

// fileName keeps only characters that are safe in a file name.
func fileName(problemName, algorithmName string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, algorithmName)
	return fmt.Sprintf("%s_%s_results.html", problemName, clean)
}
