/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupVersion is the apiVersion of every document in this package.
	GroupVersion = "pade.pagmo.io/v1alpha1"

	PaDeArgsKind   = "PaDeArgs"
	PaDeResultKind = "PaDeResult"
)

// PaDeArgs holds the arguments used to configure a Parallel Decomposition run.
type PaDeArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Generations is the number of times each sub-problem solver is evolved.
	// Zero makes the run a no-op.
	Generations *int32 `json:"generations,omitempty"`

	// MaxParallelism is the number of sub-problems solved concurrently in one batch.
	MaxParallelism *int32 `json:"maxParallelism,omitempty"`

	// Workers caps the goroutines evolving a batch. Zero means one per task.
	Workers *int32 `json:"workers,omitempty"`

	// Method is the decomposition method
	// +kubebuilder:validation:Enum=weighted;tchebycheff;bi
	Method string `json:"method,omitempty"`

	// Resolution is the number of divisions per objective axis of the weight lattice.
	Resolution *int32 `json:"resolution,omitempty"`

	// ReferencePoint is the ideal point used by tchebycheff and bi. Defaults to the origin.
	ReferencePoint []float64 `json:"referencePoint,omitempty"`

	// Penalty is the bi penalty coefficient.
	Penalty *float64 `json:"penalty,omitempty"`

	// Solver configures the single objective algorithm run on every sub-problem.
	Solver SolverArgs `json:"solver"`
}

// SolverArgs selects and configures a single objective solver.
type SolverArgs struct {
	// Name of the solver
	// +kubebuilder:validation:Enum=sga;pso;nsga2
	Name string `json:"name,omitempty"`

	// Generations run by the solver each time it is evolved.
	Generations *int32 `json:"generations,omitempty"`

	// CrossoverRate is used by sga and nsga2.
	CrossoverRate *float64 `json:"crossoverRate,omitempty"`

	// MutationRate is used by sga and nsga2.
	MutationRate *float64 `json:"mutationRate,omitempty"`

	// Seed of the solver random source. Every sub-problem solver starts
	// from the same source state.
	Seed uint64 `json:"seed,omitempty"`
}

// PaDeResult is the outcome of a run, written by the pade command.
type PaDeResult struct {
	metav1.TypeMeta `json:",inline"`

	// Problem is the name of the optimized problem
	Problem string `json:"problem"`

	// Algorithm is the human readable configuration of the algorithm
	Algorithm string `json:"algorithm"`

	// GeneratedAt indicates when the result was produced
	GeneratedAt metav1.Time `json:"generatedAt"`

	// Solutions contains one solution per individual, in population order
	Solutions []OptimizationSolution `json:"solutions"`
}

// OptimizationSolution represents a single solution of the final population
type OptimizationSolution struct {
	// Rank is the index of the non-dominated front the solution belongs to (0 = best)
	Rank int `json:"rank"`

	// Variables is the decision vector
	Variables []float64 `json:"variables"`

	// Objectives contains the individual objective values
	Objectives []float64 `json:"objectives"`
}
