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
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultGenerations       int32 = 1
	DefaultMaxParallelism    int32 = 8
	DefaultMethod                  = "tchebycheff"
	DefaultResolution        int32 = 21
	DefaultPenalty                 = 5.0
	DefaultSolver                  = "sga"
	DefaultSolverGenerations int32 = 20
)

// SetDefaults_PaDeArgs fills every unset field of args.
func SetDefaults_PaDeArgs(args *PaDeArgs) {
	klog.V(5).InfoS("Setting defaults", "kind", PaDeArgsKind)

	if args.APIVersion == "" {
		args.APIVersion = GroupVersion
	}
	if args.Kind == "" {
		args.Kind = PaDeArgsKind
	}
	if args.Generations == nil {
		args.Generations = ptr.To(DefaultGenerations)
	}
	if args.MaxParallelism == nil {
		args.MaxParallelism = ptr.To(DefaultMaxParallelism)
	}
	if args.Workers == nil {
		args.Workers = ptr.To[int32](0)
	}
	if args.Method == "" {
		args.Method = DefaultMethod
	}
	if args.Resolution == nil {
		args.Resolution = ptr.To(DefaultResolution)
	}
	if args.Penalty == nil {
		args.Penalty = ptr.To(DefaultPenalty)
	}
	SetDefaults_SolverArgs(&args.Solver)
}

func SetDefaults_SolverArgs(args *SolverArgs) {
	if args.Name == "" {
		args.Name = DefaultSolver
	}
	if args.Generations == nil {
		args.Generations = ptr.To(DefaultSolverGenerations)
	}
}
