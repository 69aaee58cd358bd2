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
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	validMethods = sets.New("weighted", "tchebycheff", "bi", "boundary-intersection")
	validSolvers = sets.New("sga", "pso", "nsga2")
)

// ValidatePaDeArgs validates defaulted args. path is the field path of args
// in the enclosing document and may be nil.
func ValidatePaDeArgs(path *field.Path, args *PaDeArgs) error {
	var allErrs field.ErrorList

	if args.APIVersion != GroupVersion {
		allErrs = append(allErrs, field.NotSupported(path.Child("apiVersion"), args.APIVersion, []string{GroupVersion}))
	}
	if args.Kind != PaDeArgsKind {
		allErrs = append(allErrs, field.NotSupported(path.Child("kind"), args.Kind, []string{PaDeArgsKind}))
	}
	if args.Generations != nil && *args.Generations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("generations"), *args.Generations, "must be non-negative"))
	}
	if args.MaxParallelism != nil && *args.MaxParallelism <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxParallelism"), *args.MaxParallelism, "must be positive"))
	}
	if args.Workers != nil && *args.Workers < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("workers"), *args.Workers, "must be non-negative"))
	}
	if !validMethods.Has(args.Method) {
		allErrs = append(allErrs, field.NotSupported(path.Child("method"), args.Method, sets.List(validMethods)))
	}
	if args.Resolution != nil && *args.Resolution < 2 {
		allErrs = append(allErrs, field.Invalid(path.Child("resolution"), *args.Resolution, "must be at least 2"))
	}
	if args.Penalty != nil && *args.Penalty < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("penalty"), *args.Penalty, "must be non-negative"))
	}

	allErrs = append(allErrs, validateSolverArgs(path.Child("solver"), &args.Solver)...)
	return allErrs.ToAggregate()
}

func validateSolverArgs(path *field.Path, args *SolverArgs) field.ErrorList {
	var allErrs field.ErrorList
	if !validSolvers.Has(args.Name) {
		allErrs = append(allErrs, field.NotSupported(path.Child("name"), args.Name, sets.List(validSolvers)))
	}
	if args.Generations != nil && *args.Generations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("generations"), *args.Generations, "must be non-negative"))
	}
	allErrs = append(allErrs, validateRate(path.Child("crossoverRate"), args.CrossoverRate)...)
	allErrs = append(allErrs, validateRate(path.Child("mutationRate"), args.MutationRate)...)
	return allErrs
}

func validateRate(path *field.Path, rate *float64) field.ErrorList {
	if rate == nil || (*rate >= 0 && *rate <= 1) {
		return nil
	}
	return field.ErrorList{field.Invalid(path, *rate, "must be between 0 and 1")}
}
