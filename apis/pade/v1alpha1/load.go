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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Load reads, defaults and validates the PaDeArgs document at path.
func Load(path string) (*PaDeArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	args, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return args, nil
}

// Decode parses a YAML or JSON PaDeArgs document. Unknown fields are rejected.
func Decode(data []byte) (*PaDeArgs, error) {
	args := &PaDeArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", PaDeArgsKind, err)
	}
	SetDefaults_PaDeArgs(args)
	if err := ValidatePaDeArgs(nil, args); err != nil {
		return nil, err
	}
	return args, nil
}

// MarshalResult encodes result as YAML.
func MarshalResult(result *PaDeResult) ([]byte, error) {
	if result.APIVersion == "" {
		result.APIVersion = GroupVersion
	}
	if result.Kind == "" {
		result.Kind = PaDeResultKind
	}
	return yaml.Marshal(result)
}
