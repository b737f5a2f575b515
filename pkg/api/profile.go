// Copyright 2025 Emiliano Spinella (eminwux)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package api holds the public document and report types of decomment.
package api

type (
	Version string
	Kind    string
)

const (
	V1 Version = "decomment.eminwux.io/v1"
)

const (
	KindRuleProfile Kind = "RuleProfile"
)

// OutputMode selects where filtered text is written.
type OutputMode string

const (
	OutputWrite  OutputMode = "write"  // rewrite the input file in place
	OutputSuffix OutputMode = "suffix" // write <file><suffix> next to the input
	OutputStdout OutputMode = "stdout" // stream to standard output
)

// RuleProfileDoc is one YAML document in the profiles file.
type RuleProfileDoc struct {
	APIVersion Version             `json:"apiVersion" yaml:"apiVersion"`
	Kind       Kind                `json:"kind"       yaml:"kind"`
	Metadata   RuleProfileMetadata `json:"metadata"   yaml:"metadata"`
	Spec       RuleProfileSpec     `json:"spec"       yaml:"spec"`
}

type RuleProfileMetadata struct {
	Name        string            `json:"name"                  yaml:"name"`
	Labels      map[string]string `json:"labels,omitempty"      yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type RuleProfileSpec struct {
	// Include are doublestar globs selecting candidate files.
	Include []string `json:"include"              yaml:"include"`
	// Exclude globs remove matches produced by Include.
	Exclude []string `json:"exclude,omitempty"    yaml:"exclude,omitempty"`
	// Extensions, when set, keeps only files with one of these suffixes
	// (leading dot included, e.g. ".c").
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// Output defaults to stdout when empty.
	Output OutputMode `json:"output,omitempty"     yaml:"output,omitempty"`
	// Suffix is required when Output is "suffix".
	Suffix string `json:"suffix,omitempty"     yaml:"suffix,omitempty"`
}
