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

// Package profile loads RuleProfile YAMLs: multi-document files, schema
// validation, and lookup by name.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/pkg/api"
	"gopkg.in/yaml.v3"
)

// LoadFromPath reads a multi-document YAML file into []api.RuleProfileDoc.
func LoadFromPath(_ context.Context, path string) ([]api.RuleProfileDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errdefs.ErrOpenProfilesFile, path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes one or more YAML documents from r. Empty
// documents are skipped; documents that fail schema validation abort
// the load.
func LoadFromReader(r io.Reader) ([]api.RuleProfileDoc, error) {
	dec := yaml.NewDecoder(r)

	var out []api.RuleProfileDoc
	for {
		var p api.RuleProfileDoc
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode profile: %w", err)
		}

		// Skip empty docs (stray '---' separators).
		if p.Metadata.Name == "" && p.APIVersion == "" && p.Kind == "" {
			slog.Debug("skipping empty profile document")
			continue
		}

		if err := Validate(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// FindByName scans the YAML file at path and returns the profile whose
// metadata.name matches. The match is case-sensitive.
func FindByName(ctx context.Context, path, name string) (*api.RuleProfileDoc, error) {
	profiles, err := LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].Metadata.Name == name {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %q", errdefs.ErrProfileNotFound, name, path)
}

// PrintTable renders a compact table of profiles to w.
func PrintTable(w io.Writer, profiles []api.RuleProfileDoc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(profiles) == 0 {
		fmt.Fprintln(tw, "no profiles found")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "NAME\tOUTPUT\tINCLUDE\tEXCLUDE\tEXTENSIONS")
	for _, p := range profiles {
		output := p.Spec.Output
		if output == "" {
			output = api.OutputStdout
		}
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%d globs\t%s\n",
			p.Metadata.Name,
			output,
			strings.Join(p.Spec.Include, ","),
			len(p.Spec.Exclude),
			strings.Join(p.Spec.Extensions, ","),
		)
	}

	return tw.Flush()
}
