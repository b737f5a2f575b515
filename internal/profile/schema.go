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

package profile

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/pkg/api"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ruleProfileSchema constrains a RuleProfile document beyond what YAML
// decoding alone can check: required metadata, glob lists of strings,
// the closed set of output modes, and suffix being present when the
// suffix mode is selected.
const ruleProfileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["apiVersion", "kind", "metadata", "spec"],
  "properties": {
    "apiVersion": { "const": "decomment.eminwux.io/v1" },
    "kind": { "const": "RuleProfile" },
    "metadata": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "labels": { "type": "object", "additionalProperties": { "type": "string" } },
        "annotations": { "type": "object", "additionalProperties": { "type": "string" } }
      }
    },
    "spec": {
      "type": "object",
      "required": ["include"],
      "properties": {
        "include": { "type": "array", "minItems": 1, "items": { "type": "string", "minLength": 1 } },
        "exclude": { "type": "array", "items": { "type": "string", "minLength": 1 } },
        "extensions": { "type": "array", "items": { "type": "string", "pattern": "^\\." } },
        "output": { "enum": ["", "write", "suffix", "stdout"] },
        "suffix": { "type": "string" }
      },
      "if": { "properties": { "output": { "const": "suffix" } } },
      "then": { "required": ["suffix"] }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource("ruleprofile.json", strings.NewReader(ruleProfileSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("ruleprofile.json")
	})
	return schema, schemaErr
}

// Validate checks a decoded profile document against the embedded
// schema. The document is round-tripped through JSON so the validator
// sees the same shape the YAML file had.
func Validate(doc *api.RuleProfileDoc) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrInvalidProfile, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrInvalidProfile, err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %q: %v", errdefs.ErrInvalidProfile, doc.Metadata.Name, err)
	}
	return nil
}
