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

package api

// FileResult is the outcome of filtering a single file.
type FileResult struct {
	Path       string `json:"path"                 yaml:"path"`
	BytesIn    int    `json:"bytesIn"              yaml:"bytesIn"`
	BytesOut   int    `json:"bytesOut"             yaml:"bytesOut"`
	Changed    bool   `json:"changed"              yaml:"changed"`
	Error      string `json:"error,omitempty"      yaml:"error,omitempty"`
	OutputPath string `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
}

// RunReport summarizes one decomment run.
type RunReport struct {
	RunID        string       `json:"runId"             yaml:"runId"`
	Profile      string       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Scanned      int          `json:"scanned"           yaml:"scanned"`
	Changed      int          `json:"changed"           yaml:"changed"`
	Unchanged    int          `json:"unchanged"         yaml:"unchanged"`
	Failed       int          `json:"failed"            yaml:"failed"`
	BytesRemoved int          `json:"bytesRemoved"      yaml:"bytesRemoved"`
	Files        []FileResult `json:"files"             yaml:"files"`
}
