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

// Package source expands include/exclude globs into the ordered set of
// files a run will filter.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/eminwux/decomment/internal/errdefs"
)

// Set describes what to scan for.
type Set struct {
	// Include are literal paths or doublestar globs ("src/**/*.c").
	Include []string
	// Exclude globs remove matches; compared against slash-separated
	// relative paths.
	Exclude []string
	// Extensions, when non-empty, keeps only files with one of these
	// suffixes (".c", ".go", ...).
	Extensions []string
}

// Expand resolves the set into a sorted, de-duplicated list of regular
// files. A literal path that exists is taken as-is; everything else is
// treated as a glob. A pattern that matches nothing is not an error, but
// an unparsable one is.
func Expand(set Set) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string

	for _, pattern := range set.Include {
		if fi, err := os.Stat(pattern); err == nil && fi.Mode().IsRegular() {
			addFile(&files, seen, pattern, set)
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("%w: %q", errdefs.ErrBadGlob, pattern)
		}

		hits, err := doublestar.FilepathGlob(filepath.FromSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", errdefs.ErrBadGlob, pattern, err)
		}
		for _, hit := range hits {
			fi, err := os.Stat(hit)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			addFile(&files, seen, hit, set)
		}
	}

	sort.Strings(files)
	return files, nil
}

func addFile(files *[]string, seen map[string]struct{}, path string, set Set) {
	clean := filepath.Clean(path)
	if _, dup := seen[clean]; dup {
		return
	}
	if excluded(clean, set.Exclude) {
		return
	}
	if !matchesExtension(clean, set.Extensions) {
		return
	}
	seen[clean] = struct{}{}
	*files = append(*files, clean)
}

func excluded(path string, excludes []string) bool {
	slashed := filepath.ToSlash(path)
	for _, ex := range excludes {
		if ok, err := doublestar.Match(ex, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
