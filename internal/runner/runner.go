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

// Package runner applies the comment filter to a batch of files.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/pkg/api"
	"github.com/eminwux/decomment/pkg/filter"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// Options configures one batch run.
type Options struct {
	Files   []string
	Mode    api.OutputMode
	Suffix  string // required for api.OutputSuffix
	Jobs    int    // max concurrent files; <= 0 means 1
	Stdout  io.Writer
	Profile string // profile name for the report, may be empty
}

// Run filters every file in opts.Files and returns a report. Per-file
// failures are recorded in the report rather than aborting the batch;
// when any file failed the report is returned together with
// errdefs.ErrRunFailed so callers can exit non-zero.
func Run(ctx context.Context, logger *slog.Logger, opts Options) (*api.RunReport, error) {
	if len(opts.Files) == 0 {
		return nil, errdefs.ErrNoInputs
	}
	if opts.Mode == api.OutputSuffix && opts.Suffix == "" {
		return nil, fmt.Errorf("%w: suffix mode needs a suffix", errdefs.ErrOutputMode)
	}

	report := &api.RunReport{
		RunID:   ulid.Make().String(),
		Profile: opts.Profile,
		Files:   make([]api.FileResult, len(opts.Files)),
	}

	logger.Info("run started",
		"run_id", report.RunID,
		"files", len(opts.Files),
		"mode", string(opts.Mode),
		"jobs", opts.Jobs,
	)

	switch opts.Mode {
	case api.OutputStdout, "":
		// Stdout output must stay in input order, so this path is
		// sequential regardless of Jobs.
		for i, path := range opts.Files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			report.Files[i] = filterToWriter(path, opts.Stdout)
		}

	case api.OutputWrite, api.OutputSuffix:
		g, gctx := errgroup.WithContext(ctx)
		jobs := opts.Jobs
		if jobs <= 0 {
			jobs = 1
		}
		g.SetLimit(jobs)

		for i, path := range opts.Files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				report.Files[i] = filterToFile(path, opts.Mode, opts.Suffix)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", errdefs.ErrOutputMode, opts.Mode)
	}

	for _, fr := range report.Files {
		report.Scanned++
		switch {
		case fr.Error != "":
			report.Failed++
		case fr.Changed:
			report.Changed++
			report.BytesRemoved += fr.BytesIn - fr.BytesOut
		default:
			report.Unchanged++
		}
	}

	logger.Info("run finished",
		"run_id", report.RunID,
		"scanned", report.Scanned,
		"changed", report.Changed,
		"failed", report.Failed,
		"bytes_removed", report.BytesRemoved,
	)

	if report.Failed > 0 {
		return report, errdefs.ErrRunFailed
	}
	return report, nil
}

func filterToWriter(path string, w io.Writer) api.FileResult {
	res := api.FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = fmt.Sprintf("%v: %v", errdefs.ErrReadInput, err)
		return res
	}

	filtered := filter.Filter(string(data))
	res.BytesIn = len(data)
	res.BytesOut = len(filtered)
	res.Changed = filtered != string(data)

	if _, err := io.WriteString(w, filtered); err != nil {
		res.Error = fmt.Sprintf("%v: %v", errdefs.ErrWriteOutput, err)
	}
	return res
}

func filterToFile(path string, mode api.OutputMode, suffix string) api.FileResult {
	res := api.FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = fmt.Sprintf("%v: %v", errdefs.ErrReadInput, err)
		return res
	}

	filtered := filter.Filter(string(data))
	res.BytesIn = len(data)
	res.BytesOut = len(filtered)
	res.Changed = filtered != string(data)

	out := path
	if mode == api.OutputSuffix {
		out = path + suffix
	} else if !res.Changed {
		// In-place mode leaves untouched files alone.
		return res
	}
	res.OutputPath = out

	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(out, []byte(filtered), perm); err != nil {
		res.Error = fmt.Sprintf("%v: %v", errdefs.ErrWriteOutput, err)
	}
	return res
}
