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

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/eminwux/decomment/pkg/api"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun_StdoutModeKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.c", "first // one\n")
	b := writeFile(t, dir, "b.c", "second /* two */\n")

	var sb strings.Builder
	report, err := Run(context.Background(), logging.NewNoopLogger(), Options{
		Files:  []string{a, b},
		Mode:   api.OutputStdout,
		Stdout: &sb,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if sb.String() != "first \nsecond \n" {
		t.Fatalf("got %q", sb.String())
	}
	if report.Scanned != 2 || report.Changed != 2 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.RunID == "" {
		t.Fatal("missing run id")
	}
}

func TestRun_WriteModeRewritesChangedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	changed := writeFile(t, dir, "c.c", "x /* drop */ y\n")
	clean := writeFile(t, dir, "clean.c", "nothing here\n")

	report, err := Run(context.Background(), logging.NewNoopLogger(), Options{
		Files: []string{changed, clean},
		Mode:  api.OutputWrite,
		Jobs:  2,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(changed)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "x  y\n" {
		t.Fatalf("file not rewritten: %q", data)
	}
	if report.Changed != 1 || report.Unchanged != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.BytesRemoved != len("x /* drop */ y\n")-len("x  y\n") {
		t.Fatalf("bytesRemoved = %d", report.BytesRemoved)
	}
}

func TestRun_SuffixMode(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "s.c", "a // b\n")

	report, err := Run(context.Background(), logging.NewNoopLogger(), Options{
		Files:  []string{in},
		Mode:   api.OutputSuffix,
		Suffix: ".nc",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out, err := os.ReadFile(in + ".nc")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(out) != "a \n" {
		t.Fatalf("got %q", out)
	}
	// The input stays untouched.
	orig, _ := os.ReadFile(in)
	if string(orig) != "a // b\n" {
		t.Fatalf("input modified: %q", orig)
	}
	if report.Files[0].OutputPath != in+".nc" {
		t.Fatalf("report output path = %q", report.Files[0].OutputPath)
	}
}

func TestRun_SuffixModeNeedsSuffix(t *testing.T) {
	_, err := Run(context.Background(), logging.NewNoopLogger(), Options{
		Files: []string{"whatever.c"},
		Mode:  api.OutputSuffix,
	})
	if !errors.Is(err, errdefs.ErrOutputMode) {
		t.Fatalf("expected ErrOutputMode, got %v", err)
	}
}

func TestRun_NoInputs(t *testing.T) {
	_, err := Run(context.Background(), logging.NewNoopLogger(), Options{})
	if !errors.Is(err, errdefs.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
}

func TestRun_MissingFileIsReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.c", "a // b\n")
	missing := filepath.Join(dir, "missing.c")

	var sb strings.Builder
	report, err := Run(context.Background(), logging.NewNoopLogger(), Options{
		Files:  []string{ok, missing},
		Mode:   api.OutputStdout,
		Stdout: &sb,
	})
	if !errors.Is(err, errdefs.ErrRunFailed) {
		t.Fatalf("expected ErrRunFailed, got %v", err)
	}
	if report == nil || report.Failed != 1 || report.Changed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	// The healthy file still produced output.
	if sb.String() != "a \n" {
		t.Fatalf("got %q", sb.String())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "x.c", "a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, logging.NewNoopLogger(), Options{
		Files:  []string{in},
		Mode:   api.OutputStdout,
		Stdout: &strings.Builder{},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
