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

package run

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTestRunCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	viper.Reset()

	cmd := NewRunCmd()
	ctx := context.WithValue(context.Background(), logging.CtxLogger, logging.NewNoopLogger())
	cmd.SetContext(ctx)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	return cmd, &stdout, &stderr
}

func Test_ErrLoggerNotFound_Run_RunE(t *testing.T) {
	viper.Reset()
	cmd := NewRunCmd()
	// Don't set CtxLogger, so it will be nil
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, []string{})
	if !errors.Is(err, errdefs.ErrLoggerNotFound) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrLoggerNotFound, err)
	}
}

func Test_ErrConflictingOutputs_Run(t *testing.T) {
	cmd, _, _ := newTestRunCmd(t, "--write", "--suffix", ".nc", "whatever.c")

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrConflictingOutputs) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrConflictingOutputs, err)
	}
}

func Test_ErrInvalidOutputFormat_Run_Report(t *testing.T) {
	cmd, _, _ := newTestRunCmd(t, "--report", "xml", "whatever.c")

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrInvalidOutputFormat) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrInvalidOutputFormat, err)
	}
}

func Test_ErrInvalidArgument_Run_NoInputs(t *testing.T) {
	cmd, _, _ := newTestRunCmd(t)

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrInvalidArgument) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrInvalidArgument, err)
	}
}

func Test_Run_StdoutMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("int x; // comment\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd, stdout, _ := newTestRunCmd(t, path)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout.String() != "int x; \n" {
		t.Fatalf("got %q", stdout.String())
	}
}

func Test_Run_ReportYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("int x; /* c */\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd, _, stderr := newTestRunCmd(t, "--report", "yaml", "--write", path)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := stderr.String()
	if !strings.Contains(out, "runId:") || !strings.Contains(out, "changed: 1") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func Test_Run_SaveReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("int x; // c\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	runPath := filepath.Join(dir, "run")

	cmd, _, _ := newTestRunCmd(t, "--save-report", "--write", path)
	viper.Set("decomment.global.runPath", runPath)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(runPath, "reports"))
	if err != nil {
		t.Fatalf("read reports dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".yaml") {
		t.Fatalf("unexpected reports dir contents: %v", entries)
	}
}

func Test_Run_ProfileNotFound(t *testing.T) {
	profilesFile := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(profilesFile, []byte(""), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd, _, _ := newTestRunCmd(t, "--profile", "nope")
	viper.Set("decomment.global.profilesFile", profilesFile)

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrProfileNotFound) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrProfileNotFound, err)
	}
}
