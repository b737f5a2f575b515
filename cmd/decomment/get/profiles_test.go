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

package get

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

const testProfiles = `apiVersion: decomment.eminwux.io/v1
kind: RuleProfile
metadata:
  name: c-sources
spec:
  include: ["src/**/*.c"]
  output: write
`

func newTestProfilesCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	viper.Reset()

	cmd := NewGetProfilesCmd()
	ctx := context.WithValue(context.Background(), logging.CtxLogger, logging.NewNoopLogger())
	cmd.SetContext(ctx)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd, &stdout
}

func writeProfilesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(testProfiles), 0o600); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	return path
}

func Test_ErrLoggerNotFound_Profiles_RunE(t *testing.T) {
	viper.Reset()
	cmd := NewGetProfilesCmd()
	// Don't set CtxLogger, so it will be nil
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, []string{})
	if !errors.Is(err, errdefs.ErrLoggerNotFound) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrLoggerNotFound, err)
	}
}

func Test_ErrInvalidFlag_Profiles_OutputWhileListing(t *testing.T) {
	cmd, _ := newTestProfilesCmd(t, "--output", "json")

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrInvalidFlag) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrInvalidFlag, err)
	}
}

func Test_ErrTooManyArguments_Profiles(t *testing.T) {
	cmd, _ := newTestProfilesCmd(t, "one", "two")

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrTooManyArguments) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrTooManyArguments, err)
	}
}

func Test_ErrInvalidOutputFormat_Profiles(t *testing.T) {
	cmd, _ := newTestProfilesCmd(t, "c-sources", "-o", "xml")

	err := cmd.Execute()
	if !errors.Is(err, errdefs.ErrInvalidOutputFormat) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrInvalidOutputFormat, err)
	}
}

func Test_Profiles_List(t *testing.T) {
	path := writeProfilesFile(t)
	cmd, stdout := newTestProfilesCmd(t)
	viper.Set("decomment.global.profilesFile", path)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout.String(), "c-sources") {
		t.Fatalf("profile missing from list:\n%s", stdout.String())
	}
}

func Test_Profiles_GetYAML(t *testing.T) {
	path := writeProfilesFile(t)
	cmd, stdout := newTestProfilesCmd(t, "c-sources")
	viper.Set("decomment.global.profilesFile", path)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "kind: RuleProfile") || !strings.Contains(out, "name: c-sources") {
		t.Fatalf("unexpected yaml output:\n%s", out)
	}
}

func Test_Profiles_GetJSON(t *testing.T) {
	path := writeProfilesFile(t)
	cmd, stdout := newTestProfilesCmd(t, "c-sources", "-o", "json")
	viper.Set("decomment.global.profilesFile", path)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout.String(), "\"kind\": \"RuleProfile\"") {
		t.Fatalf("unexpected json output:\n%s", stdout.String())
	}
}
