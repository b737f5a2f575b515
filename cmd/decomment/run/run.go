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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eminwux/decomment/internal/env"
	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/eminwux/decomment/internal/profile"
	"github.com/eminwux/decomment/internal/runner"
	"github.com/eminwux/decomment/internal/source"
	"github.com/eminwux/decomment/pkg/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	writeInput      = "decomment.run.write"
	suffixInput     = "decomment.run.suffix"
	profileInput    = "decomment.run.profile"
	jobsInput       = "decomment.run.jobs"
	reportInput     = "decomment.run.report"
	saveReportInput = "decomment.run.saveReport"
	excludeInput    = "decomment.run.exclude"
	extInput        = "decomment.run.ext"
)

func NewRunCmd() *cobra.Command {
	// runCmd represents the run command.
	cmd := &cobra.Command{
		Use:   "run [path|glob ...]",
		Short: "Strip comments from a batch of files",
		Long: `Strip comments from the given paths or doublestar globs.

Without --write or --suffix the filtered text goes to stdout. A rule
profile can supply globs and output mode instead of arguments:

  decomment run 'src/**/*.c' --write --jobs 4
  decomment run main.c util.c --suffix .nc
  decomment run --profile c-sources --report yaml
`,
		SilenceUsage: true,
		RunE:         runBatch,
	}

	setupRunCmd(cmd)
	return cmd
}

func setupRunCmd(cmd *cobra.Command) {
	cmd.Flags().BoolP("write", "w", false, "Rewrite input files in place")
	_ = viper.BindPFlag(writeInput, cmd.Flags().Lookup("write"))

	cmd.Flags().String("suffix", "", "Write output next to each input with this suffix")
	_ = viper.BindPFlag(suffixInput, cmd.Flags().Lookup("suffix"))

	cmd.Flags().StringP("profile", "p", "", "Rule profile supplying globs and output mode")
	_ = viper.BindPFlag(profileInput, cmd.Flags().Lookup("profile"))

	cmd.Flags().IntP("jobs", "j", 1, "Max files filtered concurrently")
	_ = viper.BindPFlag(jobsInput, cmd.Flags().Lookup("jobs"))

	cmd.Flags().String("report", "", "Print a run report: json|yaml")
	_ = viper.BindPFlag(reportInput, cmd.Flags().Lookup("report"))

	cmd.Flags().Bool("save-report", false, "Save the run report under the run path")
	_ = viper.BindPFlag(saveReportInput, cmd.Flags().Lookup("save-report"))

	cmd.Flags().StringSlice("exclude", nil, "Exclude globs")
	_ = viper.BindPFlag(excludeInput, cmd.Flags().Lookup("exclude"))

	cmd.Flags().StringSlice("ext", nil, "Keep only files with these extensions (e.g. .c,.h)")
	_ = viper.BindPFlag(extInput, cmd.Flags().Lookup("ext"))

	_ = cmd.RegisterFlagCompletionFunc(
		"report",
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
		},
	)
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("write") && cmd.Flags().Changed("suffix") {
		return errdefs.ErrConflictingOutputs
	}

	format := viper.GetString(reportInput)
	if format != "" && format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %s", errdefs.ErrInvalidOutputFormat, format)
	}

	set := source.Set{
		Include:    args,
		Exclude:    viper.GetStringSlice(excludeInput),
		Extensions: viper.GetStringSlice(extInput),
	}
	mode := api.OutputStdout
	suffix := viper.GetString(suffixInput)
	if viper.GetBool(writeInput) {
		mode = api.OutputWrite
	} else if suffix != "" {
		mode = api.OutputSuffix
	}

	profileName := viper.GetString(profileInput)
	if profileName != "" {
		doc, err := profile.FindByName(
			cmd.Context(),
			viper.GetString(env.PROFILES_FILE.ViperKey),
			profileName,
		)
		if err != nil {
			logger.Debug("profile lookup failed", "profile", profileName, "error", err)
			return err
		}
		// Arguments still win over the profile's globs.
		if len(set.Include) == 0 {
			set.Include = doc.Spec.Include
		}
		set.Exclude = append(set.Exclude, doc.Spec.Exclude...)
		if len(set.Extensions) == 0 {
			set.Extensions = doc.Spec.Extensions
		}
		if !cmd.Flags().Changed("write") && !cmd.Flags().Changed("suffix") && doc.Spec.Output != "" {
			mode = doc.Spec.Output
			suffix = doc.Spec.Suffix
		}
	}

	if len(set.Include) == 0 {
		return fmt.Errorf("%w: need at least one path, glob, or --profile", errdefs.ErrInvalidArgument)
	}

	files, err := source.Expand(set)
	if err != nil {
		return err
	}

	logger.Debug("run command invoked",
		"patterns", set.Include,
		"files", len(files),
		"mode", string(mode),
		"profile", profileName,
	)

	report, runErr := runner.Run(cmd.Context(), logger, runner.Options{
		Files:   files,
		Mode:    mode,
		Suffix:  suffix,
		Jobs:    viper.GetInt(jobsInput),
		Stdout:  cmd.OutOrStdout(),
		Profile: profileName,
	})
	if runErr != nil && !errors.Is(runErr, errdefs.ErrRunFailed) {
		return runErr
	}

	if report != nil && format != "" {
		if err := printReport(cmd, report, format); err != nil {
			return err
		}
	}
	if report != nil && viper.GetBool(saveReportInput) {
		path, err := saveReport(report)
		if err != nil {
			return err
		}
		logger.Info("report saved", "run_id", report.RunID, "path", path)
	}

	return runErr
}

// saveReport persists the report as YAML under <runPath>/reports, named
// by run ID.
func saveReport(report *api.RunReport) (string, error) {
	dir := filepath.Join(viper.GetString(env.RUN_PATH.ViperKey), "reports")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrWriteOutput, err)
	}

	raw, err := yaml.Marshal(report)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, report.RunID+".yaml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", errdefs.ErrWriteOutput, err)
	}
	return path, nil
}

func printReport(cmd *cobra.Command, report *api.RunReport, format string) error {
	switch format {
	case "json":
		raw, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), string(raw))
	case "yaml":
		raw, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), string(raw))
	default:
		return fmt.Errorf("%w: %s", errdefs.ErrInvalidOutputFormat, format)
	}
	return nil
}
