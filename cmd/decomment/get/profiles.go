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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/eminwux/decomment/internal/env"
	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/eminwux/decomment/internal/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	outputFormatProfilesInput = "decomment.get.profiles.output"
)

func NewGetProfilesCmd() *cobra.Command {
	// getProfilesCmd represents the get profiles command.
	cmd := &cobra.Command{
		Use:          "profiles",
		Aliases:      []string{"profile", "prof", "pro", "p"},
		Short:        "Get rule profiles",
		Long:         "Get rule profiles from the profiles file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// If user passed -o when listing, reject it
				if cmd.Flags().Changed("output") {
					return fmt.Errorf(
						"%w: the -o/--output flag is only valid when specifying a profile name",
						errdefs.ErrInvalidFlag,
					)
				}
				return listProfiles(cmd, args)
			} else if len(args) > 1 {
				return errdefs.ErrTooManyArguments
			}

			return getProfile(cmd, args)
		},
		// Positional completion for NAME
		ValidArgsFunction: completeProfiles,
	}

	setupNewGetProfilesCmd(cmd)
	return cmd
}

func setupNewGetProfilesCmd(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output format: json|yaml (default: human-readable)")
	_ = viper.BindPFlag(outputFormatProfilesInput, cmd.Flags().Lookup("output"))

	_ = cmd.RegisterFlagCompletionFunc(
		"output",
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
		},
	)
}

func listProfiles(cmd *cobra.Command, _ []string) error {
	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return err
	}

	path := viper.GetString(env.PROFILES_FILE.ViperKey)
	logger.Debug("profiles list command invoked",
		"profiles_file", path,
		"args", cmd.Flags().Args(),
	)

	profiles, err := profile.LoadFromPath(cmd.Context(), path)
	if err != nil {
		logger.Debug("error loading profiles", "error", err)
		fmt.Fprintln(os.Stderr, "Could not load profiles")
		return err
	}
	if err := profile.PrintTable(cmd.OutOrStdout(), profiles); err != nil {
		return err
	}
	logger.Debug("profiles list completed successfully")
	return nil
}

func getProfile(cmd *cobra.Command, args []string) error {
	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return err
	}

	profileName := args[0]
	format := viper.GetString(outputFormatProfilesInput)
	if format != "" && format != "json" && format != "yaml" {
		return fmt.Errorf("%w: %s", errdefs.ErrInvalidOutputFormat, format)
	}

	path := viper.GetString(env.PROFILES_FILE.ViperKey)
	logger.Debug("get profile command invoked",
		"profiles_file", path,
		"profile_name", profileName,
		"output_format", format,
	)

	doc, err := profile.FindByName(cmd.Context(), path, profileName)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	default:
		// yaml is also the human-readable default for a single doc.
		raw, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(raw))
	}
	return nil
}

func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := fetchProfileNames(cmd.Context(), viper.GetString(env.PROFILES_FILE.ViperKey), toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

func fetchProfileNames(ctx context.Context, path string, toComplete string) ([]string, error) {
	profiles, err := profile.LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if toComplete == "" || strings.HasPrefix(p.Metadata.Name, toComplete) {
			out = append(out, p.Metadata.Name)
		}
	}

	return out, nil
}
