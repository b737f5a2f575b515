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

// Package decomment builds the root command of the decomment CLI.
package decomment

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eminwux/decomment/cmd/decomment/get"
	"github.com/eminwux/decomment/cmd/decomment/run"
	"github.com/eminwux/decomment/internal/env"
	"github.com/eminwux/decomment/internal/errdefs"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/eminwux/decomment/pkg/filter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func NewDecommentRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "decomment",
		Short: "decomment strips // and /* */ comments from source-like text",
		Long: `decomment removes line (//) and block (/* */) comments from
source-like text while leaving quoted string literals untouched.

With no arguments it filters standard input to standard output:
  cat main.c | decomment

Batch mode works on files and globs:
  decomment run 'src/**/*.c' --write
  decomment run --profile c-sources --report yaml

Profiles live in ~/.decomment/profiles.yaml; list them with:
  decomment get profiles
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := LoadConfig(); err != nil {
				fmt.Fprintln(os.Stderr, "Config error:", err)
				return fmt.Errorf("%w: %v", errdefs.ErrConfig, err)
			}

			loglevel := viper.GetString(env.LOG_LEVEL.ViperKey)
			if loglevel == "" {
				loglevel = "info"
			}

			if logfile := viper.GetString(env.LOG_FILE.ViperKey); logfile != "" {
				if err := logging.SetupFileLogger(cmd, logfile, loglevel); err != nil {
					return err
				}
			} else {
				logging.SetupStderrLogger(cmd, loglevel)
			}

			// Set log level dynamically if a logger already existed.
			if levelVar, ok := cmd.Context().Value(logging.CtxLevelVar).(*slog.LevelVar); ok && levelVar != nil {
				levelVar.Set(logging.ParseLevel(loglevel))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %q (did you mean 'decomment run'?)", errdefs.ErrInvalidArgument, args[0])
			}
			return filterStdin(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if closer, ok := cmd.Context().Value(logging.CtxCloser).(io.Closer); ok && closer != nil {
				_ = closer.Close()
			}
		},
	}

	setupRootCmd(rootCmd)
	return rootCmd
}

func setupRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(run.NewRunCmd())
	rootCmd.AddCommand(get.NewGetCmd())

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.decomment/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("profiles-file", "", "Rule profiles file (default is $HOME/.decomment/profiles.yaml)")

	bindFlag(env.CONFIG_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("config"))
	bindFlag(env.LOG_LEVEL.ViperKey, rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag(env.LOG_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("log-file"))
	bindFlag(env.PROFILES_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("profiles-file"))
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		slog.Warn("failed to bind flag", "flag", flag.Name, "error", err)
	}
}

// filterStdin streams stdin through the comment filter to stdout. An
// interactive terminal with nothing piped in gets help instead of a
// hang.
func filterStdin(cmd *cobra.Command) error {
	logger, err := logging.FromCommand(cmd)
	if err != nil {
		return err
	}

	fi, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrStdinStat, err)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) && fi.Size() == 0 {
		logger.Debug("stdin is a terminal, showing help")
		return cmd.Help()
	}

	logger.Debug("filtering stdin")

	stream := filter.NewStream(os.Stdout)
	if _, err := io.Copy(stream, os.Stdin); err != nil {
		return err
	}
	return stream.Close()
}

// LoadConfig loads config.yaml from the configured path or HOME/.decomment.
func LoadConfig() error {
	if viper.GetString(env.CONFIG_FILE.ViperKey) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home dir: %w", err)
		}
		configPath := filepath.Join(home, ".decomment")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configPath)
	} else {
		viper.SetConfigFile(viper.GetString(env.CONFIG_FILE.ViperKey))
	}
	_ = env.CONFIG_FILE.BindEnv()

	if viper.GetString(env.PROFILES_FILE.ViperKey) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home dir: %w", err)
		}
		env.PROFILES_FILE.SetDefault(filepath.Join(home, ".decomment", "profiles.yaml"))
	}
	_ = env.PROFILES_FILE.BindEnv()

	if viper.GetString(env.RUN_PATH.ViperKey) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home dir: %w", err)
		}
		env.RUN_PATH.SetDefault(filepath.Join(home, ".decomment", "run"))
	}
	_ = env.RUN_PATH.BindEnv()

	_ = env.LOG_LEVEL.BindEnv()
	env.LOG_LEVEL.SetDefault("info")
	_ = env.LOG_FILE.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		// File not found is OK if ENV is set
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			// A config file may also be absent when a path was forced.
			if os.IsNotExist(err) {
				return nil
			}
			return err // Config file was found but another error was produced
		}
	}

	return nil
}
