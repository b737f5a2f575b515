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

package env

import (
	"os"

	"github.com/spf13/viper"
)

const Prefix = "DECOMMENT"

type Var struct {
	Key        string // e.g. "DECOMMENT_RUN_PATH"
	ViperKey   string // optional, e.g. "decomment.global.runPath"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: Prefix + "_" + envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func (v Var) EnvKey() string               { return v.Key }
func (v Var) DefaultValue() (string, bool) { return v.Default, v.HasDefault }

// Precedence: viper (if ViperKey set and value present) → OS env → default → "".
func (v Var) ValueOrDefault() string {
	if v.ViperKey != "" && viper.IsSet(v.ViperKey) {
		return viper.GetString(v.ViperKey)
	}
	if val, ok := os.LookupEnv(v.Key); ok {
		return val
	}
	if v.HasDefault {
		return v.Default
	}
	return ""
}

// Safe if ViperKey is empty: does nothing.
func (v Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

func (v Var) Set(value string) error { return os.Setenv(v.Key, value) }

func (v *Var) SetDefault(val string) {
	v.Default = val
	v.HasDefault = true
	if v.ViperKey != "" {
		viper.SetDefault(v.ViperKey, val)
	}
}

// ---- Declare statically (Viper key optional per var) ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RUN_PATH = DefineKV("RUN_PATH", "decomment.global.runPath")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	CONFIG_FILE = DefineKV("CONFIG_FILE", "decomment.global.configFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	PROFILES_FILE = DefineKV("PROFILES_FILE", "decomment.global.profilesFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	LOG_LEVEL = DefineKV("LOG_LEVEL", "decomment.global.logLevel")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	LOG_FILE = DefineKV("LOG_FILE", "decomment.global.logFile")
)
