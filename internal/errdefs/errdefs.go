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

package errdefs

import "errors"

var (
	ErrConfig              = errors.New("config error")
	ErrLoggerNotFound      = errors.New("logger not found in context")
	ErrInvalidFlag         = errors.New("invalid flag usage")
	ErrTooManyArguments    = errors.New("too many positional arguments")
	ErrInvalidArgument     = errors.New("invalid positional argument")
	ErrStdinStat           = errors.New("failed to stat stdin")
	ErrOpenProfilesFile    = errors.New("failed to open profiles file")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidProfile      = errors.New("invalid profile document")
	ErrNoInputs            = errors.New("no input files matched")
	ErrBadGlob             = errors.New("malformed glob pattern")
	ErrOutputMode          = errors.New("unsupported output mode")
	ErrInvalidOutputFormat = errors.New("unsupported output format")
	ErrWriteOutput         = errors.New("could not write output file")
	ErrReadInput           = errors.New("could not read input file")
	ErrRunFailed           = errors.New("run finished with file errors")
	ErrConflictingOutputs  = errors.New("--write and --suffix are mutually exclusive")
)
