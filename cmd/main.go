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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eminwux/decomment/cmd/decomment"
	"github.com/eminwux/decomment/internal/logging"
	"github.com/spf13/cobra"
)

type rootFactory func() *cobra.Command

func execRoot(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func runWithFactory(ctx context.Context, factory rootFactory) int {
	root := factory()
	root.SetContext(ctx)
	return execRoot(root)
}

func main() {
	// A noop logger until PersistentPreRunE installs the real one.
	logger := logging.NewNoopLogger()
	ctx := context.WithValue(context.Background(), logging.CtxLogger, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	code := runWithFactory(ctx, decomment.NewDecommentRootCmd)
	stop()
	os.Exit(code)
}
