// Copyright 2025 walteh LLC
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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/commands"
	"github.com/walteh/snipr/cmd/snipr/opts"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "snipr",
		Short: "Organize code snippets in a tree of folders",
		Long: `snipr keeps code snippets in a tree of folders, either globally or per
workspace, and can publish them to gists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging()
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)
			if cmd.Annotations[commands.SkipInit] != "" {
				return nil
			}
			return initRootOpts(ctx, rootOpts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.Close()
		},
	}

	addRootFlags(rootCmd)
	commands.Register(rootCmd, rootOpts)
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_ = rootOpts.Close()
		if rootOpts.Logger != nil {
			rootOpts.Logger.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		os.Exit(1)
	}
}
