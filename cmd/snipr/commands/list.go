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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/opts"
	"github.com/walteh/snipr/pkg/log"
	"github.com/walteh/snipr/pkg/present"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the snippet tree",
		Long: `List prints the snippet tree of the selected scope. With --watch it keeps
running and prints the tree again whenever another process changes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			o.Logger.StartScope(ctx, log.ScopeOperation{Scope: o.Scope, Location: o.Location})
			defer o.Logger.EndScope(ctx)

			show := func(root *snippet.Node) {
				out, err := present.Render(root)
				if err != nil {
					o.Logger.Error(err.Error())
					return
				}
				o.Logger.Print(out)
			}
			show(o.Controller.Root())
			if empty, err := o.Controller.Service().HasNoChildren(ctx); err == nil && empty {
				o.Logger.Info("no snippets yet, add one with snipr add")
			}

			if !watch {
				return nil
			}
			if o.Location == "" {
				return errors.New("--watch needs the file store backend")
			}
			o.Controller.OnDidChange(show)
			o.Logger.Info("watching for changes, press ctrl-c to stop")
			return o.Controller.Watch(ctx, o.Location)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "print the tree again on every external change")
	return cmd
}
