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
	"github.com/walteh/snipr/pkg/controller"
	"github.com/walteh/snipr/pkg/log"
)

func NewEditCmd(o *opts.RootOpts) *cobra.Command {
	var (
		label, value, description string
		prefix, language, icon    string
		resolveSyntax             bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a snippet or folder",
		Long: `Edit changes only the fields whose flags are given. Editing a published
snippet also updates its gist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := lookup(o, id); err != nil {
				return err
			}

			flags := cmd.Flags()
			var e controller.Edit
			if flags.Changed("label") {
				e.Label = &label
			}
			if flags.Changed("value") {
				e.Value = &value
			}
			if flags.Changed("description") {
				e.Description = &description
			}
			if flags.Changed("prefix") {
				e.Prefix = &prefix
			}
			if flags.Changed("language") {
				e.Language = &language
			}
			if flags.Changed("icon") {
				e.Icon = &icon
			}
			if flags.Changed("resolve-syntax") {
				e.ResolveSyntax = &resolveSyntax
			}

			node, err := o.Controller.Edit(ctx, id, e)
			logNode(ctx, o, node, log.Updated, "")
			return remoteOK(o, err)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "new label")
	cmd.Flags().StringVar(&value, "value", "", "new body, snippets only")
	cmd.Flags().StringVar(&description, "description", "", "description shown next to the label")
	cmd.Flags().StringVar(&prefix, "prefix", "", "completion trigger")
	cmd.Flags().StringVar(&language, "language", "", "language id")
	cmd.Flags().StringVar(&icon, "icon", "", "icon, folders only")
	cmd.Flags().BoolVar(&resolveSyntax, "resolve-syntax", false, "expand placeholders when inserting")
	return cmd
}

func NewRemoveCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a snippet or a folder with its content",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			node, err := lookup(o, id)
			if err != nil {
				return err
			}
			removed := *node

			err = o.Controller.Remove(ctx, id)
			if err != nil && !controller.IsRemoteWarning(err) {
				return err
			}
			logNode(ctx, o, &removed, log.Removed, "")
			return remoteOK(o, err)
		},
	}
}
