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
)

func NewExportCmd(o *opts.RootOpts) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write a folder and its content to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			nodeID, err := parseID(id)
			if err != nil {
				return err
			}
			node, err := lookup(o, nodeID)
			if err != nil {
				return err
			}
			if err := o.Controller.Export(ctx, args[0], nodeID); err != nil {
				return err
			}
			o.Logger.Successf("exported %s to %s", node.Label, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "root", "node to export")
	return cmd
}

func NewImportCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the tree with an exported one",
		Long: `Import replaces every snippet of the selected scope with the content of an
exported file. The current tree is first saved next to the file, with
"-pre-import-backup" added to its name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := o.Controller.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			o.Logger.Infof("previous snippets saved to %s", backup)
			o.Logger.Successf("imported %s", args[0])
			return nil
		},
	}
}

func NewFixCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Repair duplicate ids and snippets that hold children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := o.Controller.Fix(cmd.Context())
			if err != nil {
				return err
			}
			if !report.Changed() {
				o.Logger.Success("nothing to fix")
				return nil
			}
			o.Logger.Success(report.String())
			return nil
		},
	}
}
