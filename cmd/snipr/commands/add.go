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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/opts"
	"github.com/walteh/snipr/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func NewAddCmd(o *opts.RootOpts) *cobra.Command {
	var (
		parent string
		value  string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a snippet",
		Long: `Add creates a snippet under a folder. A known file extension on the name,
as in "retry.go", sets the snippet's language. The body comes from --value,
from the file given by --from, or from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parentID, err := parseID(parent)
			if err != nil {
				return err
			}

			body := value
			switch {
			case from != "":
				data, err := os.ReadFile(from)
				if err != nil {
					return errors.Errorf("reading %s: %w", from, err)
				}
				body = string(data)
			case !cmd.Flags().Changed("value"):
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				body = string(data)
			}

			node, err := o.Controller.AddSnippet(ctx, args[0], body, parentID)
			if err != nil {
				return err
			}
			if node == nil {
				return errors.Errorf("no folder with id %d", parentID)
			}
			logNode(ctx, o, node, log.Added, node.Language)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "root", "folder id to add to")
	cmd.Flags().StringVar(&value, "value", "", "snippet body")
	cmd.Flags().StringVar(&from, "from", "", "read the body from a file")
	return cmd
}

func NewMkdirCmd(o *opts.RootOpts) *cobra.Command {
	var (
		parent string
		icon   string
	)

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Add a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parentID, err := parseID(parent)
			if err != nil {
				return err
			}

			node, err := o.Controller.AddFolder(ctx, args[0], parentID, icon)
			if err != nil {
				return err
			}
			if node == nil {
				return errors.Errorf("no folder with id %d", parentID)
			}
			logNode(ctx, o, node, log.Added, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "root", "folder id to add to")
	cmd.Flags().StringVar(&icon, "icon", "", "folder icon")
	return cmd
}
