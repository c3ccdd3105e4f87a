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
	"gitlab.com/tozd/go/errors"
)

func NewUpCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "up <id>",
		Short: "Move a node before its previous sibling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return step(cmd, o, args[0], -1)
		},
	}
}

func NewDownCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "down <id>",
		Short: "Move a node after its next sibling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return step(cmd, o, args[0], 1)
		},
	}
}

func step(cmd *cobra.Command, o *opts.RootOpts, arg string, offset int) error {
	ctx := cmd.Context()

	id, err := parseID(arg)
	if err != nil {
		return err
	}
	node, err := lookup(o, id)
	if err != nil {
		return err
	}

	if offset < 0 {
		err = o.Controller.MoveUp(ctx, id)
	} else {
		err = o.Controller.MoveDown(ctx, id)
	}
	if err != nil {
		return err
	}
	logNode(ctx, o, node, log.Moved, "")
	return nil
}

func NewMoveCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <folder-id>",
		Short: "Move a node into another folder",
		Long: `Mv moves a snippet or folder into another folder, or into the root when the
folder id is "root". A folder cannot be moved into its own subtree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			node, err := lookup(o, id)
			if err != nil {
				return err
			}

			moved, err := o.Controller.MoveTo(ctx, id, target)
			if err != nil {
				return err
			}
			if !moved {
				return errors.Errorf("cannot move %q into %s", node.Label, args[1])
			}
			logNode(ctx, o, o.Controller.Service().FindNode(id), log.Moved, "")
			return nil
		},
	}
}

func NewSortCmd(o *opts.RootOpts) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "sort [folder-id]",
		Short: "Sort a folder by label",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if all {
				if err := o.Controller.SortAll(ctx); err != nil {
					return err
				}
				o.Logger.Success("sorted every folder")
				return nil
			}

			target := "root"
			if len(args) == 1 {
				target = args[0]
			}
			id, err := parseID(target)
			if err != nil {
				return err
			}
			node, err := lookup(o, id)
			if err != nil {
				return err
			}
			if err := o.Controller.SortFolder(ctx, id); err != nil {
				return err
			}
			o.Logger.Successf("sorted %s", node.Label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "sort every folder recursively")
	return cmd
}
