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
)

func NewGistCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gist",
		Short: "Publish snippets to gists and pull them back",
	}
	cmd.AddCommand(newGistPublishCmd(o), newGistPullCmd(o))
	return cmd
}

func newGistPublishCmd(o *opts.RootOpts) *cobra.Command {
	var public bool

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a snippet, or every unpublished snippet of a folder",
		Args:  cobra.ExactArgs(1),
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
			if !cmd.Flags().Changed("public") {
				public = o.Config.Gist.Public
			}

			if node.Folder {
				count, err := o.Controller.PublishFolder(ctx, id, public)
				if err := remoteOK(o, err); err != nil {
					return err
				}
				o.Logger.Successf("published %d snippets from %s", count, node.Label)
				return nil
			}

			gist, err := o.Controller.PublishGist(ctx, id, public)
			if err != nil {
				return err
			}
			if gist != nil {
				logNode(ctx, o, o.Controller.Service().FindNode(id), log.Published, gist.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "create public gists (default from config)")
	return cmd
}

func newGistPullCmd(o *opts.RootOpts) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "pull <gist-id>",
		Short: "Add the files of a gist as snippets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parentID, err := parseID(parent)
			if err != nil {
				return err
			}
			if _, err := lookup(o, parentID); err != nil {
				return err
			}

			nodes, err := o.Controller.PullGist(ctx, args[0], parentID)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				logNode(ctx, o, n, log.Added, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "root", "folder id to add to")
	return cmd
}
