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

// Package commands holds the snipr subcommands.
package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/opts"
	"github.com/walteh/snipr/pkg/controller"
	"github.com/walteh/snipr/pkg/log"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

// SkipInit is a command annotation for commands that need no store.
const SkipInit = "snipr/skip-init"

// Register adds every subcommand to root.
func Register(root *cobra.Command, o *opts.RootOpts) {
	root.AddCommand(
		NewListCmd(o),
		NewAddCmd(o),
		NewMkdirCmd(o),
		NewEditCmd(o),
		NewRemoveCmd(o),
		NewUpCmd(o),
		NewDownCmd(o),
		NewMoveCmd(o),
		NewSortCmd(o),
		NewExportCmd(o),
		NewImportCmd(o),
		NewFixCmd(o),
		NewSuggestCmd(o),
		NewGistCmd(o),
	)
}

// parseID reads a node id. "root" names the root folder.
func parseID(arg string) (int, error) {
	if strings.EqualFold(arg, "root") {
		return snippet.RootID, nil
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id < snippet.RootID {
		return 0, errors.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// remoteOK turns a RemoteWarning into a console warning. Other errors are
// returned.
func remoteOK(o *opts.RootOpts, err error) error {
	if err == nil {
		return nil
	}
	if controller.IsRemoteWarning(err) {
		o.Logger.Warning(err.Error())
		return nil
	}
	return err
}

func logNode(ctx context.Context, o *opts.RootOpts, n *snippet.Node, action log.Action, detail string) {
	if n == nil {
		return
	}
	o.Logger.LogNodeOperation(ctx, log.NodeOperation{
		ID:     n.ID,
		Label:  n.Label,
		Folder: n.Folder,
		Action: action,
		Detail: detail,
	})
}

// lookup returns the node with id or a not-found error for the console.
func lookup(o *opts.RootOpts, id int) (*snippet.Node, error) {
	n := o.Controller.Service().FindNode(id)
	if n == nil {
		return nil, errors.Errorf("no snippet or folder with id %d", id)
	}
	return n, nil
}
