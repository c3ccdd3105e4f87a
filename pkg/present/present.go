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

// Package present turns a snippet tree into rows a view can draw.
package present

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

// Icons used when a node has none of its own.
const (
	FolderIcon  = "folder"
	SnippetIcon = "symbol-snippet"
)

// 🖼️ Row is what a tree view shows for one node.
type Row struct {
	ID          int
	Depth       int
	Label       string
	Icon        string
	Description string
	Tooltip     string
	Folder      bool
	Published   bool
	CanMoveUp   bool
	CanMoveDown bool
}

// RowFor describes node, which sits at index among siblings entries.
func RowFor(node *snippet.Node, index, siblings int) Row {
	r := Row{
		ID:          node.ID,
		Label:       node.Label,
		Icon:        node.Icon,
		Description: node.Description,
		Folder:      node.Folder,
		Published:   node.ExternalRef != "",
		CanMoveUp:   index > 0,
		CanMoveDown: index < siblings-1,
	}
	if r.Icon == "" {
		r.Icon = SnippetIcon
		if node.Folder {
			r.Icon = FolderIcon
		}
	}
	if !node.Folder {
		r.Tooltip = node.Value
		if r.Description == "" && node.Language != "" {
			r.Description = node.Language
		}
	}
	return r
}

// Rows lists every node below root in display order.
func Rows(root *snippet.Node) []Row {
	if root == nil {
		return nil
	}
	out := []Row{}
	var walk func(nodes []*snippet.Node, depth int)
	walk = func(nodes []*snippet.Node, depth int) {
		for i, n := range nodes {
			r := RowFor(n, i, len(nodes))
			r.Depth = depth
			out = append(out, r)
			walk(n.Children, depth+1)
		}
	}
	walk(root.Children, 0)
	return out
}

func rowText(r Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d", r.Label, r.ID)
	if r.Description != "" {
		b.WriteString(" (" + r.Description + ")")
	}
	if r.Published {
		b.WriteString(" ↑")
	}
	return b.String()
}

// 🌳 Render draws the tree under root as indented text.
func Render(root *snippet.Node) (string, error) {
	if root == nil {
		return "", nil
	}

	list := pterm.LeveledList{}
	for _, r := range Rows(root) {
		list = append(list, pterm.LeveledListItem{Level: r.Depth, Text: rowText(r)})
	}

	tree := putils.TreeFromLeveledList(list)
	tree.Text = root.Label

	out, err := pterm.DefaultTree.WithRoot(tree).Srender()
	if err != nil {
		return "", errors.Errorf("rendering snippet tree: %w", err)
	}
	return out, nil
}
