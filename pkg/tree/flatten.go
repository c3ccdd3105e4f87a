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

package tree

import (
	"slices"

	"github.com/walteh/snipr/pkg/snippet"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FlattenLeaves returns the leaves under nodes in pre-order.
func FlattenLeaves(nodes []*snippet.Node) []*snippet.Node {
	out := []*snippet.Node{}
	for _, n := range nodes {
		if n.Folder {
			out = append(out, FlattenLeaves(n.Children)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

// FlattenAll returns every node under nodes in pre-order, folders before their
// descendants. Children of corrupted leaves are included.
func FlattenAll(nodes []*snippet.Node) []*snippet.Node {
	out := []*snippet.Node{}
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, FlattenAll(n.Children)...)
	}
	return out
}

// 🔤 SortChildren orders folder's direct children by label.
func (s *Service) SortChildren(folder *snippet.Node) {
	if folder == nil {
		return
	}
	sortByLabel(folder.Children)
}

// SortAllRecursive orders children at every level, top-down.
func (s *Service) SortAllRecursive() {
	sortRecursive(s.root)
}

func sortRecursive(n *snippet.Node) {
	sortByLabel(n.Children)
	for _, child := range n.Children {
		sortRecursive(child)
	}
}

func sortByLabel(nodes []*snippet.Node) {
	c := collate.New(language.Und)
	slices.SortStableFunc(nodes, func(a, b *snippet.Node) int {
		return c.CompareString(a.Label, b.Label)
	})
}
