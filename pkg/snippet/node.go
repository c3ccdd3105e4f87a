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

// Package snippet defines the node model shared by every snippet tree: folders
// and leaf snippets share one shape, discriminated by Folder.
package snippet

import (
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// RootID is the fixed id of the root folder of every tree.
	RootID = 1
	// NoParent is the parent id stored on the root node.
	NoParent = -1
	// RootLabel is the label of a freshly initialized root.
	RootLabel = "snippets"

	// UnorganizedLabel is the folder that receives content extracted during repair.
	UnorganizedLabel = "UNORGANIZED SNIPPETS"
	// WarningIcon marks folders created by repair.
	WarningIcon = "warning"
)

// 🌳 Node is a folder or a leaf snippet.
//
// Children is present on every node. Leaves keep it empty, and several
// traversals rely on that to terminate.
type Node struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parentId"`
	Label    string `json:"label"`

	// LastID is only meaningful on the root.
	LastID int `json:"lastId,omitempty"`

	Folder bool   `json:"folder,omitempty"`
	Icon   string `json:"icon,omitempty"`

	Value         string `json:"value,omitempty"`
	Language      string `json:"language,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
	Description   string `json:"description,omitempty"`
	ResolveSyntax bool   `json:"resolveSyntax,omitempty"`
	ExternalRef   string `json:"externalRef,omitempty"`

	Children []*Node `json:"children"`
}

// 🏭 NewRoot returns an empty root with a fresh counter.
func NewRoot() *Node {
	return &Node{
		ID:       RootID,
		ParentID: NoParent,
		Label:    RootLabel,
		LastID:   RootID,
		Folder:   true,
		Children: []*Node{},
	}
}

// NewFolder builds a folder node. The id is assigned by the caller.
func NewFolder(id, parentID int, label, icon string) *Node {
	return &Node{
		ID:       id,
		ParentID: parentID,
		Label:    label,
		Folder:   true,
		Icon:     icon,
		Children: []*Node{},
	}
}

// NewLeaf builds a leaf snippet node. The id is assigned by the caller.
func NewLeaf(id, parentID int, label, value string) *Node {
	return &Node{
		ID:       id,
		ParentID: parentID,
		Label:    label,
		Value:    value,
		Children: []*Node{},
	}
}

// IsRoot reports whether n is the well-known root.
func (n *Node) IsRoot() bool {
	return n != nil && n.ID == RootID && n.ParentID == NoParent
}

// IsLeaf reports whether n is a snippet rather than a folder.
func (n *Node) IsLeaf() bool {
	return n != nil && !n.Folder
}

// IsCorrupted reports a leaf that nonetheless carries children.
func (n *Node) IsCorrupted() bool {
	return n.IsLeaf() && len(n.Children) > 0
}

// 🔍 Validate checks the fields every node must carry.
func (n *Node) Validate() error {
	if n == nil {
		return errors.New("node is nil")
	}
	if strings.TrimSpace(n.Label) == "" {
		return errors.Errorf("node %d: label is required", n.ID)
	}
	return nil
}

// Clone returns a deep copy of n and its descendants.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Children = make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		cp.Children = append(cp.Children, child.Clone())
	}
	return &cp
}

// nodeJSON breaks the MarshalJSON recursion.
type nodeJSON Node

// MarshalJSON always writes children, even for leaves.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON(*n)
	if out.Children == nil {
		out.Children = []*Node{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON treats a missing or null children list as empty.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Children == nil {
		in.Children = []*Node{}
	}
	*n = Node(in)
	return nil
}

// Decode parses a serialized tree.
func Decode(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Errorf("parsing snippet tree: %w", err)
	}
	return &root, nil
}

// Encode serializes a tree in the indented on-disk format.
func Encode(root *Node) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding snippet tree: %w", err)
	}
	return data, nil
}
