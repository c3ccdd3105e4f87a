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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/snippet"
	"github.com/walteh/snipr/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// 🌳 Service owns one in-memory snippet tree loaded from a DataStore.
//
// Mutations only touch the in-memory copy; SaveSnippets writes it back.
// Operations on ids that no longer exist have no effect.
type Service struct {
	store store.DataStore
	open  store.Factory
	root  *snippet.Node
}

// Option configures a Service.
type Option func(*Service)

// WithStoreFactory sets how standalone tree files are opened for export and
// import backups. Defaults to JSON files.
func WithStoreFactory(f store.Factory) Option {
	return func(s *Service) {
		s.open = f
	}
}

// 🏭 NewService loads the tree held by ds.
func NewService(ctx context.Context, ds store.DataStore, opts ...Option) (*Service, error) {
	if ds == nil {
		return nil, errors.New("data store is required")
	}

	s := &Service{
		store: ds,
		open:  store.OpenFile,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the in-memory root.
func (s *Service) Root() *snippet.Node {
	return s.root
}

// Load replaces the in-memory tree with the stored one, dropping unsaved
// changes.
func (s *Service) Load(ctx context.Context) error {
	root, err := s.store.Load(ctx)
	if err != nil {
		return errors.Errorf("loading snippets: %w", err)
	}
	s.root = root
	return nil
}

// Refresh is Load under the name callers use after a save.
func (s *Service) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SaveSnippets writes the in-memory tree back verbatim.
func (s *Service) SaveSnippets(ctx context.Context) error {
	if err := s.store.Save(ctx, s.root); err != nil {
		return errors.Errorf("saving snippets: %w", err)
	}
	return nil
}

// HasNoChildren reports whether the stored tree is empty.
func (s *Service) HasNoChildren(ctx context.Context) (bool, error) {
	return s.store.HasNoChildren(ctx)
}

// 🔍 FindNode returns the first node with id in pre-order, or nil.
func (s *Service) FindNode(id int) *snippet.Node {
	return findNode(s.root, id)
}

func findNode(n *snippet.Node, id int) *snippet.Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := findNode(child, id); found != nil {
			return found
		}
	}
	return nil
}

// GetParent returns the folder addressed by parentID, or the root when no id
// is given.
func (s *Service) GetParent(parentID ...int) *snippet.Node {
	if len(parentID) == 0 {
		return s.root
	}
	return s.FindNode(parentID[0])
}

// folderByID resolves the folder node.ParentID names, where a new node
// should go.
func (s *Service) folderByID(node *snippet.Node) *snippet.Node {
	if node.ParentID == s.root.ID {
		return s.root
	}
	return s.FindNode(node.ParentID)
}

// ParentOf returns the node holding node. The stored parent id is tried
// first; when that parent does not hold it (imported subtrees keep the
// exported folder's id), the tree is searched in pre-order.
func (s *Service) ParentOf(node *snippet.Node) *snippet.Node {
	byID := s.folderByID(node)
	if byID != nil && holds(byID, node.ID) {
		return byID
	}
	if holder := findHolder(s.root, node.ID); holder != nil {
		return holder
	}
	return byID
}

func holds(parent *snippet.Node, id int) bool {
	for _, child := range parent.Children {
		if child.ID == id {
			return true
		}
	}
	return false
}

func findHolder(n *snippet.Node, id int) *snippet.Node {
	if holds(n, id) {
		return n
	}
	for _, child := range n.Children {
		if found := findHolder(child, id); found != nil {
			return found
		}
	}
	return nil
}

// IncrementLastID returns the next id without reserving it.
func (s *Service) IncrementLastID() int {
	return s.root.LastID + 1
}

// ➕ AddNode appends node to its parent folder and records its id as the last
// issued one. Nothing happens when the parent is unknown.
func (s *Service) AddNode(node *snippet.Node) bool {
	if !s.AddExistingNode(node) {
		return false
	}
	s.root.LastID = node.ID
	return true
}

// AddExistingNode appends node to its parent folder without touching the id
// counter. Moves use it so ids stay stable.
func (s *Service) AddExistingNode(node *snippet.Node) bool {
	parent := s.folderByID(node)
	if parent == nil {
		return false
	}
	if node.Children == nil {
		node.Children = []*snippet.Node{}
	}
	parent.Children = append(parent.Children, node)
	return true
}

// ✏️ UpdateNode copies label, and value for leaves, onto the stored node with
// the same id under the same parent.
func (s *Service) UpdateNode(node *snippet.Node) bool {
	parent := s.ParentOf(node)
	if parent == nil {
		return false
	}
	for _, child := range parent.Children {
		if child.ID != node.ID {
			continue
		}
		child.Label = node.Label
		if !child.Folder && !node.Folder {
			child.Value = node.Value
		}
		return true
	}
	return false
}

// OverrideID gives node a fresh id and commits it to the counter.
func (s *Service) OverrideID(node *snippet.Node) {
	id := s.IncrementLastID()
	node.ID = id
	for _, child := range node.Children {
		child.ParentID = id
	}
	s.UpdateNode(node)
	s.root.LastID = id
}

// ➖ RemoveNode splices node out of its parent.
func (s *Service) RemoveNode(node *snippet.Node) bool {
	parent := s.ParentOf(node)
	if parent == nil {
		return false
	}
	for i, child := range parent.Children {
		if child.ID == node.ID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
	}
	return false
}

// ↕️ MoveNode shifts node among its siblings by offset. Offsets that would
// leave the sibling list are ignored.
func (s *Service) MoveNode(node *snippet.Node, offset int) bool {
	parent := s.ParentOf(node)
	if parent == nil {
		return false
	}

	siblings := parent.Children
	index := -1
	for i, child := range siblings {
		if child.ID == node.ID {
			index = i
			break
		}
	}

	target := index + offset
	if index < 0 || offset == 0 || target < 0 || target >= len(siblings) {
		return false
	}

	moved := siblings[index]
	siblings = append(siblings[:index], siblings[index+1:]...)
	siblings = append(siblings[:target], append([]*snippet.Node{moved}, siblings[target:]...)...)
	parent.Children = siblings
	return true
}

// GetAllSnippets reloads the tree and returns every leaf.
func (s *Service) GetAllSnippets(ctx context.Context) ([]*snippet.Node, error) {
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return FlattenLeaves(s.root.Children), nil
}

// GetAllSnippetsAndFolders reloads the tree and returns every node below the
// root.
func (s *Service) GetAllSnippetsAndFolders(ctx context.Context) ([]*snippet.Node, error) {
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return FlattenAll(s.root.Children), nil
}

// FixLastID raises the counter to the largest id in the tree. It never lowers
// it.
func (s *Service) FixLastID(ctx context.Context) bool {
	highest := s.root.ID
	for _, n := range FlattenAll(s.root.Children) {
		if n.ID > highest {
			highest = n.ID
		}
	}
	if highest <= s.root.LastID {
		return false
	}

	zerolog.Ctx(ctx).Debug().Int("from", s.root.LastID).Int("to", highest).Msg("raising last id")
	s.root.LastID = highest
	return true
}
