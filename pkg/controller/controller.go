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

// Package controller sits between a tree view and the tree service. Every
// mutation it performs ends with a sync: the tree is saved, reloaded from its
// store, and change listeners are notified.
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/language"
	"github.com/walteh/snipr/pkg/remote"
	"github.com/walteh/snipr/pkg/snippet"
	"github.com/walteh/snipr/pkg/store"
	"github.com/walteh/snipr/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// Options configure a Controller.
type Options struct {
	// Gists is the optional remote backend
	Gists remote.GistClient
	// DeleteRemoteOnRemove deletes the gist behind a removed snippet
	DeleteRemoteOnRemove bool
	// PublishConcurrency bounds parallel gist creation, default 4
	PublishConcurrency int
}

// 🎮 Controller drives one tree service.
type Controller struct {
	svc       *tree.Service
	opts      Options
	listeners []func(root *snippet.Node)
}

// 🏭 New creates a controller for svc.
func New(svc *tree.Service, opts Options) *Controller {
	if opts.PublishConcurrency <= 0 {
		opts.PublishConcurrency = 4
	}
	return &Controller{svc: svc, opts: opts}
}

// Service exposes the wrapped tree service for read-only use.
func (c *Controller) Service() *tree.Service {
	return c.svc
}

// Root returns the current in-memory root.
func (c *Controller) Root() *snippet.Node {
	return c.svc.Root()
}

// OnDidChange registers fn to run after every refresh.
func (c *Controller) OnDidChange(fn func(root *snippet.Node)) {
	c.listeners = append(c.listeners, fn)
}

// Refresh reloads the tree from its store and notifies listeners.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.svc.Refresh(ctx); err != nil {
		return err
	}
	for _, fn := range c.listeners {
		fn(c.svc.Root())
	}
	return nil
}

// 🔄 Sync saves the tree, then refreshes it.
func (c *Controller) Sync(ctx context.Context) error {
	if err := c.svc.SaveSnippets(ctx); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Watch refreshes whenever the file at path changes, until ctx is done. It
// blocks, and nothing else should mutate the tree while it runs.
func (c *Controller) Watch(ctx context.Context, path string) error {
	return store.Watch(ctx, path, func() {
		if err := c.Refresh(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("refreshing after external change")
		}
	})
}

// ➕ AddSnippet adds a leaf under parentID. A known extension at the end of
// name becomes the snippet's language and is dropped from the label. Returns
// nil when the parent no longer exists.
func (c *Controller) AddSnippet(ctx context.Context, name, value string, parentID int) (*snippet.Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("snippet name is required")
	}

	label, lang := language.SplitName(name)
	node := snippet.NewLeaf(c.svc.IncrementLastID(), c.folderFor(parentID), label, value)
	node.Language = lang

	return c.add(ctx, node)
}

// AddFolder adds a folder under parentID.
func (c *Controller) AddFolder(ctx context.Context, name string, parentID int, icon string) (*snippet.Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("folder name is required")
	}

	node := snippet.NewFolder(c.svc.IncrementLastID(), c.folderFor(parentID), name, icon)
	return c.add(ctx, node)
}

// folderFor returns parentID, or the folder holding it when it names a
// snippet. Snippets never receive children.
func (c *Controller) folderFor(parentID int) int {
	p := c.svc.FindNode(parentID)
	if p == nil || p.Folder {
		return parentID
	}
	if holder := c.svc.ParentOf(p); holder != nil {
		return holder.ID
	}
	return snippet.NoParent
}

func (c *Controller) add(ctx context.Context, node *snippet.Node) (*snippet.Node, error) {
	if !c.svc.AddNode(node) {
		zerolog.Ctx(ctx).Debug().Int("parent", node.ParentID).Str("label", node.Label).Msg("parent not found, nothing added")
		return nil, nil
	}
	if err := c.Sync(ctx); err != nil {
		return nil, errors.Errorf("adding %s: %w", node.Label, err)
	}
	return c.svc.FindNode(node.ID), nil
}

// Edit lists the fields to change on a node. Nil fields are kept.
type Edit struct {
	Label         *string
	Value         *string
	Description   *string
	Prefix        *string
	Language      *string
	Icon          *string
	ResolveSyntax *bool
}

// ✏️ Edit applies e to the node with id. When the node is a published
// snippet, the gist is updated too; a failure there is returned as a
// RemoteWarning after the local change is saved.
func (c *Controller) Edit(ctx context.Context, id int, e Edit) (*snippet.Node, error) {
	node := c.svc.FindNode(id)
	if node == nil || node.IsRoot() {
		return nil, nil
	}

	if e.Label != nil && strings.TrimSpace(*e.Label) == "" {
		return nil, errors.New("label cannot be empty")
	}

	previousFile := GistFileName(node)

	update := &snippet.Node{
		ID:       node.ID,
		ParentID: node.ParentID,
		Label:    node.Label,
		Value:    node.Value,
		Folder:   node.Folder,
	}
	if e.Label != nil {
		update.Label = *e.Label
	}
	if e.Value != nil {
		update.Value = *e.Value
	}
	if !c.svc.UpdateNode(update) {
		return nil, nil
	}

	if e.Description != nil {
		node.Description = *e.Description
	}
	if e.Prefix != nil {
		node.Prefix = *e.Prefix
	}
	if e.Language != nil {
		node.Language = *e.Language
	}
	if e.Icon != nil && node.Folder {
		node.Icon = *e.Icon
	}
	if e.ResolveSyntax != nil {
		node.ResolveSyntax = *e.ResolveSyntax
	}

	if err := c.Sync(ctx); err != nil {
		return nil, errors.Errorf("editing %s: %w", update.Label, err)
	}

	edited := c.svc.FindNode(id)
	if edited != nil && edited.IsLeaf() && edited.ExternalRef != "" && c.opts.Gists != nil {
		if _, err := c.opts.Gists.Update(ctx, remote.Gist{
			ID:          edited.ExternalRef,
			Description: edited.Description,
			Files:       []remote.File{gistFileUpdate(previousFile, edited)},
		}); err != nil {
			return edited, &RemoteWarning{Op: "updating gist " + edited.ExternalRef, Err: err}
		}
	}
	return edited, nil
}

// ➖ Remove deletes the node with id and its descendants. Published snippets
// lose their gist when DeleteRemoteOnRemove is set; failures there come back
// as a RemoteWarning.
func (c *Controller) Remove(ctx context.Context, id int) error {
	node := c.svc.FindNode(id)
	if node == nil || node.IsRoot() {
		return nil
	}

	var refs []string
	if c.opts.DeleteRemoteOnRemove && c.opts.Gists != nil {
		for _, n := range append([]*snippet.Node{node}, tree.FlattenLeaves(node.Children)...) {
			if n.IsLeaf() && n.ExternalRef != "" {
				refs = append(refs, n.ExternalRef)
			}
		}
	}

	c.svc.RemoveNode(node)
	if err := c.Sync(ctx); err != nil {
		return errors.Errorf("removing %s: %w", node.Label, err)
	}

	var errs []error
	seen := map[string]bool{}
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if err := c.opts.Gists.Delete(ctx, ref); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &RemoteWarning{Op: "deleting gists", Err: errors.Join(errs...)}
	}
	return nil
}

// MoveUp swaps the node with its previous sibling.
func (c *Controller) MoveUp(ctx context.Context, id int) error {
	return c.move(ctx, id, -1)
}

// MoveDown swaps the node with its next sibling.
func (c *Controller) MoveDown(ctx context.Context, id int) error {
	return c.move(ctx, id, 1)
}

func (c *Controller) move(ctx context.Context, id, offset int) error {
	node := c.svc.FindNode(id)
	if node == nil {
		return nil
	}
	c.svc.MoveNode(node, offset)
	if err := c.Sync(ctx); err != nil {
		return errors.Errorf("moving %s: %w", node.Label, err)
	}
	return nil
}

// SortFolder orders the direct children of the folder with id.
func (c *Controller) SortFolder(ctx context.Context, id int) error {
	node := c.svc.FindNode(id)
	if node == nil {
		return nil
	}
	c.svc.SortChildren(node)
	if err := c.Sync(ctx); err != nil {
		return errors.Errorf("sorting %s: %w", node.Label, err)
	}
	return nil
}

// SortAll orders every folder of the tree.
func (c *Controller) SortAll(ctx context.Context) error {
	c.svc.SortAllRecursive()
	if err := c.Sync(ctx); err != nil {
		return errors.Errorf("sorting snippets: %w", err)
	}
	return nil
}

// 📤 Export writes the subtree at id to path.
func (c *Controller) Export(ctx context.Context, path string, id int) error {
	if err := c.svc.ExportSubtree(ctx, path, id); err != nil {
		return err
	}
	return c.Sync(ctx)
}

// 📥 Import replaces the tree with the one at path and returns the backup
// location of the previous tree.
func (c *Controller) Import(ctx context.Context, path string) (string, error) {
	backup, err := c.svc.ImportTree(ctx, path)
	if err != nil {
		return backup, err
	}
	return backup, c.Sync(ctx)
}

// Report counts what a repair changed.
type Report struct {
	DuplicatesFixed int
	CorruptedFixed  int
}

func (r Report) String() string {
	return fmt.Sprintf("%d duplicate ids fixed, %d corrupted snippets fixed", r.DuplicatesFixed, r.CorruptedFixed)
}

// Changed reports whether the repair touched anything.
func (r Report) Changed() bool {
	return r.DuplicatesFixed > 0 || r.CorruptedFixed > 0
}

// 🩹 Fix repairs duplicate ids and leaves that carry children.
func (c *Controller) Fix(ctx context.Context) (Report, error) {
	dups, corrupted, err := c.svc.FixCorruption(ctx)
	report := Report{DuplicatesFixed: dups, CorruptedFixed: corrupted}
	if err != nil {
		return report, errors.Errorf("fixing snippets: %w", err)
	}
	return report, c.Sync(ctx)
}

// ⚠️ RemoteWarning reports a gist failure after the local change succeeded.
type RemoteWarning struct {
	Op  string
	Err error
}

func (w *RemoteWarning) Error() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

func (w *RemoteWarning) Unwrap() error {
	return w.Err
}

// IsRemoteWarning reports whether err only carries a remote failure.
func IsRemoteWarning(err error) bool {
	var w *RemoteWarning
	return errors.As(err, &w)
}
