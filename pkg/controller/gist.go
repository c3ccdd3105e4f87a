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

package controller

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/language"
	"github.com/walteh/snipr/pkg/remote"
	"github.com/walteh/snipr/pkg/snippet"
	"github.com/walteh/snipr/pkg/tree"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNoGistBackend is returned by gist operations when no client is set.
var ErrNoGistBackend = errors.New("no gist backend configured")

// GistFileName names the gist file of a snippet: its label, with the
// language's first extension appended when the label has none.
func GistFileName(n *snippet.Node) string {
	name := n.Label
	if filepath.Ext(name) != "" || n.Language == "" {
		return name
	}
	for _, l := range language.Known() {
		if l.ID == n.Language && len(l.Extensions) > 0 {
			return name + "." + l.Extensions[0]
		}
	}
	return name
}

// gistFileUpdate renames the gist file when the snippet's file name changed.
func gistFileUpdate(previous string, n *snippet.Node) remote.File {
	f := remote.File{Name: GistFileName(n), Content: n.Value}
	if previous != f.Name {
		f.PreviousName = previous
	}
	return f
}

func gistFor(n *snippet.Node, public bool) remote.Gist {
	description := n.Description
	if description == "" {
		description = n.Label
	}
	return remote.Gist{
		Description: description,
		Public:      public,
		Files:       []remote.File{{Name: GistFileName(n), Content: n.Value}},
	}
}

// 🚀 PublishGist creates a gist from the snippet with id and records the gist
// id on it.
func (c *Controller) PublishGist(ctx context.Context, id int, public bool) (*remote.Gist, error) {
	if c.opts.Gists == nil {
		return nil, ErrNoGistBackend
	}

	node := c.svc.FindNode(id)
	if node == nil || !node.IsLeaf() {
		return nil, nil
	}

	gist, err := c.opts.Gists.Create(ctx, gistFor(node, public))
	if err != nil {
		return nil, errors.Errorf("publishing %s: %w", node.Label, err)
	}

	node.ExternalRef = gist.ID
	if err := c.Sync(ctx); err != nil {
		return gist, errors.Errorf("recording gist for %s: %w", node.Label, err)
	}
	return gist, nil
}

// PublishFolder publishes every unpublished snippet under the folder with id,
// at most PublishConcurrency at a time. Snippets that published are recorded
// even when others fail; the failures come back as a RemoteWarning.
func (c *Controller) PublishFolder(ctx context.Context, id int, public bool) (int, error) {
	if c.opts.Gists == nil {
		return 0, ErrNoGistBackend
	}

	folder := c.svc.FindNode(id)
	if folder == nil {
		return 0, nil
	}

	type job struct {
		id   int
		gist remote.Gist
	}
	var jobs []job
	for _, n := range tree.FlattenLeaves(folder.Children) {
		if n.ExternalRef == "" {
			jobs = append(jobs, job{id: n.ID, gist: gistFor(n, public)})
		}
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	refs := make([]string, len(jobs))
	errs := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(c.opts.PublishConcurrency)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			created, err := c.opts.Gists.Create(ctx, j.gist)
			if err != nil {
				errs[i] = errors.Errorf("publishing snippet %d: %w", j.id, err)
				return nil
			}
			refs[i] = created.ID
			return nil
		})
	}
	_ = g.Wait()

	published := 0
	var failed []error
	for i, j := range jobs {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		if n := c.svc.FindNode(j.id); n != nil {
			n.ExternalRef = refs[i]
			published++
		}
	}

	zerolog.Ctx(ctx).Debug().Int("published", published).Int("failed", len(failed)).Msg("published folder")

	if published > 0 {
		if err := c.Sync(ctx); err != nil {
			return published, errors.Errorf("recording gists: %w", err)
		}
	}
	if len(failed) > 0 {
		return published, &RemoteWarning{Op: "publishing gists", Err: errors.Join(failed...)}
	}
	return published, nil
}

// 📥 PullGist adds every file of a gist as a snippet under parentID. The file
// extension picks the language, falling back to the language the backend
// reports.
func (c *Controller) PullGist(ctx context.Context, gistID string, parentID int) ([]*snippet.Node, error) {
	if c.opts.Gists == nil {
		return nil, ErrNoGistBackend
	}

	gist, err := c.opts.Gists.Get(ctx, gistID)
	if err != nil {
		return nil, errors.Errorf("pulling gist %s: %w", gistID, err)
	}

	parentID = c.folderFor(parentID)
	var ids []int
	for _, f := range gist.Files {
		label, lang := language.SplitName(f.Name)
		if lang == "" && language.IsKnown(strings.ToLower(f.Language)) {
			lang = strings.ToLower(f.Language)
		}

		node := snippet.NewLeaf(c.svc.IncrementLastID(), parentID, label, f.Content)
		node.Language = lang
		node.Description = gist.Description
		node.ExternalRef = gist.ID
		if !c.svc.AddNode(node) {
			return nil, nil
		}
		ids = append(ids, node.ID)
	}

	if err := c.Sync(ctx); err != nil {
		return nil, errors.Errorf("adding gist %s: %w", gistID, err)
	}

	out := make([]*snippet.Node, 0, len(ids))
	for _, id := range ids {
		if n := c.svc.FindNode(id); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}
