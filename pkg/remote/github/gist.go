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

// Package github implements the gist backend on the GitHub API.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.RegisterProvider("github", func(ctx context.Context, opts remote.Options) (remote.GistClient, error) {
		return NewClient(opts.Token), nil
	})
}

// GistsAPI is the part of the GitHub gists service we use.
type GistsAPI interface {
	Create(ctx context.Context, gist *github.Gist) (*github.Gist, *github.Response, error)
	Get(ctx context.Context, id string) (*github.Gist, *github.Response, error)
	Edit(ctx context.Context, id string, gist *github.Gist) (*github.Gist, *github.Response, error)
	Delete(ctx context.Context, id string) (*github.Response, error)
}

// 🐙 Client implements remote.GistClient for GitHub.
type Client struct {
	gists GistsAPI
}

var _ remote.GistClient = (*Client)(nil)

// NewClient creates a client, authenticated when token is set.
func NewClient(token string) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{gists: client.Gists}
}

// NewClientWithAPI wraps an existing gists service.
func NewClientWithAPI(api GistsAPI) *Client {
	return &Client{gists: api}
}

// Name returns the name of the backend
func (c *Client) Name() string {
	return "github"
}

// Create publishes a new gist
func (c *Client) Create(ctx context.Context, gist remote.Gist) (*remote.Gist, error) {
	zerolog.Ctx(ctx).Debug().Int("files", len(gist.Files)).Msg("creating gist")

	if len(gist.Files) == 0 {
		return nil, errors.New("gist has no files")
	}

	created, resp, err := c.gists.Create(ctx, toGitHub(gist, true))
	if err != nil {
		return nil, wrapError(ctx, "creating gist", resp, err)
	}
	return fromGitHub(created), nil
}

// Get fetches a gist with its file contents
func (c *Client) Get(ctx context.Context, id string) (*remote.Gist, error) {
	zerolog.Ctx(ctx).Debug().Str("id", id).Msg("getting gist")

	if id == "" {
		return nil, errors.New("empty gist id")
	}

	gist, resp, err := c.gists.Get(ctx, id)
	if err != nil {
		return nil, wrapError(ctx, "getting gist "+id, resp, err)
	}
	return fromGitHub(gist), nil
}

// Update replaces the description and the given files of a gist
func (c *Client) Update(ctx context.Context, gist remote.Gist) (*remote.Gist, error) {
	zerolog.Ctx(ctx).Debug().Str("id", gist.ID).Msg("updating gist")

	if gist.ID == "" {
		return nil, errors.New("empty gist id")
	}

	updated, resp, err := c.gists.Edit(ctx, gist.ID, toGitHub(gist, false))
	if err != nil {
		return nil, wrapError(ctx, "updating gist "+gist.ID, resp, err)
	}
	return fromGitHub(updated), nil
}

// Delete removes a gist
func (c *Client) Delete(ctx context.Context, id string) error {
	zerolog.Ctx(ctx).Debug().Str("id", id).Msg("deleting gist")

	if id == "" {
		return errors.New("empty gist id")
	}

	resp, err := c.gists.Delete(ctx, id)
	if err != nil {
		return wrapError(ctx, "deleting gist "+id, resp, err)
	}
	return nil
}

func wrapError(ctx context.Context, op string, resp *github.Response, err error) error {
	if ctx.Err() != nil {
		return errors.Errorf("context error: %w", ctx.Err())
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return errors.Errorf("%s: rate limit exceeded: %w", op, err)
	}

	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return errors.Errorf("%s: not found: %w", op, err)
	}

	return errors.Errorf("%s: %w", op, err)
}

func toGitHub(gist remote.Gist, withVisibility bool) *github.Gist {
	files := make(map[github.GistFilename]github.GistFile, len(gist.Files))
	for _, f := range gist.Files {
		key := f.Name
		if f.PreviousName != "" {
			key = f.PreviousName
		}
		files[github.GistFilename(key)] = github.GistFile{
			Filename: github.String(f.Name),
			Content:  github.String(f.Content),
		}
	}

	out := &github.Gist{
		Description: github.String(gist.Description),
		Files:       files,
	}
	if withVisibility {
		out.Public = github.Bool(gist.Public)
	}
	return out
}

func fromGitHub(gist *github.Gist) *remote.Gist {
	out := &remote.Gist{
		ID:          gist.GetID(),
		Description: gist.GetDescription(),
		Public:      gist.GetPublic(),
		URL:         gist.GetHTMLURL(),
	}
	for name, f := range gist.Files {
		fileName := f.GetFilename()
		if fileName == "" {
			fileName = string(name)
		}
		out.Files = append(out.Files, remote.File{
			Name:     fileName,
			Language: f.GetLanguage(),
			Content:  f.GetContent(),
		})
	}
	out.SortFiles()
	return out
}
