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

// Package remote defines the gist backend that snippets can be published to
// and pulled from.
package remote

import (
	"context"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 GistClient is the remote backend. Implementations talk to a hosted gist
// service.
type GistClient interface {
	// Name returns the backend name (e.g. "github")
	Name() string
	// Create publishes a new gist and returns it with its id set
	Create(ctx context.Context, gist Gist) (*Gist, error)
	// Get fetches a gist with file contents
	Get(ctx context.Context, id string) (*Gist, error)
	// Update replaces the files and description of an existing gist
	Update(ctx context.Context, gist Gist) (*Gist, error)
	// Delete removes a gist
	Delete(ctx context.Context, id string) error
}

// Gist is a remote collection of files.
type Gist struct {
	ID          string
	Description string
	Public      bool
	URL         string
	Files       []File
}

// File is one file of a gist.
type File struct {
	Name     string
	Language string
	Content  string

	// PreviousName renames an existing gist file to Name on update.
	PreviousName string
}

// SortFiles orders files by name so pulls are deterministic.
func (g *Gist) SortFiles() {
	sort.Slice(g.Files, func(i, j int) bool { return g.Files[i].Name < g.Files[j].Name })
}

// Options configure a client.
type Options struct {
	// Token authenticates requests; empty means anonymous
	Token string
}

// 🏭 Factory creates a client.
type Factory func(ctx context.Context, opts Options) (GistClient, error)

var registry = map[string]Factory{}

// RegisterProvider makes a backend available by name.
func RegisterProvider(name string, factory Factory) {
	registry[name] = factory
}

// NewClient creates a client for the named backend.
func NewClient(ctx context.Context, name string, opts Options) (GistClient, error) {
	factory, ok := registry[name]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("gist provider %s not found, options: %s", name, strings.Join(options, ", "))
	}
	return factory(ctx, opts)
}
