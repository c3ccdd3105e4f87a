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

// Package suggest picks the snippets that apply to a document.
package suggest

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/snipr/pkg/language"
	"github.com/walteh/snipr/pkg/snippet"
	"github.com/walteh/snipr/pkg/tree"
)

// Suggestion is one completion item.
type Suggestion struct {
	ID            int
	Trigger       string
	Body          string
	Description   string
	Language      string
	ResolveSyntax bool
}

// Languages resolves the languages of docPath. Entries of globs map a
// doublestar pattern to a language id and are checked in pattern order; the
// extension table is consulted last.
func Languages(docPath string, globs map[string]string) []string {
	slashed := filepath.ToSlash(docPath)
	base := filepath.Base(docPath)

	patterns := make([]string, 0, len(globs))
	for p := range globs {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	seen := map[string]bool{}
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, p := range patterns {
		if match(p, slashed) || match(p, base) {
			add(globs[p])
		}
	}
	if id, ok := language.ForPath(docPath); ok {
		add(id)
	}
	return out
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// 💡 Suggest returns the leaves under root that apply to docPath, in tree
// order. Snippets without a language apply everywhere.
func Suggest(root *snippet.Node, docPath string, globs map[string]string) []Suggestion {
	if root == nil {
		return nil
	}

	langs := map[string]bool{}
	for _, id := range Languages(docPath, globs) {
		langs[id] = true
	}

	out := []Suggestion{}
	for _, n := range tree.FlattenLeaves(root.Children) {
		if n.Language != "" && !langs[n.Language] {
			continue
		}
		trigger := n.Prefix
		if trigger == "" {
			trigger = n.Label
		}
		out = append(out, Suggestion{
			ID:            n.ID,
			Trigger:       trigger,
			Body:          n.Value,
			Description:   n.Description,
			Language:      n.Language,
			ResolveSyntax: n.ResolveSyntax,
		})
	}
	return out
}
