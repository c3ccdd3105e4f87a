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

// Package store persists snippet trees. Every backend loads and saves a single
// root node; a blank or missing backing store is initialized with an empty root.
package store

import (
	"context"
	"fmt"

	"github.com/walteh/snipr/pkg/snippet"
)

// 💾 DataStore loads and saves one snippet tree.
type DataStore interface {
	// Load returns the stored root, creating and persisting an empty one when
	// nothing is stored yet.
	Load(ctx context.Context) (*snippet.Node, error)
	// Save replaces the stored tree with root.
	Save(ctx context.Context, root *snippet.Node) error
	// HasNoChildren reports whether the stored root is empty.
	HasNoChildren(ctx context.Context) (bool, error)
}

// Factory opens a store for a location. Export and import use it to open
// standalone tree files.
type Factory func(location string) DataStore

// ⚠️ UnavailableError reports a backing store that could not be read, written
// or parsed.
type UnavailableError struct {
	Op       string
	Location string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func unavailable(op, location string, err error) error {
	return &UnavailableError{Op: op, Location: location, Err: err}
}

// hasNoChildren is shared by the backends.
func hasNoChildren(ctx context.Context, s DataStore) (bool, error) {
	root, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return len(root.Children) == 0, nil
}
