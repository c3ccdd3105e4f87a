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

package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileStore keeps a tree in a JSON file.
type FileStore struct {
	path string
}

var _ DataStore = (*FileStore)(nil)

// NewFileStore returns a store for the JSON file at path. Nothing is read
// until Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// OpenFile is a Factory for file stores.
func OpenFile(location string) DataStore {
	return NewFileStore(location)
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*snippet.Node, error) {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("loading snippet file")

	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, unavailable("reading", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		root := snippet.NewRoot()
		if err := s.Save(ctx, root); err != nil {
			return nil, errors.Errorf("initializing snippet file: %w", err)
		}
		return root, nil
	}

	root, err := snippet.Decode(data)
	if err != nil {
		return nil, unavailable("parsing", s.path, err)
	}
	return root, nil
}

func (s *FileStore) Save(ctx context.Context, root *snippet.Node) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("saving snippet file")

	data, err := snippet.Encode(root)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return unavailable("creating directory for", s.path, err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return unavailable("writing", s.path, err)
	}
	return nil
}

func (s *FileStore) HasNoChildren(ctx context.Context) (bool, error) {
	return hasNoChildren(ctx, s)
}

// ReadFile parses the tree file at path without initializing it. A missing or
// malformed file is an error.
func ReadFile(ctx context.Context, path string) (*snippet.Node, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("reading tree file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable("reading", path, err)
	}
	root, err := snippet.Decode(data)
	if err != nil {
		return nil, unavailable("parsing", path, err)
	}
	return root, nil
}

func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0o644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
