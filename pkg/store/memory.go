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
	"context"
	"sync"

	"github.com/walteh/snipr/pkg/snippet"
)

// MemoryStore keeps the serialized tree in memory. Loads always return fresh
// nodes, the same way a file round-trip would.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

var _ DataStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with root, or an empty store when root
// is nil.
func NewMemoryStore(root *snippet.Node) (*MemoryStore, error) {
	s := &MemoryStore{}
	if root != nil {
		if err := s.Save(context.Background(), root); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) Load(ctx context.Context) (*snippet.Node, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()

	if len(data) == 0 {
		root := snippet.NewRoot()
		if err := s.Save(ctx, root); err != nil {
			return nil, err
		}
		return root, nil
	}

	root, err := snippet.Decode(data)
	if err != nil {
		return nil, unavailable("parsing", "memory", err)
	}
	return root, nil
}

func (s *MemoryStore) Save(ctx context.Context, root *snippet.Node) error {
	data, err := snippet.Encode(root)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) HasNoChildren(ctx context.Context) (bool, error) {
	return hasNoChildren(ctx, s)
}

// Bytes returns the serialized tree, mostly for tests.
func (s *MemoryStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
