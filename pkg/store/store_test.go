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
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func sampleRoot() *snippet.Node {
	root := snippet.NewRoot()
	folder := snippet.NewFolder(2, snippet.RootID, "folder", "")
	folder.Children = append(folder.Children, snippet.NewLeaf(3, 2, "leaf", "console.log(1)"))
	root.Children = append(root.Children, folder)
	root.LastID = 3
	return root
}

func TestFileStore(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("load_missing_initializes_root", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "snippets.json")
		s := NewFileStore(path)

		root, err := s.Load(ctx)
		require.NoError(t, err, "loading missing file")
		assert.True(t, root.IsRoot())
		assert.Equal(t, snippet.RootLabel, root.Label)
		assert.Equal(t, snippet.RootID, root.LastID)
		assert.Empty(t, root.Children)

		_, err = os.Stat(path)
		assert.NoError(t, err, "default root should be persisted")
	})

	t.Run("load_blank_initializes_root", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snippets.json")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

		empty, err := NewFileStore(path).HasNoChildren(ctx)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("save_and_load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snippets.json")
		s := NewFileStore(path)
		require.NoError(t, s.Save(ctx, sampleRoot()), "saving tree")

		root, err := NewFileStore(path).Load(ctx)
		require.NoError(t, err, "loading saved tree")
		assert.Equal(t, sampleRoot(), root)

		empty, err := s.HasNoChildren(ctx)
		require.NoError(t, err)
		assert.False(t, empty)

		_, err = os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
	})

	t.Run("invalid_json_is_unavailable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snippets.json")
		require.NoError(t, os.WriteFile(path, []byte("{invalid json}"), 0o600))

		_, err := NewFileStore(path).Load(ctx)
		require.Error(t, err)

		var uerr *UnavailableError
		require.True(t, errors.As(err, &uerr), "error should be an UnavailableError")
		assert.Equal(t, "parsing", uerr.Op)
		assert.Contains(t, err.Error(), "store unavailable")
	})

	t.Run("read_file_requires_existing_file", func(t *testing.T) {
		_, err := ReadFile(ctx, filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)

		path := filepath.Join(t.TempDir(), "tree.json")
		require.NoError(t, NewFileStore(path).Save(ctx, sampleRoot()))
		root, err := ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Len(t, root.Children, 1)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := setupTestLogger(t)

	s, err := NewMemoryStore(sampleRoot())
	require.NoError(t, err)

	first, err := s.Load(ctx)
	require.NoError(t, err)
	first.Children[0].Label = "mutated"

	second, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "folder", second.Children[0].Label, "loads should not share nodes")

	blank, err := NewMemoryStore(nil)
	require.NoError(t, err)
	empty, err := blank.HasNoChildren(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
	assert.NotEmpty(t, blank.Bytes(), "default root should be persisted")
}

func TestSQLiteStore(t *testing.T) {
	ctx := setupTestLogger(t)
	path := filepath.Join(t.TempDir(), "state.db")

	global, err := OpenSQLite(ctx, path, GlobalKey)
	require.NoError(t, err, "opening sqlite store")
	t.Cleanup(func() { global.Close() })
	workspace := global.WithKey(WorkspaceKey)

	root, err := global.Load(ctx)
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	require.NoError(t, global.Save(ctx, sampleRoot()))

	loaded, err := global.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRoot(), loaded)

	empty, err := workspace.HasNoChildren(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "scopes should not share trees")

	require.NoError(t, global.Save(ctx, snippet.NewRoot()), "overwriting existing key")
	empty, err = global.HasNoChildren(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(setupTestLogger(t))
	defer cancel()

	path := filepath.Join(t.TempDir(), "snippets.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(ctx, snippet.NewRoot()))

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() { calls.Add(1) })
	}()

	// give the watcher time to register
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, s.Save(ctx, sampleRoot()))

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond,
		"change callback should fire")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
