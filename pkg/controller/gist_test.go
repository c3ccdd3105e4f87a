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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/snipr/pkg/remote"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

func TestGistFileName(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		language string
		want     string
	}{
		{name: "appends_extension", label: "hello", language: "go", want: "hello.go"},
		{name: "keeps_existing_extension", label: "hello.txt", language: "go", want: "hello.txt"},
		{name: "no_language", label: "hello", want: "hello"},
		{name: "unknown_language", label: "hello", language: "brainfudge", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := snippet.NewLeaf(2, 1, tt.label, "")
			n.Language = tt.language
			assert.Equal(t, tt.want, GistFileName(n))
		})
	}
}

func TestPublishGist(t *testing.T) {
	t.Run("records_gist_id", func(t *testing.T) {
		ctx := setupTestLogger(t)
		gists := new(MockGistClient)
		gists.On("Create", mock.Anything, mock.MatchedBy(func(g remote.Gist) bool {
			return g.Public && g.Description == "c" && g.Files[0].Name == "c" && g.Files[0].Content == "c body"
		})).Return(&remote.Gist{ID: "abc", URL: "https://gist.example/abc"}, nil)

		c, ms := newTestController(t, ctx, sampleTree(), Options{Gists: gists})
		gist, err := c.PublishGist(ctx, 6, true)
		require.NoError(t, err)
		require.NotNil(t, gist)
		assert.Equal(t, "abc", gist.ID)

		stored, err := ms.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", stored.Children[1].ExternalRef)
		gists.AssertExpectations(t)
	})

	t.Run("folder_is_ignored", func(t *testing.T) {
		ctx := setupTestLogger(t)
		gists := new(MockGistClient)
		c, _ := newTestController(t, ctx, sampleTree(), Options{Gists: gists})

		gist, err := c.PublishGist(ctx, 2, false)
		require.NoError(t, err)
		assert.Nil(t, gist)
		gists.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no_backend", func(t *testing.T) {
		ctx := setupTestLogger(t)
		c, _ := newTestController(t, ctx, sampleTree(), Options{})
		_, err := c.PublishGist(ctx, 6, false)
		assert.ErrorIs(t, err, ErrNoGistBackend)
	})
}

func TestPublishFolder(t *testing.T) {
	ctx := setupTestLogger(t)
	root := sampleTree()
	root.Children[0].Children[0].ExternalRef = "already"

	gists := new(MockGistClient)
	gists.On("Create", mock.Anything, mock.MatchedBy(func(g remote.Gist) bool {
		return g.Files[0].Name == "b1"
	})).Return(&remote.Gist{ID: "g-b1"}, nil)

	c, ms := newTestController(t, ctx, root, Options{Gists: gists, PublishConcurrency: 2})
	published, err := c.PublishFolder(ctx, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	stored, err := ms.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "already", stored.Children[0].Children[0].ExternalRef)
	assert.Equal(t, "g-b1", stored.Children[0].Children[1].Children[0].ExternalRef)
	gists.AssertNumberOfCalls(t, "Create", 1)
}

func TestPublishFolderPartialFailure(t *testing.T) {
	ctx := setupTestLogger(t)

	gists := new(MockGistClient)
	gists.On("Create", mock.Anything, mock.MatchedBy(func(g remote.Gist) bool {
		return g.Files[0].Name == "a1"
	})).Return(&remote.Gist{ID: "g-a1"}, nil)
	gists.On("Create", mock.Anything, mock.MatchedBy(func(g remote.Gist) bool {
		return g.Files[0].Name == "b1"
	})).Return(nil, errors.New("rate limited"))

	c, _ := newTestController(t, ctx, sampleTree(), Options{Gists: gists})
	published, err := c.PublishFolder(ctx, 2, false)
	require.Error(t, err)
	assert.True(t, IsRemoteWarning(err))
	assert.Equal(t, 1, published)
	assert.Equal(t, "g-a1", c.Service().FindNode(3).ExternalRef)
	assert.Empty(t, c.Service().FindNode(5).ExternalRef)
}

func TestPullGist(t *testing.T) {
	ctx := setupTestLogger(t)

	gists := new(MockGistClient)
	gists.On("Get", mock.Anything, "xyz").Return(&remote.Gist{
		ID:          "xyz",
		Description: "helpers",
		Files: []remote.File{
			{Name: "retry.go", Language: "Go", Content: "func retry() {}"},
			{Name: "notes", Language: "Markdown", Content: "# notes"},
			{Name: "blob", Language: "Unheard", Content: "?"},
		},
	}, nil)

	c, _ := newTestController(t, ctx, sampleTree(), Options{Gists: gists})
	nodes, err := c.PullGist(ctx, "xyz", 4)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "retry", nodes[0].Label)
	assert.Equal(t, "go", nodes[0].Language)
	assert.Equal(t, "markdown", nodes[1].Language)
	assert.Empty(t, nodes[2].Language)
	for i, n := range nodes {
		assert.Equal(t, 7+i, n.ID)
		assert.Equal(t, 4, n.ParentID)
		assert.Equal(t, "xyz", n.ExternalRef)
		assert.Equal(t, "helpers", n.Description)
	}
	assert.Equal(t, 9, c.Root().LastID)
}

func TestPullGistIntoSnippetUsesItsFolder(t *testing.T) {
	ctx := setupTestLogger(t)

	gists := new(MockGistClient)
	gists.On("Get", mock.Anything, "xyz").Return(&remote.Gist{
		ID:    "xyz",
		Files: []remote.File{{Name: "retry.go", Content: "func retry() {}"}},
	}, nil)

	c, _ := newTestController(t, ctx, sampleTree(), Options{Gists: gists})
	nodes, err := c.PullGist(ctx, "xyz", 5)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, 4, nodes[0].ParentID)
	assert.Equal(t, []string{"b1", "retry"}, childLabels(c.Service().FindNode(4)))
	assert.False(t, c.Service().FindNode(5).IsCorrupted())
}
