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

package present

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/snipr/pkg/snippet"
)

func sampleTree() *snippet.Node {
	root := snippet.NewRoot()
	goFolder := snippet.NewFolder(2, 1, "Go", "")
	iferr := snippet.NewLeaf(3, 2, "iferr", "if err != nil {}")
	iferr.Language = "go"
	iferr.ExternalRef = "abc"
	goFolder.Children = []*snippet.Node{iferr}
	todo := snippet.NewLeaf(4, 1, "todo", "// TODO")
	todo.Description = "marker"
	root.Children = []*snippet.Node{goFolder, todo}
	root.LastID = 4
	return root
}

func TestRows(t *testing.T) {
	rows := Rows(sampleTree())
	require.Len(t, rows, 3)

	assert.Equal(t, Row{
		ID: 2, Label: "Go", Icon: FolderIcon, Folder: true, CanMoveDown: true,
	}, rows[0])

	assert.Equal(t, Row{
		ID: 3, Depth: 1, Label: "iferr", Icon: SnippetIcon, Description: "go",
		Tooltip: "if err != nil {}", Published: true,
	}, rows[1])

	assert.Equal(t, 0, rows[2].Depth)
	assert.True(t, rows[2].CanMoveUp)
	assert.False(t, rows[2].CanMoveDown)
	assert.Equal(t, "marker", rows[2].Description)

	assert.Nil(t, Rows(nil))
	assert.Empty(t, Rows(snippet.NewRoot()))
}

func TestRowForKeepsIcon(t *testing.T) {
	f := snippet.NewFolder(2, 1, "warn", snippet.WarningIcon)
	assert.Equal(t, snippet.WarningIcon, RowFor(f, 0, 1).Icon)
}

func TestRender(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out, err := Render(sampleTree())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), snippet.RootLabel), "root label comes first: %q", out)
	assert.Contains(t, out, "Go #2", "folders show their id too")
	assert.Contains(t, out, "iferr #3 (go) ↑")
	assert.Contains(t, out, "todo #4 (marker)")
	assert.Less(t, strings.Index(out, "iferr"), strings.Index(out, "todo"), "tree order is kept")

	out, err = Render(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
