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

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/snipr/pkg/snippet"
)

func TestLanguages(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		globs map[string]string
		want  []string
	}{
		{name: "by_extension", path: "/src/main.go", want: []string{"go"}},
		{name: "bare_dockerfile", path: "/repo/Dockerfile", want: []string{"dockerfile"}},
		{name: "unknown", path: "/repo/README", want: nil},
		{
			name:  "glob_first_then_extension",
			path:  "repo/templates/page.html",
			globs: map[string]string{"**/templates/*.html": "handlebars"},
			want:  []string{"handlebars", "html"},
		},
		{
			name:  "glob_on_base_name",
			path:  "/repo/Jenkinsfile",
			globs: map[string]string{"Jenkinsfile": "groovy"},
			want:  []string{"groovy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Languages(tt.path, tt.globs))
		})
	}
}

func TestSuggest(t *testing.T) {
	root := snippet.NewRoot()
	anywhere := snippet.NewLeaf(2, 1, "todo", "// TODO: ")
	goErr := snippet.NewLeaf(4, 3, "iferr", "if err != nil {\n\treturn err\n}")
	goErr.Language = "go"
	goErr.Prefix = "ie"
	goErr.ResolveSyntax = true
	py := snippet.NewLeaf(5, 3, "main", "if __name__ == '__main__':")
	py.Language = "python"
	code := snippet.NewFolder(3, 1, "code", "")
	code.Children = []*snippet.Node{goErr, py}
	root.Children = []*snippet.Node{anywhere, code}

	got := Suggest(root, "/x/y.go", nil)
	assert.Equal(t, []Suggestion{
		{ID: 2, Trigger: "todo", Body: "// TODO: "},
		{ID: 4, Trigger: "ie", Body: goErr.Value, Language: "go", ResolveSyntax: true},
	}, got)

	got = Suggest(root, "/x/notes.txt", nil)
	assert.Len(t, got, 1)

	assert.Nil(t, Suggest(nil, "/x/y.go", nil))
}
