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

// Package language maps file extensions to the language ids stored on
// snippets.
package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language is a known language and the file extensions it claims.
type Language struct {
	ID         string
	Extensions []string
}

var known = []Language{
	{ID: "bat", Extensions: []string{"bat", "cmd"}},
	{ID: "c", Extensions: []string{"c", "h"}},
	{ID: "clojure", Extensions: []string{"clj", "cljs", "cljc", "edn"}},
	{ID: "coffeescript", Extensions: []string{"coffee"}},
	{ID: "cpp", Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}},
	{ID: "csharp", Extensions: []string{"cs", "csx"}},
	{ID: "css", Extensions: []string{"css"}},
	{ID: "dart", Extensions: []string{"dart"}},
	{ID: "dockerfile", Extensions: []string{"dockerfile"}},
	{ID: "elixir", Extensions: []string{"ex", "exs"}},
	{ID: "fsharp", Extensions: []string{"fs", "fsi", "fsx"}},
	{ID: "go", Extensions: []string{"go"}},
	{ID: "groovy", Extensions: []string{"groovy", "gradle"}},
	{ID: "handlebars", Extensions: []string{"handlebars", "hbs"}},
	{ID: "hcl", Extensions: []string{"hcl", "tf"}},
	{ID: "html", Extensions: []string{"html", "htm", "xhtml"}},
	{ID: "ini", Extensions: []string{"ini"}},
	{ID: "java", Extensions: []string{"java"}},
	{ID: "javascript", Extensions: []string{"js", "mjs", "cjs"}},
	{ID: "javascriptreact", Extensions: []string{"jsx"}},
	{ID: "json", Extensions: []string{"json"}},
	{ID: "julia", Extensions: []string{"jl"}},
	{ID: "kotlin", Extensions: []string{"kt", "kts"}},
	{ID: "less", Extensions: []string{"less"}},
	{ID: "lua", Extensions: []string{"lua"}},
	{ID: "makefile", Extensions: []string{"mk", "mak"}},
	{ID: "markdown", Extensions: []string{"md", "markdown"}},
	{ID: "objective-c", Extensions: []string{"m"}},
	{ID: "perl", Extensions: []string{"pl", "pm"}},
	{ID: "php", Extensions: []string{"php"}},
	{ID: "powershell", Extensions: []string{"ps1", "psm1", "psd1"}},
	{ID: "python", Extensions: []string{"py", "pyw"}},
	{ID: "r", Extensions: []string{"r"}},
	{ID: "ruby", Extensions: []string{"rb", "erb"}},
	{ID: "rust", Extensions: []string{"rs"}},
	{ID: "scss", Extensions: []string{"scss"}},
	{ID: "shellscript", Extensions: []string{"sh", "bash", "zsh"}},
	{ID: "sql", Extensions: []string{"sql"}},
	{ID: "swift", Extensions: []string{"swift"}},
	{ID: "toml", Extensions: []string{"toml"}},
	{ID: "typescript", Extensions: []string{"ts", "mts", "cts"}},
	{ID: "typescriptreact", Extensions: []string{"tsx"}},
	{ID: "vue", Extensions: []string{"vue"}},
	{ID: "xml", Extensions: []string{"xml", "xsd", "xsl"}},
	{ID: "yaml", Extensions: []string{"yaml", "yml"}},
}

var byExtension = func() map[string]Language {
	m := map[string]Language{}
	for _, l := range known {
		for _, ext := range l.Extensions {
			m[ext] = l
		}
	}
	return m
}()

// Known returns every language, sorted by id.
func Known() []Language {
	out := append([]Language(nil), known...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByExtension looks up a language by extension, with or without the dot.
func ByExtension(ext string) (Language, bool) {
	l, ok := byExtension[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return l, ok
}

// IsKnown reports whether id names a known language.
func IsKnown(id string) bool {
	for _, l := range known {
		if l.ID == id {
			return true
		}
	}
	return false
}

// 🏷️ SplitName splits "name.ext" into a label and a language id when ext is
// a known extension. Otherwise the full name is the label and the id is
// empty.
func SplitName(name string) (label, id string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return name, ""
	}
	l, ok := ByExtension(name[dot+1:])
	if !ok {
		return name, ""
	}
	return name[:dot], l.ID
}

// ForPath returns the language of a document path, by extension or by a bare
// well-known file name such as Dockerfile.
func ForPath(path string) (string, bool) {
	base := filepath.Base(path)
	if l, ok := ByExtension(filepath.Ext(base)); ok && filepath.Ext(base) != "" {
		return l.ID, true
	}
	switch strings.ToLower(base) {
	case "dockerfile":
		return "dockerfile", true
	case "makefile", "gnumakefile":
		return "makefile", true
	}
	return "", false
}
