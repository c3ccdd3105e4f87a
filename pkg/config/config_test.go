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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "snipr.yaml",
			config: `
store:
  backend: sqlite
  sqlite_path: /tmp/snipr/../snipr/snipr.db
gist:
  token_env: SNIPR_TOKEN
  public: true
  delete_on_remove: true
  concurrency: 8
languages:
  "**/templates/*.html": handlebars
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendSQLite, cfg.Store.Backend, "backend should match")
				assert.Equal(t, "/tmp/snipr/snipr.db", cfg.Store.SQLitePath, "path should be cleaned")
				assert.Equal(t, "SNIPR_TOKEN", cfg.Gist.TokenEnv)
				assert.True(t, cfg.Gist.Public)
				assert.True(t, cfg.Gist.DeleteOnRemove)
				assert.Equal(t, 8, cfg.Gist.Concurrency)
				assert.Equal(t, map[string]string{"**/templates/*.html": "handlebars"}, cfg.Languages)
			},
		},
		{
			name:   "minimal_yaml",
			file:   "snipr.yml",
			config: "gist:\n  public: false\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendFile, cfg.Store.Backend, "backend should default to file")
				assert.Equal(t, filepath.Join(".snipr", "snippets.json"), cfg.Store.WorkspacePath)
				assert.Equal(t, "snippets.json", filepath.Base(cfg.Store.GlobalPath))
				assert.Equal(t, "GITHUB_TOKEN", cfg.Gist.TokenEnv)
				assert.Equal(t, "github", cfg.Gist.Provider)
				assert.Equal(t, 4, cfg.Gist.Concurrency)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "snipr.yaml",
			config:      "colour: blue\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "bad_backend",
			file:        "snipr.yaml",
			config:      "store:\n  backend: redis\n",
			wantErr:     true,
			errContains: "store.backend must be",
		},
		{
			name:        "negative_concurrency",
			file:        "snipr.json",
			config:      `{"gist": {"concurrency": -1}}`,
			wantErr:     true,
			errContains: "gist.concurrency",
		},
		{
			name:   "valid_json",
			file:   "snipr.json",
			config: `{"store": {"backend": "file", "global_path": "/data/s.json"}, "languages": {"*.tpl": "html"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/s.json", cfg.Store.GlobalPath)
				assert.Equal(t, "html", cfg.Languages["*.tpl"])
			},
		},
		{
			name: "valid_hcl",
			file: "snipr.hcl",
			config: `
store {
  backend     = "sqlite"
  sqlite_path = "/tmp/s.db"
}
gist {
  delete_on_remove = true
  concurrency      = 2
}
languages = {
  "Jenkinsfile" = "groovy"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendSQLite, cfg.Store.Backend)
				assert.Equal(t, "/tmp/s.db", cfg.Store.SQLitePath)
				assert.True(t, cfg.Gist.DeleteOnRemove)
				assert.Equal(t, 2, cfg.Gist.Concurrency)
				assert.Equal(t, "groovy", cfg.Languages["Jenkinsfile"])
			},
		},
		{
			name: "hcl_env_reference",
			file: "snipr.hcl",
			config: `
store {
  global_path = "${env.SNIPR_TEST_HOME}/snippets.json"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/home/tester/snippets.json", cfg.Store.GlobalPath)
			},
		},
		{
			name:        "invalid_hcl",
			file:        "snipr.hcl",
			config:      "store {",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			file:        "snipr.toml",
			config:      "x = 1",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	t.Setenv("SNIPR_TEST_HOME", "/home/tester")
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())

	cfg, err := Load(ctx, filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "file_backend",
			cfg: &Config{
				Store: StoreConfig{Backend: BackendFile, GlobalPath: "/s.json"},
				Gist:  GistConfig{Provider: "github"},
			},
			want: "file:/s.json gist=github languages=[]",
		},
		{
			name: "sqlite_backend",
			cfg: &Config{
				Store:     StoreConfig{Backend: BackendSQLite, SQLitePath: "/s.db"},
				Gist:      GistConfig{Provider: "github"},
				Languages: map[string]string{"b": "go", "a": "go"},
			},
			want: "sqlite:/s.db gist=github languages=[a,b]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String(), "String() should match")
		})
	}
}
