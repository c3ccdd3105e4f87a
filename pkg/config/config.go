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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultFileName is looked up in the working directory when no config path
// is given.
const DefaultFileName = ".snipr.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 💾 StoreConfig selects where trees are kept.
type StoreConfig struct {
	Backend       string `json:"backend,omitempty" yaml:"backend,omitempty"`               // file or sqlite
	GlobalPath    string `json:"global_path,omitempty" yaml:"global_path,omitempty"`       // global tree file
	WorkspacePath string `json:"workspace_path,omitempty" yaml:"workspace_path,omitempty"` // workspace tree file, relative to the working directory
	SQLitePath    string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`       // database holding both scopes
}

// 🐙 GistConfig configures the gist backend.
type GistConfig struct {
	Provider       string `json:"provider,omitempty" yaml:"provider,omitempty"`
	TokenEnv       string `json:"token_env,omitempty" yaml:"token_env,omitempty"`
	Public         bool   `json:"public,omitempty" yaml:"public,omitempty"`
	DeleteOnRemove bool   `json:"delete_on_remove,omitempty" yaml:"delete_on_remove,omitempty"`
	Concurrency    int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Store StoreConfig `json:"store" yaml:"store"`
	Gist  GistConfig  `json:"gist" yaml:"gist"`
	// Languages maps doublestar patterns to language ids for suggestions
	Languages map[string]string `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load reads the configuration at path. A missing file yields the
// defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "snipr")
}

// 🔍 Validate fills defaults, cleans paths and rejects unknown values.
func (cfg *Config) Validate() error {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendFile
	}
	if cfg.Store.Backend != BackendFile && cfg.Store.Backend != BackendSQLite {
		return errors.Errorf("store.backend must be %q or %q, got %q", BackendFile, BackendSQLite, cfg.Store.Backend)
	}

	if cfg.Store.GlobalPath == "" {
		cfg.Store.GlobalPath = filepath.Join(configDir(), "snippets.json")
	}
	if cfg.Store.WorkspacePath == "" {
		cfg.Store.WorkspacePath = filepath.Join(".snipr", "snippets.json")
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = filepath.Join(configDir(), "snipr.db")
	}
	cfg.Store.GlobalPath = filepath.Clean(cfg.Store.GlobalPath)
	cfg.Store.WorkspacePath = filepath.Clean(cfg.Store.WorkspacePath)
	cfg.Store.SQLitePath = filepath.Clean(cfg.Store.SQLitePath)

	if cfg.Gist.Provider == "" {
		cfg.Gist.Provider = "github"
	}
	if cfg.Gist.TokenEnv == "" {
		cfg.Gist.TokenEnv = "GITHUB_TOKEN"
	}
	if cfg.Gist.Concurrency < 0 {
		return errors.Errorf("gist.concurrency must not be negative")
	}
	if cfg.Gist.Concurrency == 0 {
		cfg.Gist.Concurrency = 4
	}

	for pattern, lang := range cfg.Languages {
		if strings.TrimSpace(lang) == "" {
			return errors.Errorf("languages[%q] needs a language id", pattern)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	location := cfg.Store.GlobalPath
	if cfg.Store.Backend == BackendSQLite {
		location = cfg.Store.SQLitePath
	}
	patterns := make([]string, 0, len(cfg.Languages))
	for p := range cfg.Languages {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return fmt.Sprintf("%s:%s gist=%s languages=[%s]", cfg.Store.Backend, location, cfg.Gist.Provider, strings.Join(patterns, ","))
}
