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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse decodes blocks of the form
//
//	store { backend = "sqlite" }
//	gist { public = true }
//	languages = { "**/*.tmpl" = "handlebars" }
//
// Environment variables are available as env.NAME.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	type hclConfig struct {
		Store *struct {
			Backend       string `hcl:"backend,optional"`
			GlobalPath    string `hcl:"global_path,optional"`
			WorkspacePath string `hcl:"workspace_path,optional"`
			SQLitePath    string `hcl:"sqlite_path,optional"`
		} `hcl:"store,block"`
		Gist *struct {
			Provider       string `hcl:"provider,optional"`
			TokenEnv       string `hcl:"token_env,optional"`
			Public         bool   `hcl:"public,optional"`
			DeleteOnRemove bool   `hcl:"delete_on_remove,optional"`
			Concurrency    int    `hcl:"concurrency,optional"`
		} `hcl:"gist,block"`
		Languages map[string]string `hcl:"languages,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{Languages: hclCfg.Languages}
	if s := hclCfg.Store; s != nil {
		cfg.Store = StoreConfig{
			Backend:       s.Backend,
			GlobalPath:    s.GlobalPath,
			WorkspacePath: s.WorkspacePath,
			SQLitePath:    s.SQLitePath,
		}
	}
	if g := hclCfg.Gist; g != nil {
		cfg.Gist = GistConfig{
			Provider:       g.Provider,
			TokenEnv:       g.TokenEnv,
			Public:         g.Public,
			DeleteOnRemove: g.DeleteOnRemove,
			Concurrency:    g.Concurrency,
		}
	}

	return cfg, nil
}

func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
