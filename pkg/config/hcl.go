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
	"github.com/walteh/rewriterc/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Rules are labeled blocks. Expressions may read environment variables
// through the env object, e.g. root = env.PROJECT_ROOT. Since HCL treats
// ${ as interpolation, a ${name} capture reference is written $${name}.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclRule struct {
	Name    string `hcl:"name,label"`
	Literal string `hcl:"literal,optional"`
	Pattern string `hcl:"pattern,optional"`
	Replace string `hcl:"replace"`
}

type hclOptions struct {
	Backup bool `hcl:"backup,optional"`
	DryRun bool `hcl:"dry_run,optional"`
}

type hclConfig struct {
	Root    string      `hcl:"root,optional"`
	Files   []string    `hcl:"files"`
	Ignore  []string    `hcl:"ignore,optional"`
	Preset  string      `hcl:"preset,optional"`
	Options *hclOptions `hcl:"options,block"`
	Rules   []hclRule   `hcl:"rule,block"`
}

// 📝 Parse parses the config from HCL
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

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:   hclCfg.Root,
		Files:  hclCfg.Files,
		Ignore: hclCfg.Ignore,
		Preset: hclCfg.Preset,
	}
	if hclCfg.Options != nil {
		cfg.Options = Options{
			Backup: hclCfg.Options.Backup,
			DryRun: hclCfg.Options.DryRun,
		}
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, text.ReplacementRule{
			Name:    r.Name,
			Literal: r.Literal,
			Pattern: r.Pattern,
			Replace: r.Replace,
		})
	}

	return cfg, nil
}

// envObject exposes the process environment to HCL expressions
func envObject() cty.Value {
	vals := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !isIdent(k) {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}

func isIdent(s string) bool {
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}
