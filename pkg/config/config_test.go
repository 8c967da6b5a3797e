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
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var wantRules = []text.ReplacementRule{
	{Name: "rename-foo", Pattern: `Foo\((\w+)\)`, Replace: "Bar($1)"},
	{Name: "part-from-text", Literal: "genai.NewPartFromText(", Replace: "genai.Text("},
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		config string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			config: `
files:
  - a.go
  - b.go
ignore:
  - vendor/**
rules:
  - name: rename-foo
    pattern: 'Foo\((\w+)\)'
    replace: 'Bar($1)'
  - name: part-from-text
    literal: genai.NewPartFromText(
    replace: genai.Text(
options:
  backup: true
  dry_run: true
`,
		},
		{
			name: "yml",
			file: "config.yml",
			config: `
files: [a.go, b.go]
ignore: [vendor/**]
rules:
  - {name: rename-foo, pattern: 'Foo\((\w+)\)', replace: 'Bar($1)'}
  - {name: part-from-text, literal: 'genai.NewPartFromText(', replace: 'genai.Text('}
options: {backup: true, dry_run: true}
`,
		},
		{
			name: "hcl",
			file: "config.hcl",
			config: `
files  = ["a.go", "b.go"]
ignore = ["vendor/**"]

options {
  backup  = true
  dry_run = true
}

rule "rename-foo" {
  pattern = "Foo\\((\\w+)\\)"
  replace = "Bar($1)"
}

rule "part-from-text" {
  literal = "genai.NewPartFromText("
  replace = "genai.Text("
}
`,
		},
		{
			name: "json",
			file: "config.json",
			config: `{
  "files": ["a.go", "b.go"],
  "ignore": ["vendor/**"],
  "rules": [
    {"name": "rename-foo", "pattern": "Foo\\((\\w+)\\)", "replace": "Bar($1)"},
    {"name": "part-from-text", "literal": "genai.NewPartFromText(", "replace": "genai.Text("}
  ],
  "options": {"backup": true, "dry_run": true}
}`,
		},
		{
			name: "toml",
			file: "config.toml",
			config: `
files = ["a.go", "b.go"]
ignore = ["vendor/**"]

[options]
backup = true
dry_run = true

[[rules]]
name = "rename-foo"
pattern = 'Foo\((\w+)\)'
replace = 'Bar($1)'

[[rules]]
name = "part-from-text"
literal = "genai.NewPartFromText("
replace = "genai.Text("
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			path := writeConfig(t, dir, tt.file, tt.config)

			cfg, err := Load(ctx, path)
			require.NoError(t, err)

			assert.Equal(t, wantRules, cfg.Rules, "rules should match across formats")
			assert.Equal(t, []string{"a.go", "b.go"}, cfg.Files)
			assert.Equal(t, []string{"a.go", "b.go"}, cfg.Paths(), "missing literal paths are kept")
			assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
			assert.Equal(t, Options{Backup: true, DryRun: true}, cfg.Options)
			assert.Equal(t, dir, cfg.Root, "root defaults to the config directory")
			assert.Equal(t, path, cfg.Location())
		})
	}
}

func TestLoad_UnknownFields(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
	}{
		{
			name:        "yaml",
			file:        "config.yaml",
			config:      "files: [a.go]\nrules: [{literal: a, replace: b}]\nbogus: true\n",
			errContains: "field bogus not found",
		},
		{
			name:        "yaml_rule_field",
			file:        "config.yaml",
			config:      "files: [a.go]\nrules: [{literal: a, replace: b, flags: i}]\n",
			errContains: "field flags not found",
		},
		{
			name:        "hcl",
			file:        "config.hcl",
			config:      "files = [\"a.go\"]\nbogus = true\n",
			errContains: "decoding HCL",
		},
		{
			name:        "json",
			file:        "config.json",
			config:      `{"files": ["a.go"], "bogus": true}`,
			errContains: `unknown field "bogus"`,
		},
		{
			name:        "toml",
			file:        "config.toml",
			config:      "files = [\"a.go\"]\nbogus = true\n",
			errContains: "parsing TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.file, tt.config)
			_, err := Load(testContext(t), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, err error)
	}{
		{
			name:        "no_files",
			config:      "preset: genai-vertexai\n",
			errContains: "validating config: files is required",
		},
		{
			name:        "empty_file_entry",
			config:      "preset: genai-vertexai\nfiles: ['a.go', '']\n",
			errContains: "files[1] is empty",
		},
		{
			name:        "no_rules",
			config:      "files: [a.go]\n",
			errContains: "preset or rules is required",
		},
		{
			name:        "unknown_preset",
			config:      "files: [a.go]\npreset: nope\n",
			errContains: `unknown preset "nope"`,
		},
		{
			name:        "bad_rule",
			config:      "files: [a.go]\npreset: genai-vertexai\nrules:\n  - name: broken\n    pattern: '(a'\n    replace: x\n",
			errContains: "rule 5 (broken)",
			check: func(t *testing.T, err error) {
				var defErr *text.RuleDefinitionError
				require.True(t, errors.As(err, &defErr), "should be a rule definition error")
				assert.Equal(t, 5, defErr.Order, "preset rules come first")
				assert.Equal(t, "broken", defErr.Name)
			},
		},
		{
			name:        "invalid_glob",
			config:      "files: ['src/[a']\nrules: [{literal: a, replace: b}]\n",
			errContains: "resolving files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.config)
			_, err := Load(testContext(t), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	_, err := Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	path := writeConfig(t, dir, "config.ini", "files=a.go")
	_, err = Load(ctx, path)
	assert.ErrorContains(t, err, "no parser found for file")
}

func TestLoad_Root(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))

	path := writeConfig(t, dir, "config.yaml", "root: src\nfiles: [a.go]\npreset: genai-vertexai\n")
	cfg, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Root)

	abs := t.TempDir()
	path = writeConfig(t, dir, "abs.yaml", "root: "+abs+"\nfiles: [a.go]\npreset: genai-vertexai\n")
	cfg, err = Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Root)
}

func TestLoad_HCLEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("REWRITERC_TEST_ROOT", root)

	path := writeConfig(t, t.TempDir(), "config.hcl", `
root   = env.REWRITERC_TEST_ROOT
preset = "genai-vertexai"
files  = ["a.go"]

rule "named-group" {
  pattern = "Foo\\((?P<arg>\\w+)\\)"
  replace = "Bar($${arg})"
}
`)
	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "Bar(${arg})", cfg.Rules[0].Replace)
}

func TestConfig_AllRules(t *testing.T) {
	preset, err := text.Preset(text.PresetGenAIVertexAI)
	require.NoError(t, err)

	extra := text.ReplacementRule{Name: "extra", Literal: "a", Replace: "b"}
	cfg := &Config{Preset: text.PresetGenAIVertexAI, Rules: []text.ReplacementRule{extra}}

	rules, err := cfg.AllRules()
	require.NoError(t, err)
	require.Len(t, rules, len(preset)+1)
	assert.Equal(t, preset, rules[:len(preset)])
	assert.Equal(t, extra, rules[len(preset)])
}

func TestDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := Default(testContext(t), root)
	require.NoError(t, err)

	assert.Equal(t, text.PresetGenAIVertexAI, cfg.Preset)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, text.PresetFiles[text.PresetGenAIVertexAI], cfg.Paths())
	assert.Empty(t, cfg.Location())
	assert.Equal(t, "5 rules over 12 files in "+root, cfg.String())
}
