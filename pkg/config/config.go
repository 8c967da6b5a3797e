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

	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = ".rewriterc.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

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

// ⚙️ Options are run switches that can also be set from the command line
type Options struct {
	Backup bool `json:"backup,omitempty" yaml:"backup,omitempty" toml:"backup,omitempty"`
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root    string                 `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	Files   []string               `json:"files" yaml:"files" toml:"files"`
	Ignore  []string               `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`
	Preset  string                 `json:"preset,omitempty" yaml:"preset,omitempty" toml:"preset,omitempty"`
	Rules   []text.ReplacementRule `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
	Options Options                `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`

	location string
	paths    []string
}

// 🎯 Load loads the configuration from a file and expands its file list
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
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
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	if err := cfg.Resolve(ctx); err != nil {
		return nil, errors.Errorf("resolving files: %w", err)
	}

	return cfg, nil
}

// 🏭 Default returns the built-in configuration: the genai-vertexai preset over
// the call sites it was written for, resolved against root
func Default(ctx context.Context, root string) (*Config, error) {
	files := text.PresetFiles[text.PresetGenAIVertexAI]
	cfg := &Config{
		Root:   root,
		Preset: text.PresetGenAIVertexAI,
		Files:  append([]string(nil), files...),
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if err := cfg.Resolve(ctx); err != nil {
		return nil, errors.Errorf("resolving files: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Files) == 0 {
		return errors.Errorf("files is required")
	}
	for i, f := range cfg.Files {
		if f == "" {
			return errors.Errorf("files[%d] is empty", i)
		}
	}

	rules, err := cfg.AllRules()
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return errors.Errorf("preset or rules is required")
	}
	if err := text.ValidateRules(rules); err != nil {
		return err
	}

	// root is relative to the config file, not the working directory
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if !filepath.IsAbs(cfg.Root) && cfg.location != "" {
		cfg.Root = filepath.Join(filepath.Dir(cfg.location), cfg.Root)
	}
	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// 📋 AllRules returns the preset rules followed by the configured rules
func (cfg *Config) AllRules() ([]text.ReplacementRule, error) {
	var rules []text.ReplacementRule
	if cfg.Preset != "" {
		preset, err := text.Preset(cfg.Preset)
		if err != nil {
			return nil, err
		}
		rules = append(rules, preset...)
	}
	return append(rules, cfg.Rules...), nil
}

// 📂 Paths returns the expanded file list. It is empty until Resolve runs.
func (cfg *Config) Paths() []string {
	return cfg.paths
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	rules, _ := cfg.AllRules()
	return fmt.Sprintf("%d rules over %d files in %s", len(rules), len(cfg.Files), cfg.Root)
}
