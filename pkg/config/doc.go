// Package config manages configuration parsing and validation for rewriterc.
//
//	            +-------------+
//	            |   Config    |
//	            | files/rules |
//	            +------+------+
//	                   |
//	   +--------+------+------+--------+
//	   |        |             |        |
//	+--+---+ +--+---+     +---+--+ +---+--+
//	| YAML | | HCL  |     | JSON | | TOML |
//	+------+ +------+     +------+ +------+
//
// 🎯 Purpose:
//   - Loads the file list, rule list and run options
//   - Rejects unknown fields in every format
//   - Expands file globs once, at load time
//
// 🔄 Flow:
//  1. Pick a parser by file extension
//  2. Decode into Config
//  3. Validate: files present, preset known, every rule compiles
//  4. Resolve: expand globs, drop ignored paths, de-duplicate
//
// 🔍 Example (.rewriterc.yaml):
//
//	root: .
//	preset: genai-vertexai
//	files:
//	  - modules/**/service.go
//	  - modules/modify/worker.go
//	ignore:
//	  - modules/legacy/**
//	rules:
//	  - name: rename-client
//	    pattern: 'oldpkg\.New\((\w+)\)'
//	    replace: 'newpkg.Open($1)'
//	options:
//	  backup: true
//
// Preset rules always run before the configured rules.
package config
