package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Resolve expands the files list into concrete paths relative to Root.
//
// Entries keep their configured order. A glob entry expands to its sorted
// matches; a literal entry is kept even if the file is missing so the run
// can report it. Duplicates keep their first position, and anything matching
// an ignore pattern is dropped.
func (cfg *Config) Resolve(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	fsys := os.DirFS(cfg.Root)
	seen := make(map[string]bool)
	paths := make([]string, 0, len(cfg.Files))

	add := func(p string) error {
		if seen[p] {
			return nil
		}
		seen[p] = true

		ignored, err := cfg.ignored(p)
		if err != nil {
			return err
		}
		if ignored {
			logger.Debug().Str("path", p).Msg("ignoring file")
			return nil
		}
		paths = append(paths, p)
		return nil
	}

	for _, entry := range cfg.Files {
		slashed := filepath.ToSlash(entry)
		if !isGlob(slashed) {
			if err := add(filepath.Clean(entry)); err != nil {
				return err
			}
			continue
		}

		if filepath.IsAbs(entry) {
			return errors.Errorf("glob %q must be relative to root", entry)
		}
		if !doublestar.ValidatePattern(slashed) {
			return errors.Errorf("invalid glob %q", entry)
		}

		matches, err := doublestar.Glob(fsys, slashed, doublestar.WithFilesOnly())
		if err != nil {
			return errors.Errorf("expanding glob %q: %w", entry, err)
		}
		sort.Strings(matches)
		logger.Debug().Str("glob", entry).Int("matches", len(matches)).Msg("expanded glob")

		for _, m := range matches {
			if err := add(filepath.FromSlash(m)); err != nil {
				return err
			}
		}
	}

	cfg.paths = paths
	return nil
}

func (cfg *Config) ignored(path string) (bool, error) {
	slashed := filepath.ToSlash(path)
	for _, pattern := range cfg.Ignore {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), slashed)
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func isGlob(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '{':
			return true
		case '\\':
			i++
		}
	}
	return false
}
