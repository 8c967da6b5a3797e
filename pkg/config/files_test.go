package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Resolve(t *testing.T) {
	tree := []string{
		"modules/beauty/service.go",
		"modules/cinema/service.go",
		"modules/cinema/worker.go",
		"modules/legacy/service.go",
		"modules/unified-prompt/studio/service.go",
		"README.md",
	}

	tests := []struct {
		name        string
		files       []string
		ignore      []string
		want        []string
		errContains string
	}{
		{
			name:  "literal_order_kept",
			files: []string{"modules/cinema/worker.go", "README.md"},
			want:  []string{"modules/cinema/worker.go", "README.md"},
		},
		{
			name:  "missing_literal_kept",
			files: []string{"modules/gone.go"},
			want:  []string{"modules/gone.go"},
		},
		{
			name:  "glob_sorted",
			files: []string{"modules/**/service.go"},
			want: []string{
				"modules/beauty/service.go",
				"modules/cinema/service.go",
				"modules/legacy/service.go",
				"modules/unified-prompt/studio/service.go",
			},
		},
		{
			name:  "duplicates_keep_first_position",
			files: []string{"modules/cinema/worker.go", "modules/cinema/*.go", "./modules/cinema/worker.go"},
			want:  []string{"modules/cinema/worker.go", "modules/cinema/service.go"},
		},
		{
			name:   "ignore",
			files:  []string{"modules/**/*.go"},
			ignore: []string{"modules/legacy/**", "**/worker.go"},
			want: []string{
				"modules/beauty/service.go",
				"modules/cinema/service.go",
				"modules/unified-prompt/studio/service.go",
			},
		},
		{
			name:  "glob_without_matches",
			files: []string{"nothing/**/*.go"},
			want:  []string{},
		},
		{
			name:  "brace_glob",
			files: []string{"modules/{beauty,legacy}/service.go"},
			want:  []string{"modules/beauty/service.go", "modules/legacy/service.go"},
		},
		{
			name:        "invalid_ignore",
			files:       []string{"a.go"},
			ignore:      []string{"[a"},
			errContains: `invalid ignore pattern "[a"`,
		},
		{
			name:        "absolute_glob",
			files:       []string{"/tmp/**/*.go"},
			errContains: "must be relative to root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tree {
				path := filepath.Join(root, filepath.FromSlash(f))
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
			}

			cfg := &Config{Root: root, Files: tt.files, Ignore: tt.ignore}
			err := cfg.Resolve(testContext(t))

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.FromSlash(w)
			}
			assert.Equal(t, want, cfg.Paths())
		})
	}
}

func TestIsGlob(t *testing.T) {
	assert.True(t, isGlob("a/*.go"))
	assert.True(t, isGlob("a/{b,c}.go"))
	assert.True(t, isGlob("a?.go"))
	assert.False(t, isGlob("a/b.go"))
	assert.False(t, isGlob(`a\*.go`))
}
