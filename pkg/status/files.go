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

package status

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// FileAccessError reports a file that could not be read or written
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// EncodingError reports content that is not valid UTF-8
type EncodingError struct {
	Path   string
	Offset int // Byte offset of the first invalid sequence
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("decoding %s: invalid UTF-8 at byte %d", e.Path, e.Offset)
}

// 💾 FileManager handles the file system side of processing
type FileManager interface {
	// ReadText reads the whole file and checks that it is valid UTF-8
	ReadText(ctx context.Context, path string) (string, error)
	// WriteFileAtomic replaces the file with content via a temp file and rename
	WriteFileAtomic(ctx context.Context, path string, content string) error
	// BackupFile copies the file to path + ".bak"
	BackupFile(ctx context.Context, path string) error
}

// 🔧 Manager implements FileManager relative to a base directory
type Manager struct {
	baseDir string
}

var _ FileManager = (*Manager)(nil)

// 🏭 NewManager creates a file manager; relative paths resolve against baseDir
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: filepath.Clean(baseDir)}
}

// 🔒 getAbsPath returns the on-disk path for path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

func (m *Manager) ReadText(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return "", errors.WithStack(&FileAccessError{Path: path, Op: "reading", Err: err})
	}

	if _, n, err := transform.Bytes(encoding.UTF8Validator, content); err != nil {
		return "", errors.WithStack(&EncodingError{Path: path, Offset: n})
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read file")
	return string(content), nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content string) error {
	absPath, err := resolveLink(m.getAbsPath(path))
	if err != nil {
		return errors.WithStack(&FileAccessError{Path: path, Op: "resolving", Err: err})
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.WithStack(&FileAccessError{Path: path, Op: "creating temp file for", Err: err})
	}
	tempPath := tmp.Name()

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.WithStack(&FileAccessError{Path: path, Op: "writing temp file for", Err: err})
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.WithStack(&FileAccessError{Path: path, Op: "closing temp file for", Err: err})
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.WithStack(&FileAccessError{Path: path, Op: "setting mode on temp file for", Err: err})
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.WithStack(&FileAccessError{Path: path, Op: "renaming temp file onto", Err: err})
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.WithStack(&FileAccessError{Path: path, Op: "backing up", Err: err})
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", backupPath).Msg("backed up file")
	return nil
}

// Helper functions

// resolveLink follows symlinks so the rename replaces the target, not the link.
// A path that does not exist yet is returned as is.
func resolveLink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			if _, lerr := os.Lstat(path); lerr == nil {
				// dangling link
				return "", err
			}
			return path, nil
		}
		return "", err
	}
	return resolved, nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source mode: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
