// Package store is the content store adapter: a thin layer over a rooted
// file tree that the hierarchy model uses to persist and load meta, content
// and body text. All paths are relative to the configured root.
//
// Absence is not an error here: reading a missing file yields the designated
// empty value, and moving or deleting a missing path is a no-op, so repeated
// task runs stay safe. Real I/O failures (permissions, disk) propagate.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrMalformed reports a file that exists but does not parse as the
// expected format. Callers decide whether that is recoverable.
var ErrMalformed = errors.New("malformed file")

// Store persists text and JSON documents under a root directory.
type Store struct {
	fs   afero.Fs
	root string
}

// New returns a Store rooted at root on the host filesystem.
func New(root string) *Store {
	return NewWithFs(afero.NewOsFs(), root)
}

// NewWithFs returns a Store rooted at root on the given filesystem.
// Tests pass afero.NewMemMapFs().
func NewWithFs(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Root returns the configured root directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) abs(path string) string {
	return filepath.Join(s.root, path)
}

// Exists reports whether path refers to an existing file or directory.
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, s.abs(path))
	return err == nil && ok
}

// ReadText returns the file's contents, or the empty string if the file
// does not exist.
func (s *Store) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, s.abs(path))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes data to path, creating intermediate directories.
func (s *Store) WriteText(path, data string) error {
	full := s.abs(path)
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, full, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON parses the file at path into a generic mapping. A missing file
// yields an empty map. A file that exists but does not parse yields
// ErrMalformed so callers can distinguish "not yet synced" from damage.
func (s *Store) ReadJSON(path string) (map[string]any, error) {
	text, err := s.ReadText(path)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return out, nil
}

// WriteJSON merges data onto whatever JSON already exists at path and
// writes the result, so partial metadata updates never clobber unrelated
// keys. The merged mapping is returned. An unparseable existing file is
// overwritten wholesale.
func (s *Store) WriteJSON(path string, data map[string]any) (map[string]any, error) {
	merged, err := s.ReadJSON(path)
	if err != nil {
		if !errors.Is(err, ErrMalformed) {
			return nil, err
		}
		merged = map[string]any{}
	}
	for k, v := range data {
		merged[k] = v
	}
	text, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := s.WriteText(path, string(text)+"\n"); err != nil {
		return nil, err
	}
	return merged, nil
}

// ListDirs returns the names of subdirectories of path, excluding hidden
// entries. A missing directory yields an empty list.
func (s *Store) ListDirs(path string) ([]string, error) {
	entries, err := s.readDir(path)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ListFiles returns the names of regular files directly under path.
// A missing directory yields an empty list.
func (s *Store) ListFiles(path string) ([]string, error) {
	entries, err := s.readDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func (s *Store) readDir(path string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(s.fs, s.abs(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return entries, nil
}

// DeleteFile removes the file at path. Missing files are ignored.
func (s *Store) DeleteFile(path string) error {
	err := s.fs.Remove(s.abs(path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// DeleteTree removes the directory at path and everything under it.
func (s *Store) DeleteTree(path string) error {
	if err := s.fs.RemoveAll(s.abs(path)); err != nil {
		return fmt.Errorf("delete tree %s: %w", path, err)
	}
	return nil
}

// Move relocates a file or directory. Moving a missing source is a no-op so
// the operation can be re-run after a partial failure. Intermediate
// directories at the destination are created.
func (s *Store) Move(oldPath, newPath string) error {
	oldFull, newFull := s.abs(oldPath), s.abs(newPath)
	if ok, err := afero.Exists(s.fs, oldFull); err != nil || !ok {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(newFull), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", newPath, err)
	}
	if err := s.fs.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("move %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}
