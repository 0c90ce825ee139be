package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"jobprep-backend/internal/shared/storage/object"
)

// Store keeps objects as files under a root directory, typically EXPORT_DIR.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Put replaces the file at key. The content type is not persisted; downloads
// derive it from the export format.
func (s *Store) Put(ctx context.Context, key string, _ string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dst, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	return replaceFile(dst, r)
}

// replaceFile writes into a temp sibling and renames it over dst, so a
// download running concurrently sees either the old or the new report.
func replaceFile(dst string, r io.Reader) (n int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".partial-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err = io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", filepath.Base(dst), err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return 0, fmt.Errorf("replace %s: %w", filepath.Base(dst), err)
	}
	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := s.path(key)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(src)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, object.ErrNotFound
	case err != nil:
		return nil, err
	case info.IsDir():
		return nil, object.ErrNotFound
	}
	return os.Open(src)
}

// path maps a slash-separated key below root and refuses keys that escape it.
func (s *Store) path(key string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(key))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, rel), nil
}

var _ object.ObjectStore = (*Store)(nil)
