// Package local stores uploaded images on the filesystem under a
// public-servable directory. Files get collision-resistant uuid names that
// preserve the original extension, and writes go through a temp file and
// rename. URLs are root-relative ("/uploads/<name>").
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bestemiy/inkstudio"
)

// URLPrefix is the path uploads are served under.
const URLPrefix = "/uploads/"

// Store is the local filesystem image backend.
type Store struct {
	root *os.Root
}

// New creates the uploads directory if needed and opens it as a sandboxed
// root, so no operation can escape it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open uploads root: %w", err)
	}

	return &Store{root: root}, nil
}

// Close releases the directory handle.
func (s *Store) Close() error {
	return s.root.Close()
}

// Upload writes content to a freshly named file and returns its
// root-relative URL.
func (s *Store) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + extension(filename)

	tmpName := ".t" + uuid.New().String()
	t, err := s.root.Create(tmpName)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpName); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := io.Copy(t, content); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	if err := t.Sync(); err != nil {
		return "", fmt.Errorf("sync upload: %w", err)
	}

	if err := s.root.Rename(tmpName, name); err != nil {
		return "", fmt.Errorf("rename upload: %w", err)
	}

	success = true
	return URLPrefix + name, nil
}

// Delete resolves a previously returned URL to its file and removes it. A
// missing file is treated as already deleted; any other failure
// propagates.
func (s *Store) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := strings.TrimPrefix(url, URLPrefix)
	if name == url || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("delete image: %w: url %q is not a local upload", inkstudio.ErrInvalidInput, url)
	}

	if err := s.root.Remove(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete image: %w", err)
	}

	return nil
}

// extension keeps the uploaded file's extension, defaulting to .png when
// the client sent a bare name.
func extension(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" || ext == "." {
		return ".png"
	}
	return ext
}
