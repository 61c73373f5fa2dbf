// Package storage keeps uploaded files on the local disk.
//
// Uploads follow a two-phase convention: the bytes are first staged to a temporary
// file, the database row is committed, and only then is the file published by an
// atomic rename into its final location. A failed commit discards the staged file;
// a failed publish is reported so the caller can remove the row again.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const stagingDir = ".staging"

var ErrInvalidPath = errors.New("storage: path escapes the upload root")

// FileStore stores files below a root directory. Paths handed out are relative to
// the root and use forward slashes.
type FileStore struct {
	root string
}

// NewFileStore creates the root and staging directories when missing.
func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, stagingDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

// Staged is an upload written to the staging area and not yet visible.
type Staged struct {
	store   *FileStore
	tmpPath string
	// RelPath is the location the file will have once published.
	RelPath string
	Size    int64
}

// Stage copies r into a temporary file. The final name is a random id with the
// lower-cased extension of originalName, placed under dir.
func (s *FileStore) Stage(dir, originalName string, r io.Reader) (*Staged, error) {
	tmp, err := os.CreateTemp(filepath.Join(s.root, stagingDir), "upload-*")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	size, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("write staging file: %w", errors.Join(copyErr, closeErr))
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	return &Staged{
		store:   s,
		tmpPath: tmp.Name(),
		RelPath: filepath.ToSlash(filepath.Join(dir, name)),
		Size:    size,
	}, nil
}

// Publish moves the staged file into its final location.
func (st *Staged) Publish() error {
	final, err := st.store.Path(st.RelPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.Rename(st.tmpPath, final); err != nil {
		return fmt.Errorf("publish upload: %w", err)
	}
	return nil
}

// Discard removes the staged file. Discarding an already published or removed file
// is a no-op.
func (st *Staged) Discard() error {
	if err := os.Remove(st.tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Path resolves a relative path to an absolute one inside the root.
func (s *FileStore) Path(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, clean), nil
}

// Open opens a published file for reading.
func (s *FileStore) Open(rel string) (*os.File, error) {
	p, err := s.Path(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove deletes a published file. A missing file is not an error.
func (s *FileStore) Remove(rel string) error {
	p, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// HasExtension reports whether name ends in one of the allowed extensions,
// compared case-insensitively and without the dot.
func HasExtension(name string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
