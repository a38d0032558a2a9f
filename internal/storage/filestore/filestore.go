// Package filestore keeps save blobs as files on an afero filesystem, one
// file per key.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const fileMode = 0o600

// Store writes each key to <dir>/<key>.json.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates a Store rooted at dir on fsys, creating dir if needed.
//
// Precondition: fsys must be non-nil; dir must be non-empty.
func New(fsys afero.Fs, dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("filestore: directory is required")
	}
	dir = filepath.Clean(dir)
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("filestore: creating %q: %w", dir, err)
	}
	return &Store{fs: fsys, dir: dir}, nil
}

// NewOS creates a Store on the real filesystem.
func NewOS(dir string) (*Store, error) {
	return New(afero.NewOsFs(), dir)
}

// NewMemory creates a Store on an in-memory filesystem.
func NewMemory() *Store {
	s, err := New(afero.NewMemMapFs(), "/saves")
	if err != nil {
		panic("filestore: in-memory filesystem failed: " + err.Error())
	}
	return s
}

func (s *Store) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the blob under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("filestore: reading %q: %w", p, err)
	}
	return data, true, nil
}

// Put writes data to a temporary file and renames it over the key, so a
// reader sees either the old blob or the new one.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(s.fs, s.dir, filepath.Base(p)+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: writing %q: %w", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, fileMode); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: chmod %q: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, p); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("filestore: renaming %q: %w", tmpName, err)
	}
	return nil
}

// Delete removes the blob under key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: removing %q: %w", p, err)
	}
	return nil
}
