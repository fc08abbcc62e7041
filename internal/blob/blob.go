// Package blob stores raw file bytes on the local filesystem, keyed by
// file id and extension.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound marks a missing blob.
var ErrNotFound = errors.New("blob not found")

// Store is a directory of id.ext files.
type Store struct {
	dir string
}

// NewStore creates the backing directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(id, ext string) string {
	return filepath.Join(s.dir, id+"."+ext)
}

func (s *Store) Put(id, ext string, b []byte) error {
	return os.WriteFile(s.path(id, ext), b, 0o644)
}

func (s *Store) Get(id, ext string) ([]byte, error) {
	b, err := os.ReadFile(s.path(id, ext))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotFound, id, ext)
	}
	return b, err
}

func (s *Store) Delete(id, ext string) error {
	err := os.Remove(s.path(id, ext))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
