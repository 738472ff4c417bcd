// Package storage is the uploaded-file collaborator. Upload handling itself
// lives outside this service; registrations and expo centers only carry
// opaque paths, and the single responsibility here is releasing those files
// when their owning record is deleted.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	BaseDir string
}

type LocalStore struct {
	baseDir string
}

func NewLocalStore(cfg Config) *LocalStore {
	return &LocalStore{baseDir: cfg.BaseDir}
}

// Remove deletes a previously stored file. A missing file is not an error:
// the reference is stale but the outcome is the same.
func (s *LocalStore) Remove(path string) error {
	if path == "" {
		return nil
	}

	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(s.baseDir, filepath.Clean("/"+path))
	} else if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.baseDir)) {
		return fmt.Errorf("refusing to remove file outside storage dir: %s", path)
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
