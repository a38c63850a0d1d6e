package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each collection as a JSON file under a base
// directory. Writes go through a temp file and rename so a crash never
// leaves a half-written collection behind.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating data directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (f *FileStore) Get(_ context.Context, collection string) []byte {
	data, err := os.ReadFile(f.path(collection))
	if err != nil {
		return nil
	}
	return data
}

func (f *FileStore) Put(_ context.Context, collection string, data []byte) error {
	path := f.path(collection)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: replacing %s: %w", collection, err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, collection string) error {
	if err := os.Remove(f.path(collection)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: deleting %s: %w", collection, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) path(collection string) string {
	// Collection names are fixed constants, but sanitize anyway.
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(collection)
	return filepath.Join(f.basePath, name+".json")
}
