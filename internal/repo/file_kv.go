package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// fileKV stores each key as a JSON file in a directory.
type fileKV struct {
	dir string
}

// NewFileKV returns a KV that keeps one file per key under dir.
// The directory is created on first write.
func NewFileKV(dir string) KV {
	return &fileKV{dir: dir}
}

// Get reads the file for key.
func (k *fileKV) Get(_ context.Context, key string) ([]byte, error) {
	path, err := k.path(key)
	if err != nil {
		return nil, fmt.Errorf("repo.fileKV.Get: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("repo.fileKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.fileKV.Get: %w", err)
	}
	return data, nil
}

// Put writes value atomically: a temp file in the same directory is written,
// synced, then renamed over the target, so readers never see a partial blob.
func (k *fileKV) Put(_ context.Context, key string, value []byte) error {
	path, err := k.path(key)
	if err != nil {
		return fmt.Errorf("repo.fileKV.Put: %w", err)
	}
	if err := os.MkdirAll(k.dir, 0o755); err != nil {
		return fmt.Errorf("repo.fileKV.Put: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(k.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("repo.fileKV.Put: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("repo.fileKV.Put: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("repo.fileKV.Put: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.fileKV.Put: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("repo.fileKV.Put: rename: %w", err)
	}
	return nil
}

// path maps key to its file, rejecting keys that could escape dir.
func (k *fileKV) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: invalid key %q", domain.ErrValidation, key)
	}
	return filepath.Join(k.dir, key+".json"), nil
}
