package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiskStore stores blobs as files under a root directory. URIs are file://
// paths. Keys use forward slashes and may not escape the root.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns a store.
func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("blob root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &DiskStore{root: abs}, nil
}

func (d *DiskStore) pathFor(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(d.root, clean), nil
}

// Put writes the reader's bytes under key and returns the file:// URI.
func (d *DiskStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	path, err := d.pathFor(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close blob: %w", err)
	}
	return "file://" + path, nil
}

// Get opens the blob at uri. Accepts file:// URIs and bare paths under the root.
func (d *DiskStore) Get(ctx context.Context, uri string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(uri, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", uri, err)
	}
	return f, nil
}

// List returns the URIs of all blobs whose key starts with prefix, sorted.
func (d *DiskStore) List(ctx context.Context, prefix string) ([]string, error) {
	var uris []string
	err := filepath.Walk(d.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return relErr
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			uris = append(uris, "file://"+path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	sort.Strings(uris)
	return uris, nil
}

// DeletePrefix removes all blobs whose key starts with prefix. Deleting an
// absent prefix is a no-op.
func (d *DiskStore) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("refusing to delete empty prefix")
	}
	target := filepath.Join(d.root, filepath.FromSlash(prefix))
	if !strings.HasPrefix(target, d.root) {
		return fmt.Errorf("invalid blob prefix %q", prefix)
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("delete blobs %s: %w", prefix, err)
	}
	return nil
}
