package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests. URIs are mem://key.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	// FailKeys lists key prefixes whose Put calls fail, for exercising
	// partial-success paths.
	FailKeys []string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores the bytes under key.
func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	for _, fail := range m.FailKeys {
		if strings.HasPrefix(key, fail) {
			return "", fmt.Errorf("injected put failure for %s", key)
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return "mem://" + key, nil
}

// Get returns a reader over the stored bytes.
func (m *MemoryStore) Get(ctx context.Context, uri string) (io.ReadCloser, error) {
	key := strings.TrimPrefix(uri, "mem://")
	m.mu.RLock()
	data, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns URIs of keys with the given prefix, sorted.
func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var uris []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			uris = append(uris, "mem://"+key)
		}
	}
	sort.Strings(uris)
	return uris, nil
}

// DeletePrefix removes all keys with the given prefix.
func (m *MemoryStore) DeletePrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
