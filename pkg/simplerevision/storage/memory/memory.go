package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// Backend is an in-memory implementation of the
// simplerevision.BlobStore interface. The write-once check happens
// under the mutex, so concurrent Puts for the same key resolve to one
// winner just like a conditional write on a real object store.
type Backend struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates a new in-memory storage backend
func New() simplerevision.BlobStore {
	return &Backend{
		objects: make(map[string][]byte),
	}
}

// Put writes content under the given key, failing if the key exists
func (b *Backend) Put(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; exists {
		return simplerevision.ErrBlobExists
	}
	b.objects[key] = data

	return nil
}

// Get reads content stored under the given key
func (b *Backend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[key]
	if !exists {
		return nil, simplerevision.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the content under the given key
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return simplerevision.ErrBlobNotFound
	}
	delete(b.objects, key)

	return nil
}

// List returns the keys stored under the given prefix
func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}
