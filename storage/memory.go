package storage

import (
	"context"
	"sync"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

// MemoryRepo keeps the slots in process. Nothing survives a restart.
type MemoryRepo struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemory() *MemoryRepo {
	return &MemoryRepo{slots: make(map[string]string)}
}

func (r *MemoryRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.slots[key]
	if !ok {
		return "", perrors.Wrapf(perrors.ErrStorageKeyNotFound, "%s", key)
	}
	return v, nil
}

func (r *MemoryRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = value
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.slots, k)
	}
	return nil
}

// Len is the number of occupied slots.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func (r *MemoryRepo) Close() error {
	return nil
}
