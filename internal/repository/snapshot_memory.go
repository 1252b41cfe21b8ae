package repository

import (
	"context"
	"sync"
)

// MemorySnapshotRepository implements SnapshotRepository in process
// memory. Used in tests and as a last-resort fallback when no durable
// backend is reachable.
type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemorySnapshotRepository creates an in-memory snapshot repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{snapshots: make(map[string][]byte)}
}

// Save stores the serialized collection.
func (r *MemorySnapshotRepository) Save(_ context.Context, collection string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	r.snapshots[collection] = cp
	return nil
}

// Load retrieves the serialized collection.
func (r *MemorySnapshotRepository) Load(_ context.Context, collection string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.snapshots[collection]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Close is a no-op for the in-memory repository.
func (r *MemorySnapshotRepository) Close() error {
	return nil
}

// Ensure MemorySnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*MemorySnapshotRepository)(nil)
