package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/repository"
)

// HistoryService exclusively owns the append-only purchase history.
// Records are never mutated or deleted individually; bulk clear is the
// only deletion path.
type HistoryService struct {
	mu      sync.RWMutex
	repo    repository.SnapshotRepository
	records []model.PurchaseRecord
}

// NewHistoryService creates a history service backed by the snapshot repository.
func NewHistoryService(repo repository.SnapshotRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Load restores the history from its snapshot.
func (s *HistoryService) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx, repository.CollectionHistory)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to decode history snapshot: %w", err)
	}
	return nil
}

// Append adds one immutable record and persists immediately. The lock
// is held across the save so concurrent appends cannot overwrite the
// snapshot with a stale payload.
func (s *HistoryService) Append(ctx context.Context, record model.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.repo.Save(ctx, repository.CollectionHistory, data); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// List returns a copy of all records, oldest first.
func (s *HistoryService) List() []model.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PurchaseRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Clear empties the history and persists the empty collection.
func (s *HistoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if err := s.repo.Save(ctx, repository.CollectionHistory, []byte("[]")); err != nil {
		return fmt.Errorf("failed to persist cleared history: %w", err)
	}
	return nil
}
