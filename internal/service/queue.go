package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/repository"
	"ovh-sniper-api/pkg/uid"
)

var (
	// ErrNotFound indicates the queue entry does not exist.
	ErrNotFound = errors.New("queue entry not found")

	// ErrInvalidStatus indicates a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidArgument indicates a malformed enqueue request.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition indicates a disallowed state-machine move.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// QueueService exclusively owns the acquisition queue: entry lifecycle,
// status transitions and retry bookkeeping. All mutations are serialized
// behind one mutex and written through to the snapshot repository.
type QueueService struct {
	mu      sync.RWMutex
	repo    repository.SnapshotRepository
	logs    *LogService
	entries []model.QueueEntry
}

// NewQueueService creates a queue service backed by the snapshot repository.
func NewQueueService(repo repository.SnapshotRepository, logs *LogService) *QueueService {
	return &QueueService{repo: repo, logs: logs}
}

// Load restores the queue from its snapshot.
func (s *QueueService) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx, repository.CollectionQueue)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return fmt.Errorf("failed to decode queue snapshot: %w", err)
	}
	return nil
}

// Enqueue appends a new pending entry and returns it. Duplicate
// plan/datacenter pairs are allowed: the client may want parallel
// attempts with different option sets.
func (s *QueueService) Enqueue(ctx context.Context, planCode, datacenter string, options []string, retryInterval int) (model.QueueEntry, error) {
	if planCode == "" {
		return model.QueueEntry{}, fmt.Errorf("%w: planCode is required", ErrInvalidArgument)
	}
	if datacenter == "" {
		return model.QueueEntry{}, fmt.Errorf("%w: datacenter is required", ErrInvalidArgument)
	}
	if retryInterval <= 0 {
		retryInterval = 30
	}
	if options == nil {
		options = []string{}
	}

	now := time.Now().UTC()
	entry := model.QueueEntry{
		ID:            uid.New(),
		PlanCode:      planCode,
		Datacenter:    datacenter,
		Options:       options,
		Status:        model.StatusPending,
		RetryInterval: retryInterval,
		RetryCount:    0,
		LastCheckedAt: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return model.QueueEntry{}, err
	}

	s.logs.Info(ctx, "queue", "Added %s in %s to queue", entry.PlanCode, entry.Datacenter)
	return entry, nil
}

// Remove deletes the entry if present. Removing a nonexistent id is not
// an error.
func (s *QueueService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	var removed *model.QueueEntry
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			removed = &e
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	var err error
	if removed != nil {
		err = s.persistLocked(ctx)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if removed != nil {
		s.logs.Info(ctx, "queue", "Removed %s from queue", removed.PlanCode)
	}
	return nil
}

// SetStatus applies a validated state-machine transition and refreshes
// updatedAt. Same-status writes are accepted as no-ops.
func (s *QueueService) SetStatus(ctx context.Context, id string, status model.Status) (model.QueueEntry, error) {
	if !status.Valid() {
		return model.QueueEntry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.QueueEntry{}, ErrNotFound
	}
	if !s.entries[idx].Status.CanTransition(status) {
		from := s.entries[idx].Status
		s.mu.Unlock()
		return model.QueueEntry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}
	s.entries[idx].Status = status
	s.entries[idx].UpdatedAt = time.Now().UTC()
	updated := s.entries[idx]
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return model.QueueEntry{}, err
	}

	s.logs.Info(ctx, "queue", "Updated %s status to %s", updated.PlanCode, updated.Status)
	return updated, nil
}

// MarkChecked records the start of one check cycle: lastCheckedAt moves
// to now (monotonically non-decreasing) and retryCount increments by
// exactly one.
func (s *QueueService) MarkChecked(ctx context.Context, id string, now time.Time) (model.QueueEntry, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.QueueEntry{}, ErrNotFound
	}
	if ts := now.Unix(); ts > s.entries[idx].LastCheckedAt {
		s.entries[idx].LastCheckedAt = ts
	}
	s.entries[idx].RetryCount++
	updated := s.entries[idx]
	err := s.persistLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return model.QueueEntry{}, err
	}
	return updated, nil
}

// Get returns the entry with the given id.
func (s *QueueService) Get(id string) (model.QueueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return model.QueueEntry{}, ErrNotFound
	}
	return s.entries[idx], nil
}

// List returns a copy of all entries in insertion order. The scheduler
// scans in this order.
func (s *QueueService) List() []model.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.QueueEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *QueueService) indexLocked(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *QueueService) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}
	if err := s.repo.Save(ctx, repository.CollectionQueue, data); err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}
