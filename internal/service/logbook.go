package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/repository"
	"ovh-sniper-api/pkg/uid"
)

// maxLogEntries bounds the in-app log buffer; oldest entries are evicted.
const maxLogEntries = 1000

// LogService owns the bounded, leveled in-app log buffer. It is the
// primary observability surface: every state transition and remote-call
// failure lands here, queryable and clearable over HTTP. Entries are
// mirrored to the process log.
type LogService struct {
	mu      sync.RWMutex
	repo    repository.SnapshotRepository
	entries []model.LogEntry
}

// NewLogService creates a log service backed by the snapshot repository.
func NewLogService(repo repository.SnapshotRepository) *LogService {
	return &LogService{repo: repo}
}

// Load restores the log buffer from its snapshot.
func (s *LogService) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx, repository.CollectionLogs)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return fmt.Errorf("failed to decode logs snapshot: %w", err)
	}
	return nil
}

// Info records an INFO entry.
func (s *LogService) Info(ctx context.Context, source, format string, args ...interface{}) {
	s.append(ctx, model.LogInfo, source, fmt.Sprintf(format, args...))
}

// Warning records a WARNING entry.
func (s *LogService) Warning(ctx context.Context, source, format string, args ...interface{}) {
	s.append(ctx, model.LogWarning, source, fmt.Sprintf(format, args...))
}

// Error records an ERROR entry.
func (s *LogService) Error(ctx context.Context, source, format string, args ...interface{}) {
	s.append(ctx, model.LogError, source, fmt.Sprintf(format, args...))
}

func (s *LogService) append(ctx context.Context, level, source, message string) {
	entry := model.LogEntry{
		ID:        uid.New(),
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		Source:    source,
	}

	// The lock is held across the save so concurrent appends cannot
	// overwrite the snapshot with a stale payload.
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > maxLogEntries {
		s.entries = s.entries[len(s.entries)-maxLogEntries:]
	}
	data, err := json.Marshal(s.entries)
	if err == nil {
		if saveErr := s.repo.Save(ctx, repository.CollectionLogs, data); saveErr != nil {
			log.Printf("[LogService] failed to persist logs: %v", saveErr)
		}
	}
	s.mu.Unlock()

	log.Printf("[%s] %s: %s", source, level, message)
}

// List returns a copy of the buffered entries, oldest first.
func (s *LogService) List() []model.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear empties the log buffer and persists the empty collection.
func (s *LogService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if err := s.repo.Save(ctx, repository.CollectionLogs, []byte("[]")); err != nil {
		return fmt.Errorf("failed to persist cleared logs: %w", err)
	}
	return nil
}
