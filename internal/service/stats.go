package service

import "ovh-sniper-api/internal/model"

// StatsService derives counters from the live collections on every
// read. It holds no state of its own; callers must not assume caching.
type StatsService struct {
	queue   *QueueService
	history *HistoryService
	catalog *CatalogService
}

// NewStatsService creates a stats aggregator over the three collections.
func NewStatsService(queue *QueueService, history *HistoryService, catalog *CatalogService) *StatsService {
	return &StatsService{queue: queue, history: history, catalog: catalog}
}

// Current recomputes the counters from scratch.
func (s *StatsService) Current() model.Stats {
	return model.ComputeStats(s.queue.List(), s.history.List(), s.catalog.List())
}
