package service

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"ovh-sniper-api/internal/model"
)

// SchedulerConfig holds configuration for the acquisition scheduler.
type SchedulerConfig struct {
	// TickInterval is how often the queue is scanned.
	// Default: 1 second.
	TickInterval time.Duration

	// MaxAttempts caps availability checks per entry before it is
	// marked failed. 0 retries forever (the default).
	MaxAttempts int

	// BackoffFactor >1 grows an entry's effective retry interval
	// exponentially with its retry count. 1.0 keeps it fixed.
	BackoffFactor float64
}

// DefaultSchedulerConfig returns the default scheduling policy:
// unconditional fixed-interval retry, matching the sniper's original
// behavior.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:  1 * time.Second,
		MaxAttempts:   0,
		BackoffFactor: 1.0,
	}
}

// Scheduler is the single driving loop: on every tick it scans the
// queue in listing order, marks due running entries as checked and
// invokes the executor sequentially. Entries are never processed
// concurrently — purchase attempts must be serialized against shared
// cart and rate limits.
type Scheduler struct {
	queue    *QueueService
	executor Executor
	logs     *LogService
	config   SchedulerConfig

	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewScheduler creates a scheduler over the queue and executor.
func NewScheduler(queue *QueueService, executor Executor, logs *LogService, config SchedulerConfig) *Scheduler {
	if config.TickInterval == 0 {
		config.TickInterval = 1 * time.Second
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1.0
	}

	return &Scheduler{
		queue:    queue,
		executor: executor,
		logs:     logs,
		config:   config,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the scheduling loop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.TickInterval)
	s.mu.Unlock()

	log.Printf("[Scheduler] Started - Tick: %v, MaxAttempts: %d, Backoff: %.2f",
		s.config.TickInterval, s.config.MaxAttempts, s.config.BackoffFactor)

	go s.run()
}

// run is the main scheduling loop.
func (s *Scheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.Tick(time.Now())
		case <-s.stopCh:
			log.Printf("[Scheduler] Stopped")
			return
		}
	}
}

// Tick processes every due running entry once, sequentially, in queue
// listing order. Exported so the scan is testable without the loop.
func (s *Scheduler) Tick(now time.Time) {
	ctx := context.Background()

	for _, entry := range s.queue.List() {
		if entry.Status != model.StatusRunning {
			continue
		}
		if !entry.Due(now, s.effectiveInterval(&entry)) {
			continue
		}

		s.logs.Info(ctx, "queue", "Checking availability for %s in %s", entry.PlanCode, entry.Datacenter)

		// The entry may have been removed between the scan and here;
		// MarkChecked is the authoritative claim on this cycle.
		checked, err := s.queue.MarkChecked(ctx, entry.ID, now)
		if err != nil {
			continue
		}

		switch s.executor.Execute(ctx, checked) {
		case OutcomePurchased:
			if _, err := s.queue.SetStatus(ctx, checked.ID, model.StatusCompleted); err != nil {
				s.logs.Error(ctx, "queue", "Failed to complete %s: %v", checked.PlanCode, err)
				continue
			}
			s.logs.Info(ctx, "queue", "Purchase successful for %s in %s", checked.PlanCode, checked.Datacenter)
		case OutcomeFailed, OutcomeSkipped:
			if s.config.MaxAttempts > 0 && checked.RetryCount >= s.config.MaxAttempts {
				if _, err := s.queue.SetStatus(ctx, checked.ID, model.StatusFailed); err == nil {
					s.logs.Warning(ctx, "queue", "Giving up on %s after %d attempts", checked.PlanCode, checked.RetryCount)
				}
				continue
			}
			s.logs.Info(ctx, "queue", "Server not available, retrying later")
		}
	}
}

// maxEffectiveInterval caps the backed-off retry interval at one day.
// Unbounded growth would overflow the int64 conversion and make the
// entry permanently due.
const maxEffectiveInterval int64 = 24 * 60 * 60

// effectiveInterval returns the entry's retry interval in seconds under
// the configured backoff policy.
func (s *Scheduler) effectiveInterval(entry *model.QueueEntry) int64 {
	base := float64(entry.RetryInterval)
	if s.config.BackoffFactor > 1 && entry.RetryCount > 0 {
		base *= math.Pow(s.config.BackoffFactor, float64(entry.RetryCount))
	}
	if base > float64(maxEffectiveInterval) {
		return maxEffectiveInterval
	}
	return int64(base)
}

// Stop stops the scheduling loop. An in-flight purchase attempt
// completes its pipeline first.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}
