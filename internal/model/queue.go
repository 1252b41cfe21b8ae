package model

import "time"

// Status is the lifecycle state of a queue entry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is one of the four known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further scheduling happens from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// transitions is the allowed state machine. Same-state writes are
// permitted everywhere (they only refresh updatedAt).
var transitions = map[Status][]Status{
	StatusPending:   {StatusRunning, StatusFailed},
	StatusRunning:   {StatusCompleted, StatusFailed},
	StatusCompleted: {},
	StatusFailed:    {},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// QueueEntry is one acquisition request for a server plan in a datacenter.
type QueueEntry struct {
	ID            string    `json:"id"`
	PlanCode      string    `json:"planCode"`
	Datacenter    string    `json:"datacenter"`
	Options       []string  `json:"options"`
	Status        Status    `json:"status"`
	RetryInterval int       `json:"retryInterval"` // seconds between availability checks
	RetryCount    int       `json:"retryCount"`
	LastCheckedAt int64     `json:"lastCheckTime"` // unix seconds, 0 until first check
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Due reports whether the entry is due for an availability check at now,
// given the effective retry interval in seconds.
func (e *QueueEntry) Due(now time.Time, interval int64) bool {
	return now.Unix()-e.LastCheckedAt >= interval
}
