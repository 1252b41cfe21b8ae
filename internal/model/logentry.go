package model

import "time"

// Log levels for the in-app log buffer.
const (
	LogInfo    = "INFO"
	LogWarning = "WARNING"
	LogError   = "ERROR"
)

// LogEntry is one record in the bounded in-app log buffer, the primary
// observability surface exposed over HTTP.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
}
