package repository

import "context"

// Collection names persisted through the snapshot store.
const (
	CollectionQueue   = "queue"
	CollectionHistory = "history"
	CollectionServers = "servers"
	CollectionLogs    = "logs"
)

// SnapshotRepository is the persistence gateway: whole-collection JSON
// snapshots written through synchronously after every mutation and
// loaded once at process start.
type SnapshotRepository interface {
	// Save stores the serialized collection, replacing any prior snapshot.
	Save(ctx context.Context, collection string, data []byte) error

	// Load retrieves the serialized collection. Returns (nil, nil) when
	// no snapshot exists.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Close closes the repository connection.
	Close() error
}
