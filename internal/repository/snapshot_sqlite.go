package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSnapshotRepository implements SnapshotRepository using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteSnapshotRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteSnapshotRepository creates a new SQLite snapshot repository.
// dbPath is the path to the SQLite database file (e.g., "./data/sniper.db")
func NewSQLiteSnapshotRepository(dbPath string) (*SQLiteSnapshotRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSnapshotTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteSnapshotRepository] Initialized with database: %s", dbPath)
	return &SQLiteSnapshotRepository{db: db}, nil
}

func createSnapshotTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := db.Exec(query)
	return err
}

// Save stores the serialized collection, replacing any prior snapshot.
func (r *SQLiteSnapshotRepository) Save(ctx context.Context, collection string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO snapshots (name, data, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = datetime('now')`

	_, err := r.db.ExecContext(ctx, query, collection, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", collection, err)
	}
	return nil
}

// Load retrieves the serialized collection.
func (r *SQLiteSnapshotRepository) Load(ctx context.Context, collection string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE name = ?`, collection).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", collection, err)
	}

	return []byte(data), nil
}

// Close closes the database connection.
func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*SQLiteSnapshotRepository)(nil)
