package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSnapshotRepository implements SnapshotRepository using MySQL.
type MySQLSnapshotRepository struct {
	db *sql.DB
}

// NewMySQLSnapshotRepository creates a new MySQL snapshot repository.
func NewMySQLSnapshotRepository(dsn string) (*MySQLSnapshotRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name VARCHAR(64) PRIMARY KEY,
		data LONGTEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLSnapshotRepository] Initialized")
	return &MySQLSnapshotRepository{db: db}, nil
}

// Save stores the serialized collection, replacing any prior snapshot.
func (r *MySQLSnapshotRepository) Save(ctx context.Context, collection string, data []byte) error {
	query := `
		INSERT INTO snapshots (name, data, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, collection, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", collection, err)
	}
	return nil
}

// Load retrieves the serialized collection.
func (r *MySQLSnapshotRepository) Load(ctx context.Context, collection string) ([]byte, error) {
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
func (r *MySQLSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*MySQLSnapshotRepository)(nil)
