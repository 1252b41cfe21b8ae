package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotRepository implements SnapshotRepository using Redis.
// Snapshots are stored as plain string values under a key prefix.
type RedisSnapshotRepository struct {
	client    *redis.Client
	keyPrefix string
}

// RedisSnapshotConfig holds connection settings for the Redis repository.
type RedisSnapshotConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisSnapshotRepository creates a Redis-backed snapshot repository.
func NewRedisSnapshotRepository(cfg RedisSnapshotConfig) (*RedisSnapshotRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "sniper:snapshot"
	}

	log.Printf("[RedisSnapshotRepository] Initialized - DB:%d, prefix:%s", cfg.DB, keyPrefix)
	return &RedisSnapshotRepository{client: client, keyPrefix: keyPrefix}, nil
}

func (r *RedisSnapshotRepository) key(collection string) string {
	return r.keyPrefix + ":" + collection
}

// Save stores the serialized collection, replacing any prior snapshot.
func (r *RedisSnapshotRepository) Save(ctx context.Context, collection string, data []byte) error {
	if err := r.client.Set(ctx, r.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", collection, err)
	}
	return nil
}

// Load retrieves the serialized collection.
func (r *RedisSnapshotRepository) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(collection)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", collection, err)
	}
	return data, nil
}

// Close closes the Redis connection.
func (r *RedisSnapshotRepository) Close() error {
	return r.client.Close()
}

// Ensure RedisSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*RedisSnapshotRepository)(nil)
