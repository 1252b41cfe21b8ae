package repository

import (
	"context"
	"path/filepath"
	"testing"
)

func newSQLiteTestRepo(t *testing.T) *SQLiteSnapshotRepository {
	t.Helper()
	repo, err := NewSQLiteSnapshotRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create SQLite repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteSnapshotRepository_SaveLoad(t *testing.T) {
	repo := newSQLiteTestRepo(t)
	ctx := context.Background()

	data, err := repo.Load(ctx, CollectionQueue)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil for a missing snapshot, got %s", data)
	}

	payload := []byte(`[{"id":"a","planCode":"25skle01"}]`)
	if err := repo.Save(ctx, CollectionQueue, payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err = repo.Load(ctx, CollectionQueue)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, data)
	}
}

func TestSQLiteSnapshotRepository_Upsert(t *testing.T) {
	repo := newSQLiteTestRepo(t)
	ctx := context.Background()

	repo.Save(ctx, CollectionHistory, []byte(`["first"]`))
	if err := repo.Save(ctx, CollectionHistory, []byte(`["second"]`)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	data, err := repo.Load(ctx, CollectionHistory)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `["second"]` {
		t.Fatalf("expected the latest snapshot, got %s", data)
	}
}

func TestSQLiteSnapshotRepository_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	first, err := NewSQLiteSnapshotRepository(path)
	if err != nil {
		t.Fatalf("failed to create SQLite repository: %v", err)
	}
	if err := first.Save(ctx, CollectionServers, []byte(`[{"planCode":"25skle01"}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLiteSnapshotRepository(path)
	if err != nil {
		t.Fatalf("failed to reopen SQLite repository: %v", err)
	}
	defer second.Close()

	data, err := second.Load(ctx, CollectionServers)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `[{"planCode":"25skle01"}]` {
		t.Fatalf("snapshot did not survive reopen: %s", data)
	}
}
