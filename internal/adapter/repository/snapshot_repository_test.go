package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/eslsoft/vocnote/internal/entity"
	"github.com/eslsoft/vocnote/internal/infrastructure/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo, err := NewSnapshotRepository(ctx, db, "notebook")
	if err != nil {
		t.Fatalf("NewSnapshotRepository returned error: %v", err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty store returned error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil payload on empty store, got %q", data)
	}

	if err := repo.Save(ctx, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := repo.Save(ctx, []byte(`{"version":2}`)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	data, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"version":2}` {
		t.Fatalf("expected latest payload, got %q", data)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", rows)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	data, err = repo.Load(ctx)
	if err != nil || data != nil {
		t.Fatalf("expected empty store after Clear, got %q (%v)", data, err)
	}
}

func TestSnapshotRepositoryKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	a, err := NewSnapshotRepository(ctx, db, "a")
	if err != nil {
		t.Fatalf("new repo a: %v", err)
	}
	b, err := NewSnapshotRepository(ctx, db, "b")
	if err != nil {
		t.Fatalf("new repo b: %v", err)
	}
	if err := a.Save(ctx, []byte("alpha")); err != nil {
		t.Fatalf("save a: %v", err)
	}
	data, err := b.Load(ctx)
	if err != nil || data != nil {
		t.Fatalf("expected b to be empty, got %q (%v)", data, err)
	}
}

func TestSnapshotRepositoryWrapsPersistenceErrors(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo, err := NewSnapshotRepository(ctx, db, "notebook")
	if err != nil {
		t.Fatalf("NewSnapshotRepository returned error: %v", err)
	}
	db.Close()

	err = repo.Save(ctx, []byte("x"))
	if !errors.Is(err, entity.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, entity.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on load, got %v", err)
	}
}

func TestNewSnapshotRepositoryRequiresKey(t *testing.T) {
	if _, err := NewSnapshotRepository(context.Background(), setupTestDB(t), "  "); err == nil {
		t.Fatalf("expected error for blank key")
	}
}
