package medium

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestSQLite(t *testing.T) *SQLiteMedium {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.db")
	sqlDB, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := NewSQLiteMedium(context.Background(), sqlDB)
	if err != nil {
		t.Fatalf("new sqlite medium: %v", err)
	}
	return m
}

func TestSQLiteMediumRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := openTestSQLite(t)

	if _, ok, err := m.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := m.Put(ctx, "k", []byte(`[1]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := m.Put(ctx, "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[1,2]` {
		t.Fatalf("expected overwritten payload, got %s", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete of missing key should succeed: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("expected key removed")
	}
}

func TestSQLiteMediumMigrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := openTestSQLite(t)

	if _, err := NewSQLiteMedium(ctx, m.sqlDB); err != nil {
		t.Fatalf("second migration: %v", err)
	}
}
