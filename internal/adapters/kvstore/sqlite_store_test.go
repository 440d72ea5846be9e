package kvstore

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSqliteSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteStoreRoundTrip(t *testing.T) {
	store := NewSqliteStore(openTestDB(t))
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "routeplanner:plans:v3"); err != nil || ok {
		t.Fatalf("get before set: ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "routeplanner:plans:v3", `{"Central":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	body, ok, err := store.Get(ctx, "routeplanner:plans:v3")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if body != `{"Central":[]}` {
		t.Errorf("body = %q", body)
	}
}

func TestSqliteStoreSetReplaces(t *testing.T) {
	store := NewSqliteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	body, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if body != "two" {
		t.Errorf("body = %q, want replacement", body)
	}
}

func TestSqliteStoreRejectsEmptyKey(t *testing.T) {
	store := NewSqliteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "", "x"); err == nil {
		t.Fatal("expected error for empty key on Set")
	}
	if _, _, err := store.Get(ctx, ""); err == nil {
		t.Fatal("expected error for empty key on Get")
	}
}
